package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zmx4/aelp/internal/config"
	"github.com/zmx4/aelp/internal/importers"
)

// ImportWordlistCommand rebuilds the reference dictionary database from
// an xlsx wordlist workbook.
type ImportWordlistCommand struct {
	FilePath       string
	DictionaryPath string
	Verbose        bool
}

func NewImportWordlistCommand() *ImportWordlistCommand {
	return &ImportWordlistCommand{}
}

func (cmd *ImportWordlistCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-wordlist", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the xlsx wordlist workbook (required)")
	fs.StringVar(&cmd.DictionaryPath, "dictionary", config.DefaultDictionaryPath, "Path to the reference dictionary database to build")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-wordlist -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Build the reference dictionary database from an xlsx workbook.\n\n")
		fmt.Fprintf(os.Stderr, "The workbook holds one sheet per graded word list (PrimarySchool,\n")
		fmt.Fprintf(os.Stderr, "HighSchool, CET4, CET6, tf, ys) with the word in column A and the\n")
		fmt.Fprintf(os.Stderr, "translation in column B. Missing sheets are skipped. Importing\n")
		fmt.Fprintf(os.Stderr, "replaces the existing reference tables.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s import-wordlist -file wordlists.xlsx -dictionary ./dictionary.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportWordlistCommand) Run() error {
	fmt.Println("Wordlist Import")
	fmt.Println("===============")

	if _, err := os.Stat(cmd.FilePath); os.IsNotExist(err) {
		return fmt.Errorf("wordlist file not found: %s", cmd.FilePath)
	}

	absPath, err := filepath.Abs(cmd.DictionaryPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for dictionary: %w", err)
	}
	cmd.DictionaryPath = absPath

	fmt.Printf("File: %s\n", cmd.FilePath)
	fmt.Printf("Dictionary: %s\n", cmd.DictionaryPath)

	db, err := gorm.Open(sqlite.Open(cmd.DictionaryPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open dictionary database: %w", err)
	}

	importer := importers.NewWordlistImporter(db)
	result, err := importer.ImportFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Sheets imported: %d\n", result.SheetsImported)
	if cmd.Verbose {
		for rng, count := range result.ListRows {
			fmt.Printf("  %-12s %d words\n", string(rng)+":", count)
		}
	}
	fmt.Printf("Dictionary words: %d\n", result.DictionaryWords)
	if result.SkippedRows > 0 {
		fmt.Printf("Skipped rows: %d\n", result.SkippedRows)
	}

	fmt.Println("\nImport complete!")
	return nil
}
