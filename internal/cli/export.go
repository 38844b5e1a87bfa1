package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/zmx4/aelp/internal/config"
	"github.com/zmx4/aelp/internal/database"
	"github.com/zmx4/aelp/internal/database/favorites"
	"github.com/zmx4/aelp/internal/database/mistakes"
	"github.com/zmx4/aelp/internal/exporters"
	"github.com/zmx4/aelp/internal/refdict"
)

// ExportCommand writes favorites and recent mistakes to a markdown
// study sheet.
type ExportCommand struct {
	DatabasePath   string
	DictionaryPath string
	OutputPath     string
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultUserDatabasePath, "Path to the user database file")
	fs.StringVar(&cmd.DictionaryPath, "dictionary", config.DefaultDictionaryPath, "Path to the reference dictionary database")
	fs.StringVar(&cmd.OutputPath, "out", "vocabulary.md", "Path of the markdown file to write")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export favorites and recent mistakes to a markdown study sheet.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -out ~/notes/vocabulary.md\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	var lookup mistakes.TranslationLookup
	if store, err := refdict.Open(cmd.DictionaryPath); err == nil {
		defer store.Close()
		lookup = store
	}

	exporter := exporters.NewMarkdownExporter(
		cmd.OutputPath,
		favorites.NewRepository(db.DB),
		mistakes.NewRepository(db.DB, lookup),
	)
	result, err := exporter.Export()
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d favorites and %d mistakes to %s\n",
		result.FavoritesProcessed, result.MistakesProcessed, cmd.OutputPath)
	return nil
}
