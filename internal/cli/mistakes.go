package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/zmx4/aelp/internal/config"
	"github.com/zmx4/aelp/internal/database"
	"github.com/zmx4/aelp/internal/database/mistakes"
	"github.com/zmx4/aelp/internal/entities"
	"github.com/zmx4/aelp/internal/refdict"
	"github.com/zmx4/aelp/internal/review"
)

// MistakesCommand lists recorded mistakes, or runs an interactive
// review round over them.
type MistakesCommand struct {
	DatabasePath   string
	DictionaryPath string
	Limit          int
	Review         bool
}

func NewMistakesCommand() *MistakesCommand {
	return &MistakesCommand{}
}

func (cmd *MistakesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("mistakes", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultUserDatabasePath, "Path to the user database file")
	fs.StringVar(&cmd.DictionaryPath, "dictionary", config.DefaultDictionaryPath, "Path to the reference dictionary database")
	fs.IntVar(&cmd.Limit, "limit", 20, "Maximum number of mistakes to load")
	fs.BoolVar(&cmd.Review, "review", false, "Review the loaded mistakes interactively")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s mistakes [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List recent mistakes, newest first. With -review, each word is\n")
		fmt.Fprintf(os.Stderr, "prompted by its translation: typing it correctly decrements the\n")
		fmt.Fprintf(os.Stderr, "mistake count, a wrong answer increments it.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s mistakes -limit 50\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s mistakes -review\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *MistakesCommand) Run() error {
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

	repo := mistakes.NewRepository(db.DB, lookup)
	rows, err := repo.LoadMistakeData(cmd.Limit)
	if err != nil {
		return fmt.Errorf("failed to load mistakes: %w", err)
	}

	if len(rows) == 0 {
		fmt.Println("No mistakes recorded.")
		return nil
	}

	if cmd.Review {
		return cmd.runReview(repo, rows)
	}

	fmt.Printf("%d mistakes:\n", len(rows))
	for _, m := range rows {
		fmt.Printf("  %-20s x%-3d %s  %s\n",
			m.WordText, m.Count,
			m.Time.Format("2006-01-02"),
			refdict.ShortTranslation(m.Translation))
	}
	return nil
}

func (cmd *MistakesCommand) runReview(repo *mistakes.Repository, rows []entities.Mistake) error {
	session, err := review.NewSession(repo, rows, time.Now)
	if err != nil {
		if errors.Is(err, review.ErrNothingToReview) {
			fmt.Println("Nothing to review.")
			return nil
		}
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		prompt, ok := session.Current()
		if !ok {
			break
		}
		number, total := session.Progress()

		fmt.Printf("\nWord %d/%d\n", number, total)
		fmt.Printf("Meaning: %s\n", refdict.ShortTranslation(prompt))
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}

		isRight, summary, err := session.Submit(strings.TrimSpace(line))
		if err != nil {
			return fmt.Errorf("failed to save review results: %w", err)
		}
		if isRight {
			fmt.Println("Correct!")
		} else {
			fmt.Println("Wrong.")
		}

		if summary != nil {
			fmt.Println("\n=== Review Summary ===")
			fmt.Printf("Score: %d/%d\n", summary.RightCount, summary.Total)
			fmt.Printf("Mastered: %d\n", summary.Mastered)
			break
		}
	}
	return nil
}
