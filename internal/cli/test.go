package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zmx4/aelp/internal/config"
	"github.com/zmx4/aelp/internal/database"
	"github.com/zmx4/aelp/internal/database/records"
	"github.com/zmx4/aelp/internal/entities"
	"github.com/zmx4/aelp/internal/quiz"
	"github.com/zmx4/aelp/internal/refdict"
)

// TestCommand runs an interactive vocabulary test in the terminal.
type TestCommand struct {
	Range          string
	Count          int
	DatabasePath   string
	DictionaryPath string
}

func NewTestCommand() *TestCommand {
	return &TestCommand{}
}

func (cmd *TestCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)

	ranges := make([]string, 0, 6)
	for _, r := range entities.TestRanges() {
		ranges = append(ranges, string(r))
	}

	fs.StringVar(&cmd.Range, "range", string(entities.RangeCet4), "Word list to test against: "+strings.Join(ranges, ", "))
	fs.IntVar(&cmd.Count, "count", 10, "Number of questions")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultUserDatabasePath, "Path to the user database file")
	fs.StringVar(&cmd.DictionaryPath, "dictionary", config.DefaultDictionaryPath, "Path to the reference dictionary database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s test [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Run an interactive vocabulary test. Questions alternate between\n")
		fmt.Fprintf(os.Stderr, "multiple choice and fill-in-the-blank. The result and any mistakes\n")
		fmt.Fprintf(os.Stderr, "are saved to the user database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s test -range cet6 -count 20\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *TestCommand) Run() error {
	store, err := refdict.Open(cmd.DictionaryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	session := quiz.NewSession(store, records.NewRepository(db.DB))
	if err := session.Start(entities.TestRange(cmd.Range), cmd.Count); err != nil {
		if errors.Is(err, quiz.ErrNoWords) {
			fmt.Printf("No words available in range %q. Did you import a wordlist?\n", cmd.Range)
			return nil
		}
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		question, ok := session.Current()
		if !ok {
			break
		}
		number, total := session.Progress()

		fmt.Printf("\nQuestion %d/%d\n", number, total)
		answer, err := askQuestion(reader, question)
		if err != nil {
			return err
		}

		isRight, err := session.Submit(answer)
		if err != nil {
			return fmt.Errorf("failed to save test result: %w", err)
		}
		if isRight {
			fmt.Println("Correct!")
		} else if question.Kind == quiz.KindFill {
			fmt.Printf("Wrong. The word was: %s\n", question.Word)
		} else {
			fmt.Printf("Wrong. The answer was: %s\n", refdict.ShortTranslation(question.Translation))
		}
	}

	results := session.Results()
	rightCount := 0
	for _, p := range results {
		if p.IsRight {
			rightCount++
		}
	}
	fmt.Println("\n=== Test Summary ===")
	fmt.Printf("Score: %d/%d\n", rightCount, len(results))
	for _, p := range results {
		mark := "x"
		if p.IsRight {
			mark = "o"
		}
		fmt.Printf("  [%s] %-20s %s\n", mark, p.Word, refdict.ShortTranslation(p.Translation))
	}
	return nil
}

func askQuestion(reader *bufio.Reader, question quiz.Question) (string, error) {
	switch question.Kind {
	case quiz.KindChoice:
		fmt.Printf("Which is the translation of %q?\n", question.Word)
		for i, opt := range question.Options {
			fmt.Printf("  %d) %s\n", i+1, refdict.ShortTranslation(opt))
		}
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		// A bare option number selects that option
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(question.Options) {
			return question.Options[n-1], nil
		}
		return line, nil
	default:
		fmt.Printf("Complete the word: %s\n", question.Prompt)
		fmt.Printf("Meaning: %s\n", refdict.ShortTranslation(question.Translation))
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}
