package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/zmx4/aelp/internal/config"
	"github.com/zmx4/aelp/internal/refdict"
)

// SearchCommand looks up a word, or reverse-searches by translation
// text, in the reference dictionary.
type SearchCommand struct {
	Word           string
	Translation    string
	DictionaryPath string
}

func NewSearchCommand() *SearchCommand {
	return &SearchCommand{}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	fs.StringVar(&cmd.Word, "word", "", "Word to look up")
	fs.StringVar(&cmd.Translation, "translation", "", "Translation text to reverse-search")
	fs.StringVar(&cmd.DictionaryPath, "dictionary", config.DefaultDictionaryPath, "Path to the reference dictionary database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s search -word <word> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Look up a word in the reference dictionary, or find words by a\n")
		fmt.Fprintf(os.Stderr, "fragment of their translation.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s search -word apple\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s search -translation fruit\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Word == "" && cmd.Translation == "" {
		return fmt.Errorf("one of -word or -translation is required")
	}

	return nil
}

func (cmd *SearchCommand) Run() error {
	store, err := refdict.Open(cmd.DictionaryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if cmd.Word != "" {
		entry, err := store.QueryWordInfo(cmd.Word)
		if err != nil {
			return fmt.Errorf("lookup failed: %w", err)
		}
		if entry == nil {
			fmt.Printf("No entry for %q\n", cmd.Word)
			return nil
		}

		fmt.Printf("%s\n", entry.Word)
		if tags := entry.Tags(); len(tags) > 0 {
			fmt.Printf("  [%s]\n", strings.Join(tags, ", "))
		}
		for _, line := range strings.Split(entry.Translation, "\n") {
			fmt.Printf("  %s\n", line)
		}
		return nil
	}

	words, err := store.QueryWords(cmd.Translation)
	if err != nil {
		return fmt.Errorf("reverse search failed: %w", err)
	}
	if len(words) == 0 {
		fmt.Printf("No words match %q\n", cmd.Translation)
		return nil
	}

	fmt.Printf("Found %d words:\n", len(words))
	for _, w := range words {
		fmt.Printf("  %s\n", w)
	}
	return nil
}
