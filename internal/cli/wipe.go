package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/zmx4/aelp/internal/config"
	"github.com/zmx4/aelp/internal/database"
)

// WipeCommand deletes all user data: words, favorites, mistakes and
// test records. The reference dictionary is untouched.
type WipeCommand struct {
	DatabasePath string
	Confirmed    bool
}

func NewWipeCommand() *WipeCommand {
	return &WipeCommand{}
}

func (cmd *WipeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("wipe", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultUserDatabasePath, "Path to the user database file")
	fs.BoolVar(&cmd.Confirmed, "yes", false, "Confirm the wipe (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s wipe -yes [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete every word, favorite, mistake and test record from the user\n")
		fmt.Fprintf(os.Stderr, "database. This cannot be undone.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if !cmd.Confirmed {
		return fmt.Errorf("refusing to wipe without -yes")
	}

	return nil
}

func (cmd *WipeCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.Wipe(); err != nil {
		return fmt.Errorf("wipe failed: %w", err)
	}

	fmt.Printf("User data wiped from %s\n", db.Path())
	return nil
}
