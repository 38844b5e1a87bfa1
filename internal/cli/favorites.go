package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/zmx4/aelp/internal/config"
	"github.com/zmx4/aelp/internal/database"
	"github.com/zmx4/aelp/internal/database/favorites"
	"github.com/zmx4/aelp/internal/refdict"
)

// FavoritesCommand lists the active favorites in the user database.
type FavoritesCommand struct {
	DatabasePath string
	ShowTags     bool
}

func NewFavoritesCommand() *FavoritesCommand {
	return &FavoritesCommand{}
}

func (cmd *FavoritesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("favorites", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultUserDatabasePath, "Path to the user database file")
	fs.BoolVar(&cmd.ShowTags, "tags", false, "Show graded list membership for each favorite")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s favorites [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List favorited words with their translations.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *FavoritesCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := favorites.NewRepository(db.DB)
	rows, err := repo.LoadFavorites()
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	if len(rows) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}

	fmt.Printf("%d favorites:\n", len(rows))
	for _, fav := range rows {
		if fav.Word == nil {
			continue
		}
		fmt.Printf("  %-20s %s\n", fav.Word.Text, refdict.ShortTranslation(fav.Word.Translation))
		if cmd.ShowTags {
			if tags := fav.Tags(); len(tags) > 0 {
				fmt.Printf("    %v\n", tags)
			}
		}
	}
	return nil
}
