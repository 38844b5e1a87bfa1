package main

import (
	"fmt"
	"os"

	"github.com/zmx4/aelp/internal/cli"
	"github.com/zmx4/aelp/internal/config"
	"github.com/zmx4/aelp/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "import-wordlist":
		runCommand(cli.NewImportWordlistCommand(), args)

	case "search", "dictionary":
		runCommand(cli.NewSearchCommand(), args)

	case "test":
		runCommand(cli.NewTestCommand(), args)

	case "favorites":
		runCommand(cli.NewFavoritesCommand(), args)

	case "mistakes":
		runCommand(cli.NewMistakesCommand(), args)

	case "export":
		runCommand(cli.NewExportCommand(), args)

	case "wipe":
		runCommand(cli.NewWipeCommand(), args)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// command is the shape every CLI subcommand implements.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func runCommand(cmd command, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve            Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  import-wordlist  Build the reference dictionary from an xlsx workbook\n")
	fmt.Fprintf(os.Stderr, "  search           Look up a word or reverse-search by translation\n")
	fmt.Fprintf(os.Stderr, "  test             Run an interactive vocabulary test\n")
	fmt.Fprintf(os.Stderr, "  favorites        List favorited words\n")
	fmt.Fprintf(os.Stderr, "  mistakes         List or review recorded mistakes\n")
	fmt.Fprintf(os.Stderr, "  export           Write favorites and mistakes to a markdown study sheet\n")
	fmt.Fprintf(os.Stderr, "  wipe             Delete all user data\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
