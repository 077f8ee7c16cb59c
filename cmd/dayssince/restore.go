// Package main is the entry point for dayssince.
// This file contains the restore subcommand handler.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"dayssince/internal/backup"
)

// restoreHelpText is the help message for the restore subcommand.
const restoreHelpText = `dayssince restore - Restore data from a backup

USAGE:
    dayssince restore [OPTIONS] [BACKUP_NAME]

OPTIONS:
    --latest       Restore from the most recent backup
    --force, -f    Skip confirmation prompt
    -h, --help     Show this help message

ARGUMENTS:
    BACKUP_NAME    Name of the backup to restore (e.g., 2025-12-15_143022_000)
                   Use 'dayssince backup --list' to see available backups.

DESCRIPTION:
    Replaces all events and preferences with the contents of a backup.
    A safety backup of the current data is created first.

EXAMPLES:
    # Restore from a specific backup
    dayssince restore 2025-12-15_143022_000

    # Restore from the most recent backup
    dayssince restore --latest
`

// runRestore handles the "dayssince restore" subcommand.
func runRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)

	latestFlag := fs.Bool("latest", false, "restore from most recent backup")
	forceFlag := fs.Bool("force", false, "skip confirmation prompt")
	fs.BoolVar(forceFlag, "f", false, "skip confirmation prompt (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, restoreHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(restoreHelpText)
		os.Exit(0)
	}

	cfg := loadConfig()
	manager := backup.NewManager(cfg.GetDataDir(), version)

	var info *backup.Info
	var err error
	switch {
	case *latestFlag:
		info, err = manager.Latest()
		if errors.Is(err, backup.ErrNoBackups) {
			fmt.Fprintln(os.Stderr, "No backups available.")
			os.Exit(1)
		}
	case fs.NArg() > 0:
		info, err = manager.Get(fs.Arg(0))
	default:
		fmt.Fprintln(os.Stderr, "Error: no backup specified")
		fmt.Fprintln(os.Stderr, "Use 'dayssince restore BACKUP_NAME' or 'dayssince restore --latest'")
		fmt.Fprintln(os.Stderr, "Run 'dayssince backup --list' to see available backups.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Restoring from backup: %s\n", info.Name)
	fmt.Printf("  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  %s\n", formatStats(info.Stats))
	fmt.Println()

	if !*forceFlag {
		fmt.Println("⚠ This will overwrite your current data.")
		fmt.Print("Continue? [y/N] ")

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			os.Exit(1)
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			os.Exit(0)
		}
	}

	store := openStore(cfg)
	defer store.Close()

	fmt.Println("✓ Creating safety backup first...")
	safety, err := manager.Restore(store, info.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring backup: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Restored successfully from %s\n", info.Name)
	fmt.Printf("  To undo, run: dayssince restore %s\n", safety)
}
