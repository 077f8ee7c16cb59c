// Package main is the entry point for dayssince.
// This file contains the backup subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"dayssince/internal/backup"
	"dayssince/internal/config"
)

// backupHelpText is the help message for the backup subcommand.
const backupHelpText = `dayssince backup - Create and manage backups

USAGE:
    dayssince backup [OPTIONS]

OPTIONS:
    -l, --list     List available backups
    --prune N      Delete all but the N most recent backups
    -h, --help     Show this help message

DESCRIPTION:
    Creates a timestamped backup of all events and preferences.
    Backups are stored in ~/.dayssince/backups/ and can be restored later.

EXAMPLES:
    # Create a new backup
    dayssince backup

    # List all available backups
    dayssince backup --list

    # Keep only the ten newest
    dayssince backup --prune 10
`

// runBackup handles the "dayssince backup" subcommand.
func runBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)

	listFlag := fs.Bool("list", false, "list available backups")
	fs.BoolVar(listFlag, "l", false, "list available backups (shorthand)")

	pruneFlag := fs.Int("prune", -1, "keep only the N most recent backups")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, backupHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(backupHelpText)
		os.Exit(0)
	}

	cfg := loadConfig()
	manager := backup.NewManager(cfg.GetDataDir(), version)

	switch {
	case *listFlag:
		listBackups(manager)
	case *pruneFlag >= 0:
		pruneBackups(manager, *pruneFlag)
	default:
		createBackup(manager, cfg)
	}
}

// createBackup creates a new backup and displays the result.
func createBackup(manager *backup.Manager, cfg *config.Config) {
	store := openStore(cfg)
	defer store.Close()

	name, err := manager.Create(store.Export())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating backup: %v\n", err)
		os.Exit(1)
	}

	info, err := manager.Get(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading backup info: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Backup created: %s\n", name)
	fmt.Printf("  %s\n", formatStats(info.Stats))
	fmt.Printf("  Location: %s\n", info.Path)
}

// listBackups lists all available backups.
func listBackups(manager *backup.Manager) {
	backups, err := manager.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing backups: %v\n", err)
		os.Exit(1)
	}

	if len(backups) == 0 {
		fmt.Println("No backups available.")
		fmt.Println("Run 'dayssince backup' to create one.")
		return
	}

	fmt.Println("Available backups:")
	for _, b := range backups {
		fmt.Printf("  %s  (%s)   %s\n", b.Name, formatAge(b.CreatedAt), formatStats(b.Stats))
	}
}

// pruneBackups deletes all but the keep most recent backups.
func pruneBackups(manager *backup.Manager, keep int) {
	deleted, err := manager.Prune(keep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning backups: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Deleted %d backups, kept up to %d\n", deleted, keep)
}

func formatStats(s backup.Stats) string {
	return fmt.Sprintf("Events: %d, Anniversaries: %d, Due dates: %d", s.Events, s.Anniversaries, s.DueDates)
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return agoString(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return agoString(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return agoString(int(d.Hours()/24), "day")
	default:
		return agoString(int(d.Hours()/24/7), "week")
	}
}

func agoString(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
