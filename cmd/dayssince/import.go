// Package main is the entry point for dayssince.
// This file contains the import subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"dayssince/internal/backup"
	"dayssince/internal/importer"
	"dayssince/internal/storage"
)

// importHelpText is the help message for the import subcommand.
const importHelpText = `dayssince import - Import events

USAGE:
    dayssince import FILE
    dayssince import --from FORMAT [--dry-run] FILE

OPTIONS:
    --from FORMAT  Add events from another format instead of replacing
                   everything with a snapshot: ics or csv
    --dry-run      Preview a --from import without making changes
    -h, --help     Show this help message

DESCRIPTION:
    Without --from, FILE must be a snapshot written by 'dayssince export'.
    It replaces all events and preferences. A malformed file changes
    nothing. A backup of the current data is made first.

    With --from, events are added to the ones you have. Events with the
    same name and date as an existing one are skipped.

FORMATS:
    ics   iCalendar. DTSTART is the date, SUMMARY the name, and a yearly
          RRULE turns on the anniversary countdown.
    csv   A header row with name and date columns, and optionally
          anniversary (yes/no) and due_days.

EXAMPLES:
    # Restore a snapshot from another machine
    dayssince import days_since_data.json

    # Preview events from a calendar
    dayssince import --from ics --dry-run birthdays.ics

    # Add events from a spreadsheet
    dayssince import --from csv events.csv
`

// runImport handles the "dayssince import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fromFlag := fs.String("from", "", "merge events from format: ics or csv")
	dryRunFlag := fs.Bool("dry-run", false, "preview import without making changes")
	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(importHelpText)
		os.Exit(0)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected one file\n\n")
		fmt.Fprintf(os.Stderr, "Usage: dayssince import [--from FORMAT] FILE\n")
		fmt.Fprintf(os.Stderr, "\nRun 'dayssince import --help' for more information.\n")
		os.Exit(1)
	}
	filePath := fs.Arg(0)

	if *fromFlag == "" {
		if *dryRunFlag {
			fmt.Fprintln(os.Stderr, "Error: --dry-run needs --from")
			os.Exit(1)
		}
		runSnapshotImport(filePath)
		return
	}

	imp := importer.GetImporter(*fromFlag)
	if imp == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *fromFlag)
		fmt.Fprintf(os.Stderr, "Supported formats: %s\n", strings.Join(importer.SupportedFormats(), ", "))
		os.Exit(1)
	}

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if *dryRunFlag {
		runImportDryRun(imp, file)
	} else {
		runImportActual(imp, file)
	}
}

// runSnapshotImport replaces all data with the snapshot in path.
func runSnapshotImport(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := storage.ParseSnapshot(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		fmt.Fprintln(os.Stderr, "Nothing was changed.")
		os.Exit(1)
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	manager := backup.NewManager(cfg.GetDataDir(), version)
	safety, err := manager.Create(store.Export())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating safety backup: %v\n", err)
		os.Exit(1)
	}

	if err := store.Import(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		fmt.Fprintln(os.Stderr, "Nothing was changed.")
		os.Exit(1)
	}

	fmt.Printf("✓ Imported %d events from %s\n", len(store.Events()), path)
	fmt.Printf("  Previous data backed up as %s\n", safety)
}

// runImportDryRun previews the import without making changes.
func runImportDryRun(imp importer.Importer, file *os.File) {
	inputs, err := imp.Preview(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing file: %v\n", err)
		os.Exit(1)
	}

	if len(inputs) == 0 {
		fmt.Println("No events found to import.")
		os.Exit(0)
	}

	fmt.Printf("Preview: %d events to import\n", len(inputs))
	fmt.Println("────────────────────────────")

	showCount := min(len(inputs), 20)
	for _, in := range inputs[:showCount] {
		fmt.Printf("  %s  %s", in.Date, in.Name)

		var details []string
		if in.ShowAnniversary {
			details = append(details, "anniversary")
		}
		if in.ShowNextDueDate && in.DueDuration > 0 {
			details = append(details, fmt.Sprintf("due %d days after", in.DueDuration))
		}
		if len(details) > 0 {
			fmt.Printf(" (%s)", strings.Join(details, ", "))
		}
		fmt.Println()
	}

	if len(inputs) > 20 {
		fmt.Printf("  ... and %d more\n", len(inputs)-20)
	}

	fmt.Println()
	fmt.Println("Run without --dry-run to import.")
}

// runImportActual performs the actual import.
func runImportActual(imp importer.Importer, file *os.File) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	result, err := imp.Import(file, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Import complete!\n")
	fmt.Printf("  Imported: %d events\n", result.Imported)
	if result.Skipped > 0 {
		fmt.Printf("  Skipped:  %d already present\n", result.Skipped)
	}
	if len(result.Errors) > 0 {
		fmt.Printf("  Errors:   %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("    - %s\n", e)
		}
	}
}
