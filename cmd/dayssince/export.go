// Package main is the entry point for dayssince.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"dayssince/internal/fsutil"
	"dayssince/internal/ical"
	"dayssince/internal/storage"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `dayssince export - Export events

USAGE:
    dayssince export [OPTIONS]

OPTIONS:
    -f, --format FMT   Output format: json (default) or ics
    -o, --output FILE  Write to FILE; "-" writes to stdout
    --no-due           Leave due dates out of the calendar (ics only)
    -h, --help         Show this help message

DESCRIPTION:
    The json format writes a snapshot of all events and preferences that
    'dayssince import' reads back. It defaults to days_since_data.json in
    the current directory.

    The ics format writes an iCalendar file with a yearly recurring entry
    for each anniversary and an entry on each due date. It defaults to
    days_since.ics.

EXAMPLES:
    # Snapshot to days_since_data.json
    dayssince export

    # Snapshot to stdout
    dayssince export -o -

    # Calendar file
    dayssince export -f ics -o ~/calendars/dayssince.ics
`

// runExport handles the "dayssince export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	formatFlag := fs.String("format", "json", "output format: json or ics")
	fs.StringVar(formatFlag, "f", "json", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file, - for stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	noDueFlag := fs.Bool("no-due", false, "leave due dates out of the calendar")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	format := *formatFlag
	if format != "json" && format != "ics" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'json' or 'ics'.\n", format)
		os.Exit(1)
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	var (
		data        []byte
		defaultName string
	)
	switch format {
	case "ics":
		doc, err := ical.Export(store.Events(), ical.Options{SkipDue: *noDueFlag})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting calendar: %v\n", err)
			os.Exit(1)
		}
		data = []byte(doc)
		defaultName = ical.FileName
	default:
		snap, err := store.ExportJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting events: %v\n", err)
			os.Exit(1)
		}
		data = snap
		defaultName = storage.SnapshotFileName
	}

	output := *outputFlag
	if output == "" {
		output = defaultName
	}
	if err := writeOutput(output, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
		os.Exit(1)
	}
	if output != "-" {
		fmt.Printf("✓ Exported %d events to %s\n", len(store.Events()), output)
	}
}

// writeOutput writes data to path atomically, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}
