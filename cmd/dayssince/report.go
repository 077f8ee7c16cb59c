// Package main is the entry point for dayssince.
// This file contains the report subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"

	"dayssince/internal/reports"
)

// reportHelpText is the help message for the report subcommand.
const reportHelpText = `dayssince report - Summarize upcoming and overdue dates

USAGE:
    dayssince report [OPTIONS]

OPTIONS:
    -f, --format FMT   Output format: markdown (default) or json
    -w, --within N     Look N days ahead (default 30)
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

DESCRIPTION:
    Lists anniversaries and due dates coming up in the next N days, due
    dates that have passed, and how long it has been since every event.

EXAMPLES:
    # Next 30 days in Markdown
    dayssince report

    # Next week as JSON
    dayssince report --within 7 --format json

    # Save to file
    dayssince report --output report.md
`

// runReport handles the "dayssince report" subcommand.
func runReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)

	formatFlag := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	withinFlag := fs.Int("within", 30, "days to look ahead")
	fs.IntVar(withinFlag, "w", 30, "days to look ahead (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, reportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(reportHelpText)
		os.Exit(0)
	}

	format := *formatFlag
	if format != "markdown" && format != "json" && format != "md" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown' or 'json'.\n", format)
		os.Exit(1)
	}
	if *withinFlag < 0 {
		fmt.Fprintln(os.Stderr, "Error: --within must not be negative")
		os.Exit(1)
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	report := reports.NewGenerator(store).Generate(*withinFlag)

	var output []byte
	if format == "json" {
		data, err := reports.FormatJSON(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
			os.Exit(1)
		}
		output = append(data, '\n')
	} else {
		output = []byte(reports.FormatMarkdown(report))
	}

	if *outputFlag == "" {
		fmt.Print(string(output))
		return
	}
	if err := writeOutput(*outputFlag, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Report written to %s\n", *outputFlag)
}
