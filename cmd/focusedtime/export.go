// Package main is the entry point for the focusedtime application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"focusedtime/internal/fsutil"
	"focusedtime/internal/reports"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `focusedtime export - Generate weekly planning reports

USAGE:
    focusedtime export [OPTIONS]

OPTIONS:
    -w, --week N       Report N weeks back (0 = current week, default)
    -f, --format FMT   Output format: text (default) or csv
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

DESCRIPTION:
    Generates a report for one Monday-start week, covering every hour that
    was available, planned, or logged across all goals. The text format is
    a human-readable summary; the CSV format has one row per goal and hour
    for spreadsheets and further processing.

EXAMPLES:
    # This week's summary
    focusedtime export

    # Last week
    focusedtime export --week 1

    # CSV for a spreadsheet
    focusedtime export --format csv

    # Save last week's CSV to a file
    focusedtime export --week 1 --format csv --output week.csv
`

// runExport handles the "focusedtime export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	weekFlag := fs.Int("week", 0, "report N weeks back")
	fs.IntVar(weekFlag, "w", 0, "report N weeks back (shorthand)")

	formatFlag := fs.String("format", "text", "output format: text or csv")
	fs.StringVar(formatFlag, "f", "text", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

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

	// Validate format
	format := *formatFlag
	if format != "text" && format != "csv" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'text' or 'csv'.\n", format)
		os.Exit(1)
	}

	if *weekFlag < 0 {
		fmt.Fprintf(os.Stderr, "Error: --week must be zero or positive.\n")
		os.Exit(1)
	}

	_, disk := openStorage()

	st, err := disk.LoadState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	report := reports.Weekly(st, *weekFlag, time.Now())

	var output string
	if format == "csv" {
		var b strings.Builder
		if err := report.WriteCSV(&b); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating CSV: %v\n", err)
			os.Exit(1)
		}
		output = b.String()
	} else {
		output = report.TextSummary()
	}

	// Write output
	if *outputFlag != "" {
		if err := os.MkdirAll(filepath.Dir(*outputFlag), 0700); err != nil && filepath.Dir(*outputFlag) != "." {
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *outputFlag)
	} else {
		fmt.Print(output)
	}
}
