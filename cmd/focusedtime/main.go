// Package main is the entry point for the focusedtime application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"focusedtime/internal/config"
	"focusedtime/internal/notify"
	"focusedtime/internal/remind"
	"focusedtime/internal/state"
	"focusedtime/internal/storage"
	"focusedtime/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `focusedtime - Plan and protect time for your goals, in the terminal

USAGE:
    focusedtime [OPTIONS]
    focusedtime <command> [ARGS]

COMMANDS:
    backup            Create a backup of the state record
    backup --list     List available backups
    restore NAME      Restore from a specific backup
    restore --latest  Restore from the most recent backup
    export            Generate a weekly report (text or CSV)
    import FILE       Import a previously exported state record
    export-state      Write the state record to stdout or a file
    remind            Run the reminder scheduler in the foreground

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    focusedtime is a keyboard-driven planner for goal-focused time. Define
    goals with a date range and a weekly availability template, fine-tune
    the derived hour blocks on a week grid, and log a plan and an
    accomplishment for any hour.

FEATURES:
    • Goals      - Date-ranged goals with weekly availability templates
    • Week Grid  - Toggle hour blocks, attach plans and accomplishments
    • Dashboard  - Possible/available/logged hours, progress, streaks
    • Local Data - One plain JSON record in ~/.focusedtime/

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3      Jump to specific pane
        ?            Show help overlay
        q            Quit

    Goals Pane:
        j/k, ↓/↑     Navigate
        a            Add goal
        e            Edit goal
        Enter/Space  Set active goal
        x            Delete goal

    Week Grid:
        h/j/k/l      Move the cursor
        Space        Toggle availability for the hour
        p            Edit the hour's plan
        d            Edit the hour's accomplishment
        [ / ]        Previous / next week

    Dashboard:
        r            Toggle reminders on/off
        m            Cycle reminder lead time (5/10/15 minutes)

DATA STORAGE:
    All data is stored as a single JSON record:
        ~/.focusedtime/state.json

CONFIGURATION:
    Optional config file: ~/.config/focusedtime/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    focusedtime

    # Create a backup
    focusedtime backup

    # Restore from the most recent backup
    focusedtime restore --latest

    # Last week's report as CSV
    focusedtime export --week 1 --format csv

    # Move your data to another machine
    focusedtime export-state state.json
    focusedtime import state.json

    # Show version
    focusedtime --version

    # Show this help
    focusedtime --help
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		case "export-state":
			runExportState(os.Args[2:])
			return
		case "remind":
			runRemind(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("focusedtime version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg, disk := openStorage()

	// Load the persisted state. A recovered or reset record still starts
	// the app; the warning explains what happened to the old data.
	st, err := disk.LoadState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	store := state.NewStore()
	store.Dispatch(state.LoadState{State: st})

	// Reminders fire while the app is open. The scheduler rebuilds its
	// timers from every state change, so edits take effect immediately.
	scheduler := remind.NewScheduler(notify.New(), cfg.Notifications.Sound)
	store.Subscribe(scheduler.Reschedule)
	scheduler.Reschedule(store.Snapshot())
	defer scheduler.Stop()

	// Create styles from theme config
	styles := ui.NewStylesFromTheme(&cfg.Theme)

	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}

	if err := ui.Run(store, disk, styles, appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// openStorage loads the configuration and opens the data directory. Every
// subcommand starts here; failures are fatal.
func openStorage() (*config.Config, *storage.Storage) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	disk, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	return cfg, disk
}
