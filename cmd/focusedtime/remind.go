// Package main is the entry point for the focusedtime application.
// This file contains the remind subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"focusedtime/internal/notify"
	"focusedtime/internal/remind"
	"focusedtime/internal/storage"
)

// remindHelpText is the help message for the remind subcommand.
const remindHelpText = `focusedtime remind - Run the reminder scheduler

USAGE:
    focusedtime remind [OPTIONS]

OPTIONS:
    -h, --help   Show this help message

DESCRIPTION:
    Runs the reminder scheduler in the foreground, without the TUI. A
    desktop notification fires shortly before every upcoming available
    hour, using the lead time configured in the app. The state record is
    watched for changes, so edits made in another terminal take effect
    without a restart.

    Reminders must be enabled in the app (dashboard pane). Stop with
    Ctrl+C.

EXAMPLES:
    # Run in the foreground
    focusedtime remind

    # Keep it running in the background
    focusedtime remind &
`

// runRemind handles the "focusedtime remind" subcommand.
func runRemind(args []string) {
	fs := flag.NewFlagSet("remind", flag.ExitOnError)

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, remindHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(remindHelpText)
		os.Exit(0)
	}

	cfg, disk := openStorage()

	st, err := disk.LoadState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	scheduler := remind.NewScheduler(notify.New(), cfg.Notifications.Sound)
	scheduler.Reschedule(st)

	if st.Reminders.Enabled {
		fmt.Printf("Reminder scheduler running, %d reminder(s) pending.\n", scheduler.Pending())
	} else {
		fmt.Println("Reminders are currently disabled; waiting for changes.")
	}
	fmt.Println("Press Ctrl+C to stop.")

	// Reschedule whenever the record changes on disk. Editors write in
	// bursts, so events are debounced before reloading.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot watch data directory: %v\n", err)
	} else {
		defer watcher.Close()
		if err := watcher.Add(disk.DataDir()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch data directory: %v\n", err)
		} else {
			go watchStateFile(watcher, disk, scheduler)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	scheduler.Stop()
	fmt.Println("\nReminder scheduler stopped.")
}

// watchStateFile reloads state and rebuilds the schedule on every change to
// the record, until the watcher is closed.
func watchStateFile(watcher *fsnotify.Watcher, disk *storage.Storage, scheduler *remind.Scheduler) {
	var debounce *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != storage.StateFile {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, func() {
				st, err := disk.LoadState()
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: reload failed: %v\n", err)
					return
				}
				scheduler.Reschedule(st)
				fmt.Printf("State changed, %d reminder(s) pending.\n", scheduler.Pending())
			})

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
