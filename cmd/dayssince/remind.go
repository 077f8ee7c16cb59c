// Package main is the entry point for dayssince.
// This file contains the remind subcommand handler.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dayssince/internal/notify"
	"dayssince/internal/remind"
)

// remindHelpText is the help message for the remind subcommand.
const remindHelpText = `dayssince remind - Desktop reminders for anniversaries and due dates

USAGE:
    dayssince remind [OPTIONS]

OPTIONS:
    --once         Check once, send what is due, and exit
    -h, --help     Show this help message

DESCRIPTION:
    Sends a desktop notification for each anniversary or due date that is
    within reminders.lead_days days, and for each due date that has passed.
    Each reminder is sent once a day.

    Without --once the command keeps running and checks on the cron
    schedule in reminders.schedule (default "0 9 * * *", every day at 9am).

    Notifications use notify-send on Linux and osascript on macOS.

EXAMPLES:
    # Run from a login script
    dayssince remind &

    # Run from your own crontab instead
    0 9 * * * dayssince remind --once
`

// runRemind handles the "dayssince remind" subcommand.
func runRemind(args []string) {
	fs := flag.NewFlagSet("remind", flag.ExitOnError)

	onceFlag := fs.Bool("once", false, "check once and exit")
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

	cfg := loadConfig()

	notifier := notify.New()
	if !notifier.IsSupported() {
		fmt.Fprintln(os.Stderr, "Error: desktop notifications are not supported on this system")
		os.Exit(1)
	}

	store := openStore(cfg)
	defer store.Close()

	scheduler := remind.NewScheduler(store, notifier, cfg.Reminders)

	if *onceFlag {
		sent, err := scheduler.Check()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error sending reminders: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sent %d reminders\n", sent)
		return
	}

	if !cfg.Reminders.Enabled {
		fmt.Println("Note: reminders.enabled is false in the config; running anyway.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Checking reminders on schedule %q. Press Ctrl+C to stop.\n", cfg.Reminders.Schedule)
	if err := scheduler.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error running reminders: %v\n", err)
		os.Exit(1)
	}
}
