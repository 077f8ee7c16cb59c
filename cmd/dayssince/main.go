// Package main is the entry point for dayssince.
// It loads configuration, opens the event store, and starts the TUI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"dayssince/internal/config"
	"dayssince/internal/log"
	"dayssince/internal/storage"
	"dayssince/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `dayssince - Track how long it has been since the things that matter

USAGE:
    dayssince [OPTIONS]
    dayssince <command> [ARGS]

COMMANDS:
    export             Write all events and preferences to days_since_data.json
    export -f ics      Write events as an iCalendar file
    import FILE        Replace all data with a snapshot file
    import --from csv FILE   Add events from a CSV file
    import --from ics FILE   Add events from an iCalendar file
    report             Print upcoming anniversaries and due dates (Markdown)
    report -f json     Output the report as JSON
    backup             Create a backup of all data
    backup --list      List available backups
    restore NAME       Restore from a specific backup
    restore --latest   Restore from the most recent backup
    remind             Run the reminder daemon
    remind --once      Send reminders that are due now and exit

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

KEYBINDINGS:
    Events:
        h/j/k/l      Move between cards
        a            Add event
        e, Enter     Edit selected event
        r            Reset date to today
        x            Remove selected event
        Ctrl+Z, u    Undo
        Ctrl+Y       Redo

    View:
        /            Search by name
        f            Cycle filter (all, anniversaries, due dates, neither)
        t            Toggle detailed format (years, months, days)
        D            Toggle dark mode
        ?            Show help overlay
        q            Quit

DATA STORAGE:
    Data is stored in ~/.dayssince/ as plain JSON files, or in a SQLite
    database when storage.backend is "sqlite".

CONFIGURATION:
    Optional config file: ~/.config/dayssince/config.yaml

EXAMPLES:
    # Start the app
    dayssince

    # Back up your events to a file you can import elsewhere
    dayssince export -o events.json

    # Subscribe to anniversaries in your calendar app
    dayssince export -f ics

    # What is coming up in the next two weeks
    dayssince report --within 14
`

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		case "report":
			runReport(os.Args[2:])
			return
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "remind":
			runRemind(os.Args[2:])
			return
		}
	}

	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("dayssince version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	// The TUI owns the terminal, so diagnostics go to a file.
	logFile, err := tea.LogToFile(cfg.LogPath(), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := initTheme(store); err != nil {
		log.Warn("could not save initial theme", "error", err)
	}

	appCfg := &ui.AppConfig{
		Keys:             &cfg.Keys,
		Theme:            &cfg.Theme,
		ConfirmDeletions: cfg.UX.ConfirmDeletions,
		ShowOnboarding:   cfg.UX.ShowOnboarding,
		ColumnWidth:      cfg.UX.ColumnWidth,
	}

	if err := ui.Run(store, appCfg); err != nil {
		log.Error("app exited", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// initTheme follows the terminal background the first time the app runs,
// before any theme preference has been saved.
func initTheme(store *storage.Store) error {
	_, err := store.Backend().Read(storage.SlotTheme)
	if !errors.Is(err, storage.ErrSlotNotFound) {
		return nil
	}
	dark := termenv.HasDarkBackground()
	log.Debug("first run theme", "dark", dark)
	return store.SetDarkMode(dark)
}

// loadConfig loads the config file and applies its log level. It exits on
// error.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
	}
	log.SetLevel(level)
	return cfg
}

// openStore opens the configured storage backend. It exits on error.
func openStore(cfg *config.Config) *storage.Store {
	var (
		backend storage.Backend
		err     error
	)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		backend, err = storage.OpenSQLite(cfg.SQLitePath())
	default:
		backend, err = storage.NewFileBackend(cfg.GetDataDir())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(backend)
	if err != nil {
		backend.Close()
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	return store
}
