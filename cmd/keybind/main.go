// Package main is the entry point for the keybind demo.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/keybind/internal/app"
	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/key"
	"github.com/dshills/keybind/internal/shortcut"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.platform != "" {
		cfg.Platform = opts.platform
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.scaffold {
		if err := scaffold(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.LogLevel),
		Output: os.Stderr,
		Prefix: "keybind",
	})

	application, err := app.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	if opts.list {
		printBindings(os.Stdout, application.Registry(), cfg.DisplayPlatform())
		return 0
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Quit()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	configPath string
	platform   string
	logLevel   string
	list       bool
	scaffold   bool
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "keybind.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "keybind.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.platform, "platform", "", "Display platform family: mac or pc (default: host)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.list, "list", false, "Print the registered bindings and exit")
	flag.BoolVar(&opts.list, "l", false, "Print the registered bindings and exit (shorthand)")
	flag.BoolVar(&opts.scaffold, "init", false, "Write sample manifest, script, and override files")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keybind - keyboard shortcut engine demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keybind [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keybind -init               Write sample declaration files\n")
		fmt.Fprintf(os.Stderr, "  keybind                     Run the interactive demo\n")
		fmt.Fprintf(os.Stderr, "  keybind -list               Show bindings for this host\n")
		fmt.Fprintf(os.Stderr, "  keybind -list -platform mac Show bindings with mac glyphs\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keybind %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}

// printBindings writes the registered table, one entry per line, with
// labels rendered for the chosen platform.
func printBindings(w io.Writer, reg *shortcut.Registry, p key.Platform) {
	fmt.Fprintf(w, "%-26s %-20s %-10s %s\n", "ID", "KEYS", "SCOPE", "KIND")
	for _, e := range reg.Entries() {
		scope := string(e.Context())
		if scope == "" {
			scope = "global"
		}
		kind := e.Kind().String()
		if e.Overridden() {
			kind += " *"
		}
		fmt.Fprintf(w, "%-26s %-20s %-10s %s\n", e.ID(), e.Active().Label(p), scope, kind)
	}
}

const sampleManifest = `# keybind shortcut declarations.
#
# Each [[shortcut]] maps an identifier to a key sequence. Sequences are
# space-separated combinations; "ctrl" means Command on a Mac. An entry
# with a context only fires while a window carrying that context has
# focus. kind = "clutch" keeps the shortcut engaged until release
# (Escape in the demo).

[[shortcut]]
id = "app.quit"
keys = "ctrl+q"

[[shortcut]]
id = "app.focusNext"
keys = "f2"

[[shortcut]]
id = "app.rebind"
keys = "f3"

[[shortcut]]
id = "file.save"
keys = "ctrl+s"
context = "editor"

[[shortcut]]
id = "file.saveAll"
keys = "ctrl+k ctrl+s"

[[shortcut]]
id = "nav.scroll"
keys = "ctrl+space"
kind = "clutch"
`

const sampleScript = `-- keybind scripted declarations. Runs after the manifest; both feed
-- the same registry.

keybind.bind("script.hello", "f6")

-- Platform-dependent declarations branch on the host family.
if keybind.platform() == "mac" then
  keybind.bind("script.palette", "alt+p", { context = "editor" })
else
  keybind.bind("script.palette", "ctrl+shift+p", { context = "editor" })
end
`

// scaffold writes the sample files next to the configured paths.
// Existing files are left alone.
func scaffold(cfg config.Config) error {
	files := []struct {
		path    string
		content string
	}{
		{cfg.ManifestPath, sampleManifest},
		{cfg.ScriptPath, sampleScript},
		{cfg.OverridesPath, "{}\n"},
	}

	for _, f := range files {
		if f.path == "" {
			continue
		}
		if _, err := os.Stat(f.path); err == nil {
			fmt.Printf("keeping existing %s\n", f.path)
			continue
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
		fmt.Printf("wrote %s\n", f.path)
	}
	return nil
}
