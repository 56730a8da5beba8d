package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/resdir/internal/config"
	"github.com/JonMunkholm/resdir/internal/directory"
	"github.com/JonMunkholm/resdir/internal/logging"
	"github.com/JonMunkholm/resdir/internal/source"
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load .env file if it exists (Overload overwrites existing env vars)
	_ = godotenv.Overload()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config overrides environment configuration. Set before calling Run().
	Config *config.Config

	// Loader overrides the configured data source. Set before calling Run().
	Loader directory.Loader

	closeSource func()
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{closeSource: func() {}}
}

// Close releases the data source.
func (m *Main) Close() error {
	if m.closeSource != nil {
		m.closeSource()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("resdir"),
		kong.Description("Browse a directory of community resources."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'resdir --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := m.Config
	if cfg == nil {
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("configuration: %w", err)
		}
	}
	deps.Config = cfg

	// Logs go to stderr so search and vocab output stays clean on stdout.
	deps.Logger = logging.New(stderr, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(deps.Logger)
	deps.Logger.Debug("configuration loaded", "config", cfg.String())

	// import writes to the source instead of reading it
	deps.Loader = m.Loader
	if deps.Loader == nil && cmd != "import" {
		loader, closeSource, err := source.Open(ctx, cfg.Source)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: check SOURCE_DRIVER and its settings")
			return fmt.Errorf("failed to open data source: %w", err)
		}
		m.closeSource = closeSource
		deps.Loader = loader
	}
	defer m.Close()

	return kongCtx.Run(deps)
}
