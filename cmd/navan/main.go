// Navan is a travel-planning chat assistant.
//
// It routes each user message through a deterministic rule cascade
// (intent, city, dates, preferences), enriches trips with live weather
// data, and delegates open-ended replies to a text-generation provider.
// Configuration is loaded from a single YAML file discovered
// automatically (see [config.DefaultSearchPaths]).
//
// Usage:
//
//	navan serve               Start the API server
//	navan chat                Interactive chat in the terminal
//	navan ask <message>       Ask a single question (for testing)
//	navan export <session>    Print a stored transcript
//	navan version             Print version and build information
//	navan -o json version     Output version information as JSON
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/navan-labs/navan/internal/api"
	"github.com/navan-labs/navan/internal/assistant"
	"github.com/navan-labs/navan/internal/buildinfo"
	"github.com/navan-labs/navan/internal/config"
	"github.com/navan-labs/navan/internal/llm"
	"github.com/navan-labs/navan/internal/transcript"
	"github.com/navan-labs/navan/internal/weather"
)

// main is intentionally minimal. It constructs the OS-level environment
// (context, stdio, argv) and delegates immediately to [run]. This keeps
// os.Exit, os.Stdout, and os.Args out of the application logic so that
// the full startup-to-shutdown lifecycle can be driven from tests.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point for the navan command. All OS-level
// dependencies except stdin are injected as parameters. Arguments are
// parsed by hand: the flag package relies on package-level globals
// (flag.CommandLine), which makes it impossible to call run()
// concurrently from tests, and our argument surface is small.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	var configPath string
	var outputFmt string // "text" (default) or "json"
	var command string
	var cmdArgs []string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++ // skip the value
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case (args[i] == "-o" || args[i] == "--output") && i+1 < len(args):
			outputFmt = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-o="):
			outputFmt = strings.TrimPrefix(args[i], "-o=")
		case strings.HasPrefix(args[i], "--output="):
			outputFmt = strings.TrimPrefix(args[i], "--output=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(args[i], "-") && command == "":
			command = args[i]
		default:
			if command != "" {
				cmdArgs = append(cmdArgs, args[i])
			} else {
				return fmt.Errorf("unknown flag: %s", args[i])
			}
		}
	}

	if outputFmt == "" {
		outputFmt = "text"
	}
	if outputFmt != "text" && outputFmt != "json" {
		return fmt.Errorf("unknown output format: %q (expected text or json)", outputFmt)
	}

	switch command {
	case "serve":
		return runServe(ctx, stdout, configPath)
	case "chat":
		return runChat(ctx, stdout, configPath)
	case "ask":
		if len(cmdArgs) == 0 {
			return fmt.Errorf("usage: navan ask <message>")
		}
		return runAsk(ctx, stdout, configPath, cmdArgs)
	case "export":
		if len(cmdArgs) == 0 {
			return fmt.Errorf("usage: navan export <session-id> [markdown|html]")
		}
		return runExport(stdout, configPath, cmdArgs)
	case "version":
		return runVersion(stdout, outputFmt)
	case "":
		return printUsage(stdout)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runServe starts the HTTP API server and blocks until the context is
// cancelled or the process receives SIGINT/SIGTERM.
func runServe(ctx context.Context, stdout io.Writer, configPath string) error {
	cfg, cfgPath, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := newLogger(stdout, level, "text")
	if cfgPath != "" {
		logger.Info("config loaded", "path", cfgPath)
	} else {
		logger.Info("no config file found, using defaults (offline provider)")
	}
	logger.Info(buildinfo.String())

	gen := buildGenerator(cfg, logger)
	weatherSvc := buildWeather(cfg, logger)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	ts, err := transcript.Open(filepath.Join(cfg.DataDir, "navan.db"))
	if err != nil {
		return fmt.Errorf("open transcript store: %w", err)
	}
	defer ts.Close()

	asst := assistant.New(logger, gen, weatherSvc,
		assistant.WithTranscripts(ts),
		assistant.WithHistoryTurns(cfg.HistoryTurns),
	)

	server := api.NewServer(cfg.Listen.Address, cfg.Listen.Port, asst, logger)
	server.SetTranscripts(ts)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

// runChat runs an interactive conversation in the terminal. State lives
// in memory only; exit with "exit", "quit", or EOF.
func runChat(ctx context.Context, stdout io.Writer, configPath string) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Keep the transcript readable: warnings only.
	logger := newLogger(stdout, slog.LevelWarn, "text")

	asst := assistant.New(logger, buildGenerator(cfg, logger), buildWeather(cfg, logger),
		assistant.WithHistoryTurns(cfg.HistoryTurns),
	)

	fmt.Fprintln(stdout, buildinfo.String())
	fmt.Fprintln(stdout, `Type "exit" to quit.`)
	fmt.Fprintln(stdout)

	var sessionID string
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(stdout, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "" {
			continue
		}

		res := asst.ProcessTurn(ctx, sessionID, line)
		sessionID = res.SessionID
		fmt.Fprintf(stdout, "Navan: %s\n\n", res.Reply)
	}
}

// runAsk processes a single message through a fresh session and prints
// the reply. Useful for smoke tests without starting the server.
func runAsk(ctx context.Context, stdout io.Writer, configPath string, args []string) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(stdout, slog.LevelWarn, "text")
	asst := assistant.New(logger, buildGenerator(cfg, logger), buildWeather(cfg, logger),
		assistant.WithHistoryTurns(cfg.HistoryTurns),
	)

	res := asst.ProcessTurn(ctx, "", strings.Join(args, " "))
	fmt.Fprintln(stdout, res.Reply)
	return nil
}

// runExport prints a stored transcript as markdown (default) or HTML.
func runExport(stdout io.Writer, configPath string, args []string) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	ts, err := transcript.Open(filepath.Join(cfg.DataDir, "navan.db"))
	if err != nil {
		return fmt.Errorf("open transcript store: %w", err)
	}
	defer ts.Close()

	sessionID := args[0]
	format := "markdown"
	if len(args) > 1 {
		format = args[1]
	}

	var out string
	switch format {
	case "markdown", "md":
		out, err = ts.ExportMarkdown(sessionID)
	case "html":
		out, err = ts.ExportHTML(sessionID)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprint(stdout, out)
	return nil
}

// runVersion prints build metadata in the requested output format.
func runVersion(w io.Writer, outputFmt string) error {
	info := buildinfo.Info()
	if outputFmt == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintln(w, buildinfo.String())
	for _, k := range []string{"version", "git_commit", "build_time", "go_version", "os", "arch"} {
		if v, ok := info[k]; ok {
			fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
		}
	}
	return nil
}

// printUsage writes the top-level help text to w.
func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "Navan - Travel Planning Assistant")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: navan [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve            Start the API server")
	fmt.Fprintln(w, "  chat             Interactive chat in the terminal")
	fmt.Fprintln(w, "  ask <message>    Ask a single question (for testing)")
	fmt.Fprintln(w, "  export <id>      Print a stored transcript (markdown or html)")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config <path>    Path to config file (default: auto-discover)")
	fmt.Fprintln(w, "  -o, --output fmt  Output format: text (default) or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config search order:")
	fmt.Fprintln(w, "  ./config.yaml, ~/.config/navan/config.yaml, /etc/navan/config.yaml")
	return nil
}

// newLogger builds a slog logger writing to w.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// loadConfig locates and parses the YAML configuration file. If explicit
// is non-empty, that exact path is used (and must exist). Without a
// config file anywhere, the defaults apply: offline generation, offline
// weather, local data dir. The returned path is "" in that case.
func loadConfig(explicit string) (*config.Config, string, error) {
	cfgPath, err := config.FindConfig(explicit)
	if err != nil {
		if explicit != "" {
			return nil, "", err
		}
		return config.Default(), "", nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	return cfg, cfgPath, nil
}

// buildGenerator selects the text-generation provider.
func buildGenerator(cfg *config.Config, logger *slog.Logger) llm.Client {
	if cfg.Generation.Provider == "deepseek" {
		return llm.NewDeepSeekClient(
			cfg.Generation.DeepSeek.BaseURL,
			cfg.Generation.DeepSeek.APIKey,
			cfg.Generation.DeepSeek.Model,
			logger,
		)
	}
	return llm.Offline{}
}

// buildWeather selects the weather backend. The offline generation
// provider pairs with canned weather so that a keyless install works
// end to end without network access.
func buildWeather(cfg *config.Config, logger *slog.Logger) weather.Service {
	if cfg.Generation.Provider == "offline" {
		return weather.Offline{}
	}
	return weather.NewClient(cfg.Weather.GeocodeURL, cfg.Weather.ForecastURL, logger)
}
