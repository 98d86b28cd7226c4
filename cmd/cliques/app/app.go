package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/kestfor/FiveWordCliques/cmd/cliques/handler"
	"github.com/kestfor/FiveWordCliques/internal/services/finder"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/finderservice"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/notifier"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/output"
	"github.com/kestfor/FiveWordCliques/internal/services/finder/words"
	"github.com/kestfor/FiveWordCliques/pkg/logging"
	"github.com/spf13/cobra"
)

const progressPeriod = time.Second

type options struct {
	cfgPath  string
	verbose  bool
	input    string
	output   string
	workers  int
	limit    int
	strategy string
	format   string
	progress bool
	port     int
}

func New() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "cliques",
		Short: "Find five five-letter words that together use 25 distinct letters",
		Long: "Reads a word list, one word per line, and prints every combination of five words\n" +
			"with no letter in common. Anagrams are collapsed onto the first word seen.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().
		StringVarP(&opts.cfgPath, "config", "c", "", "path to configuration file")
	rootCmd.PersistentFlags().
		BoolVarP(&opts.verbose, "verbose", "v", false, "log every word and solution at debug level")
	rootCmd.PersistentFlags().
		IntVarP(&opts.workers, "workers", "w", 0, "number of search workers (default: number of CPUs)")
	rootCmd.PersistentFlags().
		IntVarP(&opts.limit, "limit", "l", 0, "stop after this many solutions (default: all)")
	rootCmd.PersistentFlags().
		StringVar(&opts.strategy, "strategy", "", "partitioning strategy: pairs, striped or contiguous")

	rootCmd.Flags().
		StringVarP(&opts.input, "input", "i", "-", "word list file, - for stdin")
	rootCmd.Flags().
		StringVarP(&opts.output, "output", "o", "-", "output file, - for stdout")
	rootCmd.Flags().
		StringVarP(&opts.format, "format", "f", "", "output format: tsv, csv or json")
	rootCmd.Flags().
		BoolVarP(&opts.progress, "progress", "p", false, "log search progress every second")

	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}

func newServeCommand(opts *options) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve searches over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	serveCmd.Flags().IntVar(&opts.port, "port", defaultPort, "http port")

	return serveCmd
}

func setup(cmd *cobra.Command, opts *options, service string) (*Config, error) {
	cfg, err := loadConfig(opts.cfgPath)
	if err != nil {
		return nil, err
	}

	applyFlags(cmd, opts, cfg)
	logging.InitLogger(cfg.Logger, os.Stderr, slog.String("service", service))

	if err := cfg.Validate(); err != nil {
		slog.Error("validate config failed", slog.Any("error", err))
		return nil, err
	}

	slog.Debug("config loaded", slog.String("path", opts.cfgPath))

	return cfg, nil
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, opts *options, cfg *Config) {
	flags := cmd.Flags()

	if opts.verbose {
		cfg.Logger.Level = "debug"
	}
	if flags.Changed("workers") {
		cfg.Finder.Workers = opts.workers
	}
	if flags.Changed("limit") {
		cfg.Finder.Limit = opts.limit
	}
	if flags.Changed("strategy") {
		cfg.Finder.Strategy = opts.strategy
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("progress") && opts.progress {
		cfg.Finder.ProgressPeriod = progressPeriod
	}
	if flags.Changed("port") {
		cfg.HTTP.Port = opts.port
	}
}

func notifiers(cfg *Config) []notifier.Notifier {
	ns := []notifier.Notifier{notifier.NewLogNotifier()}
	if cfg.Notifier.NotifyURL != "" {
		ns = append(ns, notifier.NewHTTPNotifier(cfg.Notifier))
	}
	return ns
}

func runFind(cmd *cobra.Command, opts *options) error {
	cfg, err := setup(cmd, opts, "cliques")
	if err != nil {
		return err
	}

	lines, err := readInput(cmd.InOrStdin(), opts.input)
	if err != nil {
		slog.Error("read word list failed", slog.Any("error", err))
		return err
	}

	svc, err := finderservice.NewService(cfg.Finder, notifiers(cfg)...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := svc.Find(ctx, lines)
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), opts.output, cfg.Output.Format, result.Solutions)
}

func readInput(stdin io.Reader, path string) ([]string, error) {
	if path == "" || path == "-" {
		return words.ReadLines(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", finder.ErrUnreadableInput, err)
	}
	defer f.Close()

	return words.ReadLines(f)
}

func writeOutput(stdout io.Writer, path, format string, solutions []finder.Solution) (err error) {
	dst := stdout

	if path != "" && path != "-" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("create output: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		dst = f
	}

	w, err := output.NewWriter(format, dst)
	if err != nil {
		return err
	}

	return output.WriteAll(w, solutions)
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, err := setup(cmd, opts, "cliques-server")
	if err != nil {
		return err
	}

	slog.Info("initializing dependencies...")
	svc, err := finderservice.NewService(cfg.Finder, notifiers(cfg)...)
	if err != nil {
		return err
	}
	slog.Info("dependencies initialized")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg.HTTP, svc)
}

func serve(ctx context.Context, httpServerConfig *HTTPServerConfig, svc finder.Service) error {
	slog.Info("initializing http server...")

	mux := http.NewServeMux()
	handler.NewHandler(svc).Register(mux)
	mux.HandleFunc("GET /health", healthHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", httpServerConfig.Port),
		Handler: recoverMiddleware(mux),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("http server initialized, serving...", slog.Int("port", httpServerConfig.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("failed to start server", slog.Any("error", err))
		return err
	}

	return nil
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				slog.Error("Unexpected panic", slog.Any("error", err), slog.String("stacktrace", string(debug.Stack())))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
