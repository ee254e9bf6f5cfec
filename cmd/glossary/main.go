package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pbaille/glossary/internal/api"
	"github.com/pbaille/glossary/internal/app"
	"github.com/pbaille/glossary/internal/config"
	"github.com/pbaille/glossary/internal/dictionary"
	"github.com/pbaille/glossary/internal/fetcher"
	"github.com/pbaille/glossary/internal/gloss"
	"github.com/pbaille/glossary/internal/store"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "glossary",
		Short:        "Abbreviation glossaries for interlinear glossed text",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(builtinCmd())
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

func generateCmd() *cobra.Command {
	var (
		dictPath      string
		output        string
		noDecompose   bool
		keepCompounds bool
		strict        bool
		minMarked     int
		preferBuiltin bool
	)

	cmd := &cobra.Command{
		Use:   "generate [file|url|-]",
		Short: "Generate a glossary from glossed text",
		Long: "Reads glossed text from a file, a URL or stdin and writes the\n" +
			"abbreviations it uses as CSV (Abbreviation, Meaning, Category).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("no-decompose") {
				cfg.Glossary.NoDecompose = noDecompose
			}
			if flags.Changed("keep-compounds") {
				cfg.Glossary.KeepCompounds = keepCompounds
			}
			if flags.Changed("strict") {
				cfg.Glossary.Strict = strict
			}
			if flags.Changed("min-marked") {
				if minMarked < 1 {
					return fmt.Errorf("--min-marked must be at least 1")
				}
				cfg.Glossary.MinMarkedWords = minMarked
			}
			if flags.Changed("prefer-builtin") {
				cfg.Glossary.PreferBuiltin = preferBuiltin
			}

			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			text, err := readSource(cmd.Context(), cfg, source, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var records []dictionary.Record
			if dictPath != "" {
				records = readDictionary(cmd.ErrOrStderr(), logger, dictPath)
			}
			merged := dictionary.MergeBuiltin(records, app.MergeOptions(cfg.Glossary))

			entries, stats := gloss.GenerateWithStats(text, merged.Dictionary, app.GlossOptions(cfg.Glossary))
			logger.Debug("glossary generated",
				slog.Int("lines", stats.Lines),
				slog.Int("tokens", stats.Tokens),
				slog.Int("candidates", stats.Candidates),
				slog.Int("entries", stats.Entries),
			)

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			return dictionary.EncodeGlossary(out, entries)
		},
	}

	cmd.Flags().StringVarP(&dictPath, "dict", "d", "", "user dictionary CSV (Abbreviation, Meaning[, Category])")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&noDecompose, "no-decompose", false, "keep compound abbreviations whole")
	cmd.Flags().BoolVar(&keepCompounds, "keep-compounds", false, "list compounds as well as their parts")
	cmd.Flags().BoolVar(&strict, "strict", false, "only keep tokens shaped like abbreviations")
	cmd.Flags().IntVar(&minMarked, "min-marked", 1, "marked words a line needs to count as glossed")
	cmd.Flags().BoolVar(&preferBuiltin, "prefer-builtin", false, "let built-in meanings win over the user dictionary")
	return cmd
}

// readSource returns the text to gloss from stdin, a URL or a file
func readSource(ctx context.Context, cfg *config.Config, source string, stdin io.Reader) (string, error) {
	switch {
	case source == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case fetcher.IsURL(source):
		f := fetcher.New(cfg.Fetch.Timeout, cfg.Fetch.MaxBytes, cfg.Fetch.UserAgent)
		return f.Fetch(ctx, source)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
}

// readDictionary loads a user dictionary. Failures are reported and
// generation continues on the built-in dictionary alone.
func readDictionary(stderr io.Writer, logger *slog.Logger, path string) []dictionary.Record {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v; using built-in dictionary only\n", err)
		return nil
	}
	imp, err := dictionary.Decode(data)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %s: %v; using built-in dictionary only\n", path, err)
		return nil
	}
	logger.Debug("dictionary imported",
		slog.String("path", path),
		slog.Int("rows", len(imp.Records)),
		slog.Int("skipped", imp.Skipped),
		slog.String("encoding", imp.Encoding),
	)
	return imp.Records
}

func builtinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builtin",
		Short: "Print the built-in dictionary as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dictionary.EncodeDictionary(cmd.OutOrStdout(), dictionary.Builtin())
		},
	}
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				host, port, err := splitAddr(addr)
				if err != nil {
					return err
				}
				cfg.Server.Host, cfg.Server.Port = host, port
			}

			s, err := store.New(store.MemoryDSN)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.New(s, cfg, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "server address, overrides server.host and server.port")
	return cmd
}

func splitAddr(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --addr %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid --addr port %q: %w", portStr, err)
	}
	if host == "" {
		host = "0.0.0.0"
	}
	return host, port, nil
}
