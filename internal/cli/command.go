package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ZaguanLabs/readlai"
	"github.com/ZaguanLabs/readlai/cache"
	"github.com/ZaguanLabs/readlai/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Execute runs the command line with the given arguments and streams.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := CreateRootCommand(NewFlags(), viper.New())
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// CreateRootCommand creates and configures the root cobra command.
// Configuration is resolved into v before any subcommand runs.
func CreateRootCommand(flags *Flags, v *viper.Viper) *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   readlai.Name,
		Short: "Cached LLM translation and dictionary backend for e-readers",
		Long: `readlai translates e-book sentences and looks up words through an
OpenAI-compatible chat endpoint (OpenRouter by default).

Translations are cached by sentence fingerprint, so re-opening a book
costs no further requests. Word lookups are never cached.

Examples:
  readlai key set sk-or-...                       # Store the API key
  readlai translate --lang es sentences.json      # Translate a batch
  echo '[{"sid":"b1:0","text":"Hello"}]' | readlai translate --lang fr
  readlai lookup --lang de serendipity            # Dictionary entry
  readlai cache stats                             # Inspect the cache`,
		Version:       readlai.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			used, err := InitConfig(v, flags.CfgFile)
			if err != nil {
				return err
			}
			cfg, err := LoadConfig(v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
			if used != "" {
				a.logger.Debug("using config file", zap.String("path", used))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	setupFlags(rootCmd, flags, v)

	rootCmd.AddCommand(
		newTranslateCommand(a, flags),
		newLookupCommand(a, flags),
		newKeyCommand(a),
		newCacheCommand(a, flags),
		newVersionCommand(),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags, v *viper.Viper) {
	pf := cmd.PersistentFlags()

	// Global flags
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.readlai.yaml)")

	// Endpoint flags
	pf.String("model", DefaultModel, "Model identifier sent to the endpoint")
	pf.Float64("temperature", DefaultTemperature, "Sampling temperature for translations")
	pf.String("transport", DefaultTransport, "Endpoint client: openai or http")
	pf.String("base-url", "", "OpenAI-compatible API root (default: OpenRouter)")
	pf.Duration("timeout", DefaultTimeout, "Request timeout")
	pf.String("key-file", "", "API key file (default: <config dir>/openrouter_key.txt)")
	pf.Int("rate-limit-rpm", 0, "Maximum requests per minute (0 disables pacing)")
	pf.Int("rate-limit-burst", 1, "Request burst size when pacing")
	pf.Bool("breaker", false, "Stop calling the endpoint after repeated transport failures")

	// Cache flags
	pf.String("store", DefaultStore, "Cache store: file, redis, sqlite or memory")
	pf.String("cache-dir", "", "Directory holding the cache snapshot (default: user config dir)")
	pf.String("redis-url", "", "Redis URL for the redis store (e.g., redis://localhost:6379/0)")
	pf.String("redis-key", "", "Redis key holding the snapshot")
	pf.String("sqlite-path", "", "Database file for the sqlite store")

	// Logging flags
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("log-json", false, "Write logs as JSON")

	// Bind flags to viper
	bindFlagsToViper(cmd, v)
}

// configKeys maps viper keys to their persistent flag names.
var configKeys = map[string]string{
	"model":            "model",
	"temperature":      "temperature",
	"transport":        "transport",
	"base_url":         "base-url",
	"timeout":          "timeout",
	"key_file":         "key-file",
	"rate_limit.rpm":   "rate-limit-rpm",
	"rate_limit.burst": "rate-limit-burst",
	"breaker.enabled":  "breaker",
	"store":            "store",
	"cache_dir":        "cache-dir",
	"redis_url":        "redis-url",
	"redis_key":        "redis-key",
	"sqlite_path":      "sqlite-path",
	"verbose":          "verbose",
	"log_json":         "log-json",
}

func bindFlagsToViper(cmd *cobra.Command, v *viper.Viper) {
	for key, name := range configKeys {
		_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(name))
	}
}

func addLanguageFlags(cmd *cobra.Command, flags *Flags) {
	cmd.Flags().StringVarP(&flags.Lang, "lang", "l", "", "Target language code (e.g., es, zh-CN)")
	cmd.Flags().StringVar(&flags.Label, "label", "", "Target language name used in prompts (default: derived from --lang)")
	_ = cmd.MarkFlagRequired("lang")
}

func newTranslateCommand(a *app, flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [file|-]",
		Short: "Translate a JSON array of sentences",
		Long: `Translate reads a JSON array of {"sid": ..., "text": ...} objects from
the given file or standard input and writes the translations as a JSON
array of {"sid": ..., "translation": ...} objects in input order.

Sentence IDs carry the document scope before the first ":" (e.g. "book1:42").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sentences, err := readSentences(cmd, args)
			if err != nil {
				return err
			}

			tr, closeStore, err := a.translator(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeQuietly(closeStore)

			results, err := tr.Translate(cmd.Context(), readlai.TranslateRequest{
				Model:       a.cfg.Model,
				Temperature: a.cfg.Temperature,
				Target:      readlai.ResolveTargetLanguage(flags.Lang, flags.Label),
				Sentences:   sentences,
			})
			if err != nil {
				if !readlai.IsPersistenceError(err) || results == nil {
					return err
				}
				a.logger.Warn("translations were not cached", zap.Error(err))
			}

			return writeJSON(cmd.OutOrStdout(), results)
		},
	}
	addLanguageFlags(cmd, flags)
	return cmd
}

func readSentences(cmd *cobra.Command, args []string) ([]readlai.Sentence, error) {
	var r io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0]) // #nosec G304 - path is intentionally user-provided
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
		name = args[0]
	}

	var sentences []readlai.Sentence
	if err := json.NewDecoder(r).Decode(&sentences); err != nil {
		return nil, &readlai.TranslationError{Message: fmt.Sprintf("reading sentences from %s", name), Cause: err}
	}

	seen := make(map[string]struct{}, len(sentences))
	for _, s := range sentences {
		if s.ID == "" {
			return nil, &readlai.TranslationError{Message: "sentence without sid"}
		}
		if _, dup := seen[s.ID]; dup {
			return nil, &readlai.TranslationError{Message: fmt.Sprintf("duplicate sid %q", s.ID)}
		}
		seen[s.ID] = struct{}{}
	}
	return sentences, nil
}

func newLookupCommand(a *app, flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup WORD",
		Short: "Look up a word, explained in the target language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := readlai.NewTranslator(a.completer(), nil, readlai.WithLogger(a.logger))

			lookup, err := tr.Lookup(cmd.Context(), a.cfg.Model, readlai.ResolveTargetLanguage(flags.Lang, flags.Label), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), lookup)
		},
	}
	addLanguageFlags(cmd, flags)
	return cmd
}

func newKeyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored API key",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set KEY",
			Short: "Store the API key in the key file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				kf := a.keyFile()
				if err := kf.Save(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", kf.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the key file path",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), a.keyFile().Path())
			},
		},
	)
	return cmd
}

func newCacheCommand(a *app, flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect, export and import the translation cache",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Summarize cached translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeQuietly(closeStore)

			s, err := cache.LoadStats(cmd.Context(), store)
			if err != nil {
				return err
			}
			if flags.JSON {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			return writeStats(cmd.OutOrStdout(), s)
		},
	}
	stats.Flags().BoolVar(&flags.JSON, "json", false, "Output stats as JSON")

	export := &cobra.Command{
		Use:   "export FILE",
		Short: "Write all cached translations to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeQuietly(closeStore)

			n, err := cache.NewExporter(store).ExportToFile(cmd.Context(), args[0], map[string]string{
				"tool":    readlai.Name,
				"version": readlai.Version,
				"store":   a.cfg.Store,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", n, args[0])
			return nil
		},
	}

	imp := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge translations from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer a.closeQuietly(closeStore)

			result, err := cache.NewImporter(store).ImportFromFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries (%d skipped)\n", result.Imported, result.Failed)
			return nil
		},
	}

	cmd.AddCommand(stats, export, imp)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", readlai.Name, readlai.FullVersion())
			if readlai.GitCommit != "unknown" && readlai.GitCommit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", readlai.GitCommit)
			}
			if readlai.BuildDate != "unknown" && readlai.BuildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", readlai.BuildDate)
			}
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeStats(w io.Writer, s cache.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Entries:\t%d\n", s.Entries)
	fmt.Fprintf(tw, "Scopes:\t%d\n", s.Scopes)
	if s.Malformed > 0 {
		fmt.Fprintf(tw, "Malformed keys:\t%d\n", s.Malformed)
	}
	writeCounts(tw, "Languages", s.ByLanguage)
	writeCounts(tw, "Models", s.ByModel)
	return tw.Flush()
}

func writeCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range cache.SortedKeys(counts) {
		fmt.Fprintf(w, "  %s\t%d\n", strings.TrimSpace(k), counts[k])
	}
}
