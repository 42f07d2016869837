// Package cli implements the readable command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tsawler/readable"
	"github.com/tsawler/readable/internal/config"
	"github.com/tsawler/readable/internal/fetch"
	"github.com/tsawler/readable/internal/logging"
)

// Version is set at build time with -ldflags.
var Version = "dev"

const redisPingTimeout = 5 * time.Second

// app carries what every command needs once configuration is loaded.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
	cleanup []func()
}

// NewRootCommand builds the command tree. Output goes to out; cobra's own
// errors and usage go to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	var (
		file       string
		showScores bool
	)

	root := &cobra.Command{
		Use:   "readable [url]",
		Short: "Decide whether a web page is worth reading",
		Long: `readable fetches a page, counts keywords from a positive and a negative
lexicon in its text and prints whether the page is worth reading.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var src readable.TextSource
			if file != "" {
				src = readable.FileText(file)
			} else {
				pageURL := a.cfg.URL
				if len(args) == 1 {
					pageURL = args[0]
				}
				a.logger.Info("loading page", zap.String("url", pageURL))
				src = readable.TextFunc(fetch.New(nil, a.logger).Page(pageURL))
			}

			classifier, err := a.classifier(cmd.Context())
			if err != nil {
				return err
			}

			verdict, err := classifier.Classify(cmd.Context(), src)
			if err != nil {
				return err
			}
			return Render(out, verdict, showScores)
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	pf.String("assets", config.DefaultAssets, "directory holding lexicon sources and artifacts")
	pf.String("positive", readable.DefaultPositiveSource, "positive lexicon source name")
	pf.String("negative", readable.DefaultNegativeSource, "negative lexicon source name")
	pf.String("freshness", "existence", "artifact reuse policy: existence or hash")
	pf.Duration("write-timeout", config.DefaultWriteTimeout, "timeout for each artifact write")
	pf.String("redis", "", "keep artifacts in Redis at this address instead of the assets directory")
	pf.String("log-level", "warn", "log level: debug, info, warn or error")

	f := root.Flags()
	f.StringVar(&file, "file", "", "read the target text from a file instead of fetching a page")
	f.BoolVar(&showScores, "scores", false, "print the positive and negative scores")
	f.Bool("case-sensitive", false, "match keywords case-sensitively")
	f.Bool("whole-word", false, "only count keywords at word boundaries")
	f.Duration("timeout", config.DefaultTimeout, "timeout for fetching the page")
	f.Bool("save", false, "save input.txt and per-lexicon result files to the assets directory")

	cobra.CheckErr(bindFlags(a.v, map[string]string{
		"assets":         "assets",
		"positive":       "positive",
		"negative":       "negative",
		"freshness":      "freshness",
		"write_timeout":  "write-timeout",
		"redis.address":  "redis",
		"log.level":      "log-level",
		"case_sensitive": "case-sensitive",
		"whole_word":     "whole-word",
		"timeout":        "timeout",
		"save":           "save",
	}, pf, f))

	root.AddCommand(newLexiconCommand(a, out))
	root.AddCommand(newVersionCommand(out))

	return root
}

// bindFlags binds each viper key to the flag of the given name, looking the
// flag up in sets in order.
func bindFlags(v *viper.Viper, keys map[string]string, sets ...*pflag.FlagSet) error {
	for key, name := range keys {
		var flag *pflag.Flag
		for _, set := range sets {
			if flag = set.Lookup(name); flag != nil {
				break
			}
		}
		if flag == nil {
			return fmt.Errorf("failed to bind %s: no flag named %q", key, name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind %s flag: %w", name, err)
		}
	}
	return nil
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Encoding:    cfg.Log.Encoding,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	a.cleanup = append(a.cleanup, func() { _ = logger.Sync() })
	return nil
}

func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
}

// artifactCache returns the Redis cache when configured, else the assets
// directory.
func (a *app) artifactCache(ctx context.Context) (readable.ArtifactCache, error) {
	if a.cfg.Redis.Address == "" {
		return readable.NewDirCache(a.cfg.Assets), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Address,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", a.cfg.Redis.Address, err)
	}
	a.cleanup = append(a.cleanup, func() { _ = client.Close() })

	a.logger.Debug("using redis artifact cache", zap.String("address", a.cfg.Redis.Address))
	return readable.NewRedisCache(client, "", a.cfg.Redis.TTL), nil
}

func (a *app) store(ctx context.Context) (*readable.LexiconStore, error) {
	freshness, err := readable.ParseFreshness(a.cfg.Freshness)
	if err != nil {
		return nil, err
	}

	cache, err := a.artifactCache(ctx)
	if err != nil {
		return nil, err
	}

	return readable.NewLexiconStore(os.DirFS(a.cfg.Assets), cache,
		readable.WithFreshness(freshness),
		readable.WithWriteTimeout(a.cfg.WriteTimeout),
		readable.WithStoreLogger(a.logger),
	), nil
}

func (a *app) classifier(ctx context.Context) (*readable.Classifier, error) {
	store, err := a.store(ctx)
	if err != nil {
		return nil, err
	}

	opts := []readable.Option{
		readable.WithSources(a.cfg.Positive, a.cfg.Negative),
		readable.WithCounterConfig(readable.CounterConfig{
			IgnoreCase: !a.cfg.CaseSensitive,
			WholeWord:  a.cfg.WholeWord,
		}),
		readable.WithAcquireTimeout(a.cfg.Timeout),
		readable.WithLogger(a.logger),
	}
	if a.cfg.Save {
		opts = append(opts, readable.WithResultCache(readable.NewDirCache(a.cfg.Assets)))
	}

	return readable.NewClassifier(store, opts...), nil
}

func newVersionCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(out, "readable version %s\n", Version)
		},
	}
}
