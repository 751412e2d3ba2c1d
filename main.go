package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aquilax/postboard/api"
	apimemory "github.com/aquilax/postboard/api/memory"
	"github.com/aquilax/postboard/api/versatile"
	"github.com/aquilax/postboard/board"
	"github.com/aquilax/postboard/database"
	"github.com/aquilax/postboard/database/cached"
	dbmemory "github.com/aquilax/postboard/database/memory"
	"github.com/aquilax/postboard/database/postgres"
	"github.com/aquilax/postboard/database/sqlite"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	config := NewConfig()
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCommand(config).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(config *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "postboard",
		Short:         "A tiny threaded posting board on top of the versatile API",
		SilenceUsage: true,
	}
	f := root.PersistentFlags()
	f.StringVar(&config.API, "api", config.API, "API base URL")
	f.StringVar(&config.Database, "db", config.Database, "preference store: sqlite, postgres or memory")
	f.StringVar(&config.Dsn, "dsn", config.Dsn, "preference store DSN")
	f.IntVar(&config.Limit, "limit", config.Limit, "texts per page")
	f.BoolVar(&config.Offline, "offline", config.Offline, "use an in-memory API with demo data")
	f.StringVar(&config.LogLevel, "log-level", config.LogLevel, "debug, info, warn or error")

	root.AddCommand(newServeCommand(config), newTreeCommand(config), newPostCommand(config))
	return root
}

func newServeCommand(config *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(config, func(log *zap.Logger, b *board.Board) error {
				pb, err := NewPostBoard(config, log, b)
				if err != nil {
					return err
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return pb.Run(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&config.Server, "addr", config.Server, "listen address")
	cmd.Flags().StringVar(&config.Language, "lang", config.Language, "UI language")
	cmd.Flags().StringVar(&config.PostCooldown, "post-cooldown", config.PostCooldown, "minimum time between posts from one address, e.g. 10s")
	return cmd
}

func newTreeCommand(config *Config) *cobra.Command {
	var page int
	var plain bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the threads of a page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(config, func(log *zap.Logger, b *board.Board) error {
				s, err := b.Load(cmd.Context(), page-1)
				if err != nil {
					return err
				}
				return printTree(cmd.OutOrStdout(), s.Threads, plain)
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().BoolVar(&plain, "plain", false, "no colors")
	return cmd
}

func newPostCommand(config *Config) *cobra.Command {
	var in board.PostInput
	cmd := &cobra.Command{
		Use:   "post TEXT",
		Short: "Post a text, optionally as a reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Text = args[0]
			return withApp(config, func(log *zap.Logger, b *board.Board) error {
				s, err := b.Load(cmd.Context(), 0)
				if err != nil {
					return err
				}
				posted, err := b.CreatePost(cmd.Context(), s, in)
				if err != nil {
					return err
				}
				if !posted {
					return fmt.Errorf("nothing to post")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.ReplyUserID, "reply-user", "", "short id of the user replied to")
	cmd.Flags().StringVar(&in.ReplyTextID, "reply-text", "", "short id of the text replied to")
	return cmd
}

// withApp opens the logger, the API client and the preference store for fn.
func withApp(config *Config, fn func(*zap.Logger, *board.Board) error) error {
	log, err := NewLogger(config.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	prefs, err := openPrefs(config)
	if err != nil {
		log.Error("cannot open preference store", zap.String("db", config.Database), zap.Error(err))
		return err
	}
	defer prefs.Close()

	b := board.New(newClient(config, log), prefs, log).WithLimit(config.Limit)
	return fn(log, b)
}

func newClient(config *Config, log *zap.Logger) api.Client {
	if config.Offline {
		return apimemory.New().Seed(demoCollections(time.Now()))
	}
	return versatile.New(config.API, log)
}

func openPrefs(config *Config) (database.Database, error) {
	var db database.Database
	switch config.Database {
	case "sqlite":
		db = sqlite.New()
	case "postgres":
		db = postgres.New()
	case "memory":
		db = dbmemory.New()
	default:
		return nil, fmt.Errorf("unknown preference store %q", config.Database)
	}
	if err := db.Init(config.Database, config.Dsn); err != nil {
		return nil, err
	}
	if config.Database == "memory" {
		return db, nil
	}
	return cached.New(db), nil
}
