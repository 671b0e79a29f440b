// Package servecmder provides the serve command for running the recall API server.
package servecmder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papercomputeco/recall/api"
	"github.com/papercomputeco/recall/api/mcp"
	"github.com/papercomputeco/recall/pkg/config"
	"github.com/papercomputeco/recall/pkg/dotdir"
	"github.com/papercomputeco/recall/pkg/eventstream"
	"github.com/papercomputeco/recall/pkg/eventstream/kafka"
	"github.com/papercomputeco/recall/pkg/eventstream/nop"
	"github.com/papercomputeco/recall/pkg/logger"
	"github.com/papercomputeco/recall/pkg/store"
	"github.com/papercomputeco/recall/pkg/store/inmemory"
	"github.com/papercomputeco/recall/pkg/store/postgres"
	"github.com/papercomputeco/recall/pkg/store/sqlite"
)

// sqliteFile is the database filename used when no explicit path is configured.
const sqliteFile = "messages.db"

type ServeCommander struct {
	listen           string
	storageProvider  string
	sqlitePath       string
	postgresDSN      string
	eventsProvider   string
	brokers          string
	topic            string
	logFile          string
	disableMCP       bool
	debug            bool
	configDir        string
	logger           *slog.Logger
}

const serveLongDesc string = `Run the recall API server.

The server persists insight messages and serves them back to hooks and
editor tooling. Storage, event publishing, and the listen address come
from flags, RECALL_* environment variables, or config.toml, in that order.

Examples:
  recall serve
  recall serve --listen :8765 --storage sqlite
  recall serve --storage postgres --postgres-dsn postgres://localhost/recall
  recall serve --events kafka --brokers localhost:9092`

const serveShortDesc string = "Run the recall API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	var v *viper.Viper

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			var err error
			v, err = config.InitViper(cmder.configDir)
			if err != nil {
				return err
			}

			config.BindRegisteredFlags(v, cmd, config.Flags, []string{
				config.FlagListen,
				config.FlagStorageProvider,
				config.FlagSQLite,
				config.FlagPostgresDSN,
				config.FlagEventsProvider,
				config.FlagEventsBrokers,
				config.FlagEventsTopic,
			})

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}

			// Resolve through viper so env vars and config.toml apply.
			cmder.listen = v.GetString("api.listen")
			cmder.storageProvider = v.GetString("storage.provider")
			cmder.sqlitePath = v.GetString("storage.sqlite_path")
			cmder.postgresDSN = v.GetString("storage.postgres_dsn")
			cmder.eventsProvider = v.GetString("events.provider")
			cmder.brokers = v.GetString("events.brokers")
			cmder.topic = v.GetString("events.topic")

			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagListen, &cmder.listen)
	config.AddStringFlag(cmd, config.Flags, config.FlagStorageProvider, &cmder.storageProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagSQLite, &cmder.sqlitePath)
	config.AddStringFlag(cmd, config.Flags, config.FlagPostgresDSN, &cmder.postgresDSN)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsProvider, &cmder.eventsProvider)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsBrokers, &cmder.brokers)
	config.AddStringFlag(cmd, config.Flags, config.FlagEventsTopic, &cmder.topic)
	cmd.Flags().BoolVar(&cmder.disableMCP, "disable-mcp", false, "Disable the MCP endpoint")
	cmd.Flags().StringVar(&cmder.logFile, "log-file", "", "Also append JSON logs to this file")

	return cmd
}

func (c *ServeCommander) run() error {
	log, closeLogs, err := c.newLogger()
	if err != nil {
		return err
	}
	defer closeLogs()
	c.logger = log

	storer, err := c.newStoreDriver()
	if err != nil {
		return err
	}
	defer storer.Close()

	publisher, err := c.newPublisher()
	if err != nil {
		return err
	}
	defer publisher.Close()

	mcpServer, err := mcp.NewServer(mcp.Config{
		Storer: storer,
		Noop:   c.disableMCP,
		Logger: c.logger,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	apiConfig := api.Config{
		ListenAddr: c.listen,
	}

	server, err := api.NewServer(apiConfig, storer, publisher, mcpServer, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}

// newLogger builds the serve logger: pretty output on stdout, fanned out to
// JSON records in --log-file when one is configured.
func (c *ServeCommander) newLogger() (*slog.Logger, func(), error) {
	pretty := logger.New(
		logger.WithDebug(c.debug),
		logger.WithPretty(true),
	)

	if c.logFile == "" {
		return pretty, func() {}, nil
	}

	f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", c.logFile, err)
	}

	file := logger.New(
		logger.WithDebug(c.debug),
		logger.WithJSON(true),
		logger.WithWriter(f),
	)

	return logger.Multi(pretty, file), func() { f.Close() }, nil
}

func (c *ServeCommander) newStoreDriver() (store.Driver, error) {
	switch c.storageProvider {
	case "sqlite":
		path, err := c.resolveSQLitePath()
		if err != nil {
			return nil, err
		}
		driver, err := sqlite.NewDriver(path)
		if err != nil {
			return nil, fmt.Errorf("creating SQLite store: %w", err)
		}
		c.logger.Info("using SQLite storage", "path", path)
		return driver, nil

	case "postgres":
		if c.postgresDSN == "" {
			return nil, fmt.Errorf("postgres storage requires --postgres-dsn")
		}
		driver, err := postgres.NewDriver(context.Background(), c.postgresDSN)
		if err != nil {
			return nil, fmt.Errorf("creating Postgres store: %w", err)
		}
		c.logger.Info("using Postgres storage")
		return driver, nil

	case "inmemory", "":
		c.logger.Info("using in-memory storage")
		return inmemory.NewDriver(), nil

	default:
		return nil, fmt.Errorf("unknown storage provider %q (want inmemory, sqlite, or postgres)", c.storageProvider)
	}
}

// resolveSQLitePath falls back to messages.db inside the resolved .recall/
// directory when no explicit path is configured.
func (c *ServeCommander) resolveSQLitePath() (string, error) {
	if c.sqlitePath != "" {
		return c.sqlitePath, nil
	}

	target, err := dotdir.NewManager().Target(c.configDir)
	if err != nil {
		return "", fmt.Errorf("resolving .recall directory: %w", err)
	}

	return filepath.Join(target, sqliteFile), nil
}

func (c *ServeCommander) newPublisher() (eventstream.Publisher, error) {
	switch c.eventsProvider {
	case "kafka":
		cfg := config.EventsConfig{Brokers: c.brokers}
		publisher, err := kafka.NewPublisher(kafka.Config{
			Brokers: cfg.BrokerList(),
			Topic:   c.topic,
		})
		if err != nil {
			return nil, fmt.Errorf("creating Kafka publisher: %w", err)
		}
		c.logger.Info("publishing insight events to Kafka",
			"brokers", c.brokers,
			"topic", c.topic,
		)
		return publisher, nil

	case "nop", "":
		return nop.NewPublisher(), nil

	default:
		return nil, fmt.Errorf("unknown events provider %q (want nop or kafka)", c.eventsProvider)
	}
}
