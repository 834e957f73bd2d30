package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/swapnode/swapd/internal/config"
	"github.com/swapnode/swapd/internal/core/state"
	"github.com/swapnode/swapd/internal/core/tx"
	_ "github.com/swapnode/swapd/internal/core/tx/swap" // register exchange actions
	"github.com/swapnode/swapd/internal/server/api/jsonrpc"
	"github.com/swapnode/swapd/internal/storage"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the exchange daemon",
	Long: `Start the swapd server:
- JSON-RPC endpoint for action submission and queries
- WebSocket settlement feed
- Health check endpoint`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.RunE = runServer
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	// The JSON-RPC transport is host-facing: the submitting host has already
	// authenticated the accounts it names, so every authorization claim on a
	// submitted action is accepted as-is.
	auth := tx.AuthorizerFunc(func(string) error { return nil })

	engine := tx.NewEngine(state.NewKVView(db), auth, tx.EngineConfig{
		SelfAccount:  cfg.SelfAccount,
		OwnerAccount: cfg.OwnerAccount,
	}, log.Named("engine"))

	feed := jsonrpc.NewFeed(log.Named("feed"))
	handler, err := jsonrpc.NewHandler(engine, cfg.Server.PoolCacheSize, feed, log.Named("rpc"))
	if err != nil {
		return err
	}
	server := jsonrpc.NewServer(handler, feed, cfg.Server.ListenAddr, log.Named("rpc"))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("swapd starting",
		zap.String("self_account", cfg.SelfAccount),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("listen", cfg.Server.ListenAddr))
	return server.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
