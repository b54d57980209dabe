package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/othala/internal/index"
	"github.com/starford/othala/internal/mcpserver"
	"github.com/starford/othala/internal/notify"
	"github.com/starford/othala/internal/relocate"
	"github.com/starford/othala/internal/settings"
	"github.com/starford/othala/internal/storage"
	"github.com/starford/othala/internal/vault"
)

// services bundles the wired application services for one-shot commands.
type services struct {
	db       *index.DB
	vault    *vault.Vault
	reloc    *relocate.Service
	mcp      *mcpserver.Server
	settings *settings.Store
}

// buildServices opens storage and the index, runs an initial sync, and wires
// the vault and relocation services. Notices go to the log stream, which is
// the user surface outside the HTTP server.
func buildServices(cfg *Config, logger *slog.Logger) (*services, error) {
	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}
	if err := index.Sync(db, store, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("sync index: %w", err)
	}

	settingsStore := settings.NewStore(cfg.Settings.Path)
	v := vault.New(store, db, logger)
	reloc := relocate.NewService(v, settingsStore, notify.Log(logger), logger)

	return &services{
		db:       db,
		vault:    v,
		reloc:    reloc,
		mcp:      mcpserver.New(v, reloc, settingsStore),
		settings: settingsStore,
	}, nil
}

// RunRelocate performs a one-shot relocation of the given note's embedded
// attachments and reports the outcome on the log stream.
func RunRelocate(ctx context.Context, cfg *Config, notePath string) error {
	logger := newLogger(cfg)

	svcs, err := buildServices(cfg, logger)
	if err != nil {
		return err
	}
	defer svcs.db.Close()

	res, err := svcs.reloc.Relocate(ctx, notePath)
	if err != nil {
		return fmt.Errorf("relocate %q: %w", notePath, err)
	}
	logger.Info("relocation finished",
		slog.Int("moved", res.Moved),
		slog.String("folder", res.Folder))
	return nil
}

// RunMCP serves the MCP tool set over stdio until the client disconnects.
// Logs go to stderr: stdout belongs to the protocol.
func RunMCP(ctx context.Context, cfg *Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))

	svcs, err := buildServices(cfg, logger)
	if err != nil {
		return err
	}
	defer svcs.db.Close()

	return svcs.mcp.ServeStdio()
}

func newLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
}
