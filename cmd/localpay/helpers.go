package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/cli"
	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/config"
	"github.com/localpay/localpay/internal/session"
	"github.com/localpay/localpay/internal/storage"
)

// initSessionStore opens the session file under the config directory.
func initSessionStore() (*session.Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return session.NewStore(filepath.Join(dir, "session.json"))
}

// initClient builds the API client wired to the session store: the
// stored token rides every authed request, and a 401 clears the session
// so the next command prompts for login again.
func initClient() (*api.Client, *session.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, config.Config{}, err
	}

	sessions, err := initSessionStore()
	if err != nil {
		return nil, nil, config.Config{}, err
	}

	client := api.NewClient(cfg.BaseURL,
		api.WithTimeout(cfg.Timeout),
		api.WithTokenSource(sessions),
		api.WithUnauthorizedHook(func() {
			_ = sessions.Clear()
		}),
	)
	return client, sessions, cfg, nil
}

// initStorage opens the local SQLite store and runs migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	common.LogDebug("local store ready", common.Fields{"path": cfg.DBPath})

	return store, nil
}

// requireSession loads the current session or tells the user to log in.
func requireSession(sessions *session.Store) (*session.Session, error) {
	sess, err := sessions.Load()
	if err != nil {
		return nil, fmt.Errorf("%s", cli.FormatWarning("No hay una sesión activa. Ejecutá 'localpay login' primero."))
	}
	return sess, nil
}
