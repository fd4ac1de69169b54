package tui

import (
	"github.com/localpay/localpay/internal/api"
	"github.com/localpay/localpay/internal/model"
	"github.com/localpay/localpay/internal/storage"
	"github.com/localpay/localpay/internal/tui/themes"
)

// Config holds the dependencies for the interactive dashboard.
type Config struct {
	Client      *api.Client
	Storage     *storage.SQLiteStorage
	Account     model.Account
	AccountType model.AccountType
	PayHost     string
	Theme       themes.Theme
	Width       int
	Height      int
}
