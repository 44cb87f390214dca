package journal

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrMissingID        = errors.New("missing id")
	ErrMissingAccountID = errors.New("trade has no account id")
	ErrInvalidBalance   = errors.New("initial balance must be positive")
)

// Store persists accounts, trades, alerts and alert settings.
type Store interface {
	GetAccounts(ctx context.Context) ([]Account, error)
	GetAccount(ctx context.Context, id string) (Account, error)
	SaveAccount(ctx context.Context, a Account) error
	// DeleteAccount also deletes every trade the account owns.
	DeleteAccount(ctx context.Context, id string) error

	// GetTrades returns all trades when accountID is empty.
	GetTrades(ctx context.Context, accountID string) ([]Trade, error)
	GetTrade(ctx context.Context, id string) (Trade, error)
	SaveTrade(ctx context.Context, t Trade) error
	DeleteTrade(ctx context.Context, id string) error

	GetAlerts(ctx context.Context) ([]TradingAlert, error)
	SaveAlert(ctx context.Context, a TradingAlert) error
	DeleteAlert(ctx context.Context, id string) error

	// GetAlertSettings returns DefaultAlertSettings until settings are saved.
	GetAlertSettings(ctx context.Context) (AlertSettings, error)
	SaveAlertSettings(ctx context.Context, s AlertSettings) error

	Close() error
}
