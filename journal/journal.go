// Package journal owns trade records: storage backends, the Book that is
// the only way to mutate them, and CSV/Org interchange.
package journal

import (
	"context"
	"errors"

	"github.com/rustyeddy/tradelog/trade"
)

var (
	ErrNotFound     = errors.New("trade not found")
	ErrDuplicateKey = errors.New("duplicate trade id")
	ErrInvalidInput = errors.New("invalid input")
)

// Store persists priced trades. List and the date queries return trades
// in insertion order.
type Store interface {
	Insert(ctx context.Context, t trade.Trade) error
	InsertBulk(ctx context.Context, trades []trade.Trade) error
	Update(ctx context.Context, t trade.Trade) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (trade.Trade, error)
	List(ctx context.Context) ([]trade.Trade, error)

	// ListBetween selects trades dated within [start, end]. An empty bound is open.
	ListBetween(ctx context.Context, start, end string) ([]trade.Trade, error)
	ListByDay(ctx context.Context, day string) ([]trade.Trade, error)
	// Symbols returns the distinct symbols, sorted.
	Symbols(ctx context.Context) ([]string, error)

	Close() error
}
