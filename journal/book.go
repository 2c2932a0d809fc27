package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rustyeddy/tradelog/internal/logger"
	"github.com/rustyeddy/tradelog/market"
	"github.com/rustyeddy/tradelog/pkg/id"
	"github.com/rustyeddy/tradelog/pnl"
	"github.com/rustyeddy/tradelog/trade"
)

var ErrUnknownSymbol = errors.New("unknown symbol")

// Book is the only mutation path for trades. Every write parses the raw
// input and reprices the trade before it reaches the store, so a stored
// profit always matches its price and size fields.
type Book struct {
	store  Store
	ref    market.Reference
	calc   pnl.Calculator
	strict bool
	newID  func() string
	log    *slog.Logger
}

type Option func(*Book)

// WithStrictSymbols rejects trades whose symbol is not in the catalog.
// Without it such trades are kept and priced at zero.
func WithStrictSymbols(strict bool) Option {
	return func(b *Book) { b.strict = strict }
}

func WithIDFunc(fn func() string) Option {
	return func(b *Book) { b.newID = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Book) { b.log = l }
}

func NewBook(store Store, ref market.Reference, opts ...Option) *Book {
	b := &Book{
		store: store,
		ref:   ref,
		calc:  pnl.NewCalculator(ref),
		newID: id.New,
		log:   logger.L(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Book) Reference() market.Reference { return b.ref }

// Add journals a new trade under a fresh ID.
func (b *Book) Add(ctx context.Context, in trade.Input) (trade.Trade, error) {
	t, err := b.build(in)
	if err != nil {
		return trade.Trade{}, err
	}
	t.ID = b.newID()
	t = t.Priced(b.calc)

	if err := b.store.Insert(ctx, t); err != nil {
		return trade.Trade{}, err
	}
	b.log.Debug("trade added", "id", t.ID, "symbol", t.Symbol, "profit", t.Profit().StringFixed(2))
	return t, nil
}

// Edit replaces every user field of trade id and reprices it. The ID is kept.
func (b *Book) Edit(ctx context.Context, tradeID string, in trade.Input) (trade.Trade, error) {
	if _, err := b.store.Get(ctx, tradeID); err != nil {
		return trade.Trade{}, err
	}

	t, err := b.build(in)
	if err != nil {
		return trade.Trade{}, err
	}
	t.ID = tradeID
	t = t.Priced(b.calc)

	if err := b.store.Update(ctx, t); err != nil {
		return trade.Trade{}, err
	}
	b.log.Debug("trade edited", "id", t.ID, "profit", t.Profit().StringFixed(2))
	return t, nil
}

func (b *Book) Delete(ctx context.Context, tradeID string) error {
	if err := b.store.Delete(ctx, tradeID); err != nil {
		return err
	}
	b.log.Debug("trade deleted", "id", tradeID)
	return nil
}

func (b *Book) Get(ctx context.Context, tradeID string) (trade.Trade, error) {
	return b.store.Get(ctx, tradeID)
}

// Snapshot returns a fresh copy of every trade in journal order. Callers
// may hold it for as long as they like; later writes do not touch it.
func (b *Book) Snapshot(ctx context.Context) ([]trade.Trade, error) {
	return b.store.List(ctx)
}

// Between returns the trades dated within [start, end] in journal order.
// Empty bounds are open, so Between(ctx, "", "") equals Snapshot.
func (b *Book) Between(ctx context.Context, start, end string) ([]trade.Trade, error) {
	return b.store.ListBetween(ctx, start, end)
}

// Day returns the trades on one YYYY-MM-DD day in journal order.
func (b *Book) Day(ctx context.Context, day string) ([]trade.Trade, error) {
	return b.store.ListByDay(ctx, day)
}

// Symbols lists the distinct journaled symbols, sorted.
func (b *Book) Symbols(ctx context.Context) ([]string, error) {
	return b.store.Symbols(ctx)
}

// Import journals a batch of inputs atomically. Nothing is written if
// any row fails to parse; the error names every bad row.
func (b *Book) Import(ctx context.Context, inputs []trade.Input) ([]trade.Trade, error) {
	out := make([]trade.Trade, 0, len(inputs))
	var errs []error
	for i, in := range inputs {
		t, err := b.build(in)
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		t.ID = b.newID()
		out = append(out, t.Priced(b.calc))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := b.store.InsertBulk(ctx, out); err != nil {
		return nil, err
	}
	b.log.Info("trades imported", "count", len(out))
	return out, nil
}

// Reprice recomputes every stored trade against the current reference
// tables and writes back those whose pips or profit changed.
func (b *Book) Reprice(ctx context.Context) (int, error) {
	trades, err := b.store.List(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, old := range trades {
		t := old.Priced(b.calc)
		if t.Profit().Equal(old.Profit()) && t.Pips().Equal(old.Pips()) {
			continue
		}
		if err := b.store.Update(ctx, t); err != nil {
			return changed, err
		}
		changed++
	}
	if changed > 0 {
		b.log.Info("trades repriced", "changed", changed)
	}
	return changed, nil
}

func (b *Book) build(in trade.Input) (trade.Trade, error) {
	t, err := in.Parse()
	if err != nil {
		return trade.Trade{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !b.calc.Known(t) {
		if b.strict {
			return trade.Trade{}, fmt.Errorf("%w: %w %q", ErrInvalidInput, ErrUnknownSymbol, t.Symbol)
		}
		b.log.Warn("unknown symbol, pips and profit will be zero", "symbol", t.Symbol)
	}
	return t, nil
}
