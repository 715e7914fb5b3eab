package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithCoin("ethereum", "Ethereum", "ETH").
//	    WithAmount(4.2).
//	    WithPrice(3000).
//	    Build(t, db)
type AssetBuilder struct {
	ID         string
	CoinID     string
	Name       string
	Symbol     string
	Amount     float64
	Price      float64
	Change24h  float64
	AcquiredOn time.Time
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:         MakeID(),
		CoinID:     "bitcoin",
		Name:       "Bitcoin",
		Symbol:     "BTC",
		Amount:     0.5,
		Price:      50000,
		Change24h:  2.5,
		AcquiredOn: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithCoin sets the coin ID, name and symbol.
func (b *AssetBuilder) WithCoin(coinID, name, symbol string) *AssetBuilder {
	b.CoinID = coinID
	b.Name = name
	b.Symbol = symbol
	return b
}

// WithAmount sets the held amount.
func (b *AssetBuilder) WithAmount(amount float64) *AssetBuilder {
	b.Amount = amount
	return b
}

// WithPrice sets the unit price.
func (b *AssetBuilder) WithPrice(price float64) *AssetBuilder {
	b.Price = price
	return b
}

// WithChange24h sets the 24h change in percent.
func (b *AssetBuilder) WithChange24h(change float64) *AssetBuilder {
	b.Change24h = change
	return b
}

// WithAcquiredOn sets the acquisition date.
func (b *AssetBuilder) WithAcquiredOn(date time.Time) *AssetBuilder {
	b.AcquiredOn = date
	return b
}

// Build inserts the asset into the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, coin_id, name, symbol, amount, price, change_24h, acquired_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.CoinID, b.Name, b.Symbol, b.Amount, b.Price, b.Change24h,
		b.AcquiredOn.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:         b.ID,
		CoinID:     b.CoinID,
		Name:       b.Name,
		Symbol:     b.Symbol,
		Amount:     b.Amount,
		Price:      b.Price,
		Change24h:  b.Change24h,
		Value:      b.Amount * b.Price,
		AcquiredOn: b.AcquiredOn,
	}
}

// Convenience functions

// CreateAsset creates an asset for coinID with the given amount and price.
//
// Example usage:
//
//	asset := testutil.CreateAsset(t, db, "bitcoin", 0.5, 50000)
func CreateAsset(t *testing.T, db *sql.DB, coinID string, amount, price float64) model.Asset {
	t.Helper()
	return NewAsset().WithCoin(coinID, coinID, MakeSymbol(coinID)).WithAmount(amount).WithPrice(price).Build(t, db)
}

// CreatePreference stores a raw preference value, bypassing validation.
func CreatePreference(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO preference ("key", value, updated_at) VALUES (?, ?, ?)`, key, value, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test preference: %v", err)
	}
}
