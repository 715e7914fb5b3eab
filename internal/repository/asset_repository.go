package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// AssetRepository provides data access methods for the asset table.
// It stores the manually entered portfolio positions.
type AssetRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *AssetRepository) WithTx(tx *sql.Tx) *AssetRepository {
	return &AssetRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *AssetRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetAssets retrieves all assets ordered by acquisition date, oldest first.
// Returns an empty slice if no assets are found.
func (r *AssetRepository) GetAssets(ctx context.Context) ([]model.Asset, error) {
	query := `
		SELECT id, coin_id, name, symbol, amount, price, change_24h, acquired_on
		FROM asset
		ORDER BY acquired_on ASC, created_at ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAsset retrieves a single asset by ID.
// Returns apperrors.ErrAssetNotFound when no row matches.
func (r *AssetRepository) GetAsset(ctx context.Context, id string) (model.Asset, error) {
	query := `
		SELECT id, coin_id, name, symbol, amount, price, change_24h, acquired_on
		FROM asset
		WHERE id = ?
	`

	a, err := scanAsset(r.getQuerier().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, err
	}
	return a, nil
}

// CountAssets returns the number of stored assets.
func (r *AssetRepository) CountAssets(ctx context.Context) (int, error) {
	var count int
	if err := r.getQuerier().QueryRowContext(ctx, `SELECT COUNT(*) FROM asset`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}
	return count, nil
}

// InsertAsset stores a new asset. The asset ID must already be set.
func (r *AssetRepository) InsertAsset(ctx context.Context, a model.Asset) error {
	query := `
		INSERT INTO asset (id, coin_id, name, symbol, amount, price, change_24h, acquired_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		a.ID,
		a.CoinID,
		a.Name,
		a.Symbol,
		a.Amount,
		a.Price,
		a.Change24h,
		a.AcquiredOn.UTC().Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// DeleteAsset removes the asset with the given ID.
// Returns apperrors.ErrAssetNotFound when no row was deleted.
func (r *AssetRepository) DeleteAsset(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// UpdateQuote sets the latest price and 24h change on every asset of coinID.
// It returns the number of assets updated.
func (r *AssetRepository) UpdateQuote(ctx context.Context, coinID string, price, change24h float64) (int64, error) {
	query := `UPDATE asset SET price = ?, change_24h = ? WHERE coin_id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, price, change24h, coinID)
	if err != nil {
		return 0, fmt.Errorf("failed to update quote for %s: %w", coinID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (model.Asset, error) {
	var (
		a          model.Asset
		acquiredOn string
	)

	err := row.Scan(&a.ID, &a.CoinID, &a.Name, &a.Symbol, &a.Amount, &a.Price, &a.Change24h, &acquiredOn)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Asset{}, err
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to scan asset row: %w", err)
	}

	a.AcquiredOn, err = ParseTime(acquiredOn)
	if err != nil {
		return model.Asset{}, err
	}
	a.Value = a.Amount * a.Price

	return a, nil
}
