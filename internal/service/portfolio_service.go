package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/repository"
)

// PortfolioService handles the manually entered asset list.
type PortfolioService struct {
	db        *sql.DB
	assetRepo *repository.AssetRepository
	now       func() time.Time
	logger    *zap.Logger
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(db *sql.DB, assetRepo *repository.AssetRepository, logger *zap.Logger) *PortfolioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioService{
		db:        db,
		assetRepo: assetRepo,
		now:       time.Now,
		logger:    logger.With(zap.String("component", "portfolio")),
	}
}

// List retrieves every asset, oldest acquisition first.
func (s *PortfolioService) List(ctx context.Context) ([]model.Asset, error) {
	assets, err := s.assetRepo.GetAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveAssets, err)
	}
	return assets, nil
}

// Summary returns every asset together with the total portfolio value and the
// value-weighted 24h change, rounded to two decimals. An empty or worthless
// portfolio reports a change of 0.
func (s *PortfolioService) Summary(ctx context.Context) (model.PortfolioSummary, error) {
	assets, err := s.List(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	total := decimal.Zero
	weighted := decimal.Zero
	for _, a := range assets {
		value := decimal.NewFromFloat(a.Amount).Mul(decimal.NewFromFloat(a.Price))
		total = total.Add(value)
		weighted = weighted.Add(value.Mul(decimal.NewFromFloat(a.Change24h)))
	}

	change := decimal.Zero
	if !total.IsZero() {
		change = weighted.Div(total).Round(2)
	}

	return model.PortfolioSummary{
		Assets:     assets,
		TotalValue: total.InexactFloat64(),
		Change24h:  change.InexactFloat64(),
		AssetCount: len(assets),
	}, nil
}

// AddAsset stores a new asset acquired today. The request must already be validated.
// The symbol is upper-cased; a missing coin ID is derived from the name.
func (s *PortfolioService) AddAsset(ctx context.Context, req request.CreateAssetRequest) (model.Asset, error) {
	name := strings.TrimSpace(req.Name)
	coinID := strings.TrimSpace(req.CoinID)
	if coinID == "" {
		coinID = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	asset := model.Asset{
		ID:         uuid.New().String(),
		CoinID:     coinID,
		Name:       name,
		Symbol:     strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Amount:     req.Amount,
		Price:      req.Price,
		Value:      req.Amount * req.Price,
		AcquiredOn: today,
	}

	if err := s.assetRepo.InsertAsset(ctx, asset); err != nil {
		return model.Asset{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToCreateAsset, err)
	}

	s.logger.Info("asset added",
		zap.String("asset_id", asset.ID),
		zap.String("symbol", asset.Symbol),
		zap.Float64("amount", asset.Amount),
	)
	return asset, nil
}

// DeleteAsset removes the asset with the given ID and returns it as it was stored.
// Returns apperrors.ErrAssetNotFound when it does not exist.
func (s *PortfolioService) DeleteAsset(ctx context.Context, id string) (model.Asset, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repo := s.assetRepo.WithTx(tx)

	asset, err := repo.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			return model.Asset{}, err
		}
		return model.Asset{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToDeleteAsset, err)
	}

	if err := repo.DeleteAsset(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			return model.Asset{}, err
		}
		return model.Asset{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToDeleteAsset, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Asset{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToDeleteAsset, err)
	}

	s.logger.Info("asset deleted",
		zap.String("asset_id", asset.ID),
		zap.String("symbol", asset.Symbol),
	)
	return asset, nil
}

// SeedIfEmpty inserts assets in one transaction when no asset is stored yet.
// Assets without an ID get a new one. It returns the number of inserted assets.
func (s *PortfolioService) SeedIfEmpty(ctx context.Context, assets []model.Asset) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repo := s.assetRepo.WithTx(tx)

	count, err := repo.CountAssets(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, a := range assets {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if a.AcquiredOn.IsZero() {
			a.AcquiredOn = s.now().UTC()
		}
		if err := repo.InsertAsset(ctx, a); err != nil {
			return 0, fmt.Errorf("%w: %w", apperrors.ErrFailedToCreateAsset, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}

	s.logger.Info("portfolio seeded", zap.Int("assets", len(assets)))
	return len(assets), nil
}

// ApplyQuotes copies the latest market price and 24h change onto held assets.
// It returns the number of assets updated.
func (s *PortfolioService) ApplyQuotes(ctx context.Context, coins []model.MarketCoin) (int64, error) {
	var updated int64
	for _, c := range coins {
		n, err := s.assetRepo.UpdateQuote(ctx, c.ID, c.Price, c.Change24h)
		if err != nil {
			return updated, err
		}
		updated += n
	}
	return updated, nil
}
