package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that a portfolio asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrPreferenceNotFound indicates that no value is stored under a preference key.
	ErrPreferenceNotFound = errors.New("preference not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyAssetID indicates that a chart was requested without an asset identifier.
	ErrEmptyAssetID = errors.New("asset ID cannot be empty")

	// ErrInvalidWindow indicates that a chart window is not one of 1d, 7d, 30d or 1y.
	ErrInvalidWindow = errors.New("invalid chart window")

	// ErrInvalidDisplayUnit indicates that a currency is not one of EUR, USD or BTC.
	ErrInvalidDisplayUnit = errors.New("invalid display currency")

	// ErrInvalidNotificationKey indicates that a notification switch name is unknown.
	ErrInvalidNotificationKey = errors.New("invalid notification key")

	// ErrInvalidLimit indicates that a market list size is outside the accepted range.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrInvalidAmount indicates that an amount parameter is missing or not a number.
	ErrInvalidAmount = errors.New("invalid amount")

	// Validation errors for required fields
	ErrInvalidAssetName   = errors.New("asset name is required")
	ErrInvalidAssetSymbol = errors.New("asset symbol is required")
	ErrNonPositiveAmount  = errors.New("amount must be positive")
	ErrNonPositivePrice   = errors.New("price must be positive")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// ErrProviderUnavailable indicates that the market-data provider could not be reached
	// or returned an unusable response.
	ErrProviderUnavailable = errors.New("market data provider unavailable")

	// ErrShortSeries indicates that the provider returned fewer daily samples than requested.
	ErrShortSeries = errors.New("provider returned too few samples")

	ErrFailedToRetrieveAssets      = errors.New("failed to retrieve assets")
	ErrFailedToCreateAsset         = errors.New("failed to create asset")
	ErrFailedToDeleteAsset         = errors.New("failed to delete asset")
	ErrFailedToSavePreference      = errors.New("failed to save preference")
	ErrFailedToRetrievePreferences = errors.New("failed to retrieve preferences")
	ErrFailedToLoadDashboard       = errors.New("failed to load dashboard")
	ErrFailedToGetVersionInfo      = errors.New("failed to get version information")
)
