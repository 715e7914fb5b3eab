package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/currency"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// PreferenceStore is the durable key-value cache preferences are kept in.
// *repository.PreferenceRepository satisfies it.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// PreferenceService owns the active display unit and notification switches.
//
// State lives in memory for the lifetime of the process and every change is
// written through to the store before it becomes visible to readers.
type PreferenceService struct {
	store  PreferenceStore
	rate   decimal.Decimal
	logger *zap.Logger

	mu            sync.RWMutex
	unit          model.DisplayUnit
	notifications model.NotificationPreferences
}

// NewPreferenceService creates a PreferenceService holding the defaults.
// Call Load to pick up stored values.
func NewPreferenceService(store PreferenceStore, btcRate decimal.Decimal, logger *zap.Logger) *PreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceService{
		store:         store,
		rate:          btcRate,
		logger:        logger,
		unit:          model.DefaultDisplayUnit,
		notifications: model.DefaultNotificationPreferences(),
	}
}

// Load reads the stored currency and notification preferences.
//
// Missing or unrecognised values are ignored and the defaults stay active.
// Only a failing store is reported.
func (s *PreferenceService) Load(ctx context.Context) error {
	rawUnit, found, err := s.store.Get(ctx, model.PreferenceKeyCurrency)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePreferences, err)
	}

	unit := model.DefaultDisplayUnit
	if found {
		if u, ok := model.ParseDisplayUnit(rawUnit); ok {
			unit = u
		} else {
			s.logger.Warn("ignoring unrecognised stored currency", zap.String("value", rawUnit))
		}
	}

	rawNotifications, found, err := s.store.Get(ctx, model.PreferenceKeyNotifications)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrievePreferences, err)
	}

	notifications := model.DefaultNotificationPreferences()
	if found {
		parsed := model.DefaultNotificationPreferences()
		if err := json.Unmarshal([]byte(rawNotifications), &parsed); err != nil {
			s.logger.Warn("ignoring corrupt stored notification preferences", zap.Error(err))
		} else {
			notifications = parsed
		}
	}

	s.mu.Lock()
	s.unit = unit
	s.notifications = notifications
	s.mu.Unlock()

	s.logger.Debug("preferences loaded",
		zap.String("currency", string(unit)),
		zap.Any("notifications", notifications),
	)
	return nil
}

// Unit returns the active display unit.
func (s *PreferenceService) Unit() model.DisplayUnit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unit
}

// SetUnit persists unit and makes it the active display unit.
func (s *PreferenceService) SetUnit(ctx context.Context, unit model.DisplayUnit) error {
	if !unit.Valid() {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidDisplayUnit, unit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, model.PreferenceKeyCurrency, string(unit)); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSavePreference, err)
	}
	s.unit = unit

	s.logger.Info("display currency changed", zap.String("currency", string(unit)))
	return nil
}

// Formatter returns a formatter for the active display unit.
// The formatter is a snapshot and does not follow later SetUnit calls.
func (s *PreferenceService) Formatter() currency.Formatter {
	return currency.NewFormatter(s.Unit(), s.rate)
}

// Format renders amount in the active display unit.
func (s *PreferenceService) Format(amount float64) string {
	return s.Formatter().Format(amount)
}

// Notifications returns the current notification switches.
func (s *PreferenceService) Notifications() model.NotificationPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notifications
}

// Preferences returns the full preference state.
func (s *PreferenceService) Preferences() model.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.Preferences{
		Currency:      s.unit,
		Notifications: s.notifications,
	}
}

// SetNotifications persists prefs and makes them active.
func (s *PreferenceService) SetNotifications(ctx context.Context, prefs model.NotificationPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveNotificationsLocked(ctx, prefs)
}

// ToggleNotification flips the switch named key and returns the resulting state.
func (s *PreferenceService) ToggleNotification(ctx context.Context, key string) (model.NotificationPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.notifications
	if !next.Toggle(key) {
		return model.NotificationPreferences{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidNotificationKey, key)
	}
	if err := s.saveNotificationsLocked(ctx, next); err != nil {
		return model.NotificationPreferences{}, err
	}
	return next, nil
}

// saveNotificationsLocked requires s.mu to be held for writing.
func (s *PreferenceService) saveNotificationsLocked(ctx context.Context, prefs model.NotificationPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSavePreference, err)
	}
	if err := s.store.Set(ctx, model.PreferenceKeyNotifications, string(data)); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSavePreference, err)
	}
	s.notifications = prefs

	s.logger.Info("notification preferences changed", zap.Any("notifications", prefs))
	return nil
}
