package settings

import (
	"context"
	"errors"

	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/settings"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Service handles application settings. Reads resolve the effective
// value (override when present, definition default otherwise); writes
// validate against the definition before anything is stored.
type Service struct {
	repo   settings.Repository
	logger *zap.Logger
}

// NewService creates a new settings service
func NewService(repo settings.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the resolved setting for a key
func (s *Service) Get(ctx context.Context, key string) (*SettingResponse, error) {
	def, err := settings.Lookup(key)
	if err != nil {
		return nil, err
	}

	override, err := s.repo.FindByKey(ctx, key)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	value, err := settings.EffectiveValue(key, override)
	if err != nil {
		return nil, err
	}

	return toSettingResponse(def, value, override != nil), nil
}

// All returns every setting with its effective value
func (s *Service) All(ctx context.Context) ([]SettingResponse, error) {
	overrides, err := s.overridesByKey(ctx)
	if err != nil {
		return nil, err
	}

	defs := settings.Definitions()
	out := make([]SettingResponse, 0, len(defs))
	for idx := range defs {
		def := defs[idx]
		override := overrides[def.Key]
		value := def.Default
		if override != nil {
			value = override.Value
		}
		out = append(out, *toSettingResponse(&def, value, override != nil))
	}
	return out, nil
}

// ByCategory returns the settings in one category with effective values
func (s *Service) ByCategory(ctx context.Context, category string) ([]SettingResponse, error) {
	defs := settings.DefinitionsByCategory(category)
	if len(defs) == 0 {
		return nil, shared.NewDomainError("UNKNOWN_CATEGORY", "Unknown settings category")
	}

	overrides, err := s.overridesByKey(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]SettingResponse, 0, len(defs))
	for idx := range defs {
		def := defs[idx]
		override := overrides[def.Key]
		value := def.Default
		if override != nil {
			value = override.Value
		}
		out = append(out, *toSettingResponse(&def, value, override != nil))
	}
	return out, nil
}

// Set upserts the override for a key. The value is validated against
// the definition before anything is written.
func (s *Service) Set(ctx context.Context, key, value, updatedBy string) (*SettingResponse, error) {
	override, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		override, err = settings.NewSetting(key, value)
		if err != nil {
			return nil, err
		}
	} else {
		if err := override.UpdateValue(value); err != nil {
			return nil, err
		}
	}
	if updatedBy != "" {
		override.SetUpdatedBy(updatedBy)
	}

	if err := s.repo.Save(ctx, override); err != nil {
		return nil, err
	}

	s.logger.Info("setting updated",
		zap.String("key", key),
		zap.String("value", value))

	def, _ := settings.Lookup(key)
	return toSettingResponse(def, override.Value, true), nil
}

// SetMultiple applies several writes sequentially; the first failing
// key aborts the batch, leaving earlier writes in place.
func (s *Service) SetMultiple(ctx context.Context, values map[string]string, updatedBy string) ([]SettingResponse, error) {
	out := make([]SettingResponse, 0, len(values))
	for key, value := range values {
		resp, err := s.Set(ctx, key, value, updatedBy)
		if err != nil {
			return out, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Reset removes the override for a key, restoring the default
func (s *Service) Reset(ctx context.Context, key string) error {
	if _, err := settings.Lookup(key); err != nil {
		return err
	}
	if err := s.repo.DeleteByKey(ctx, key); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	return nil
}

// ResetCategory removes all overrides in a category
func (s *Service) ResetCategory(ctx context.Context, category string) error {
	if len(settings.DefinitionsByCategory(category)) == 0 {
		return shared.NewDomainError("UNKNOWN_CATEGORY", "Unknown settings category")
	}
	return s.repo.DeleteByCategory(ctx, category)
}

// GetString resolves the effective value of a key as a string. Lookup
// failures fall back to the definition default, or empty for unknown keys.
func (s *Service) GetString(ctx context.Context, key string) string {
	def, err := settings.Lookup(key)
	if err != nil {
		return ""
	}
	override, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("setting lookup failed, using default",
				zap.String("key", key),
				zap.Error(err))
		}
		return def.Default
	}
	return override.Value
}

// GetBool resolves the effective value of a key as a boolean
func (s *Service) GetBool(ctx context.Context, key string) bool {
	return cast.ToBool(s.GetString(ctx, key))
}

// GetInt resolves the effective value of a key as an integer
func (s *Service) GetInt(ctx context.Context, key string) int {
	return cast.ToInt(s.GetString(ctx, key))
}

// DefaultOrderStatus resolves the configured status for new orders
func (s *Service) DefaultOrderStatus(ctx context.Context) order.Status {
	status := order.Status(s.GetString(ctx, settings.KeyDefaultOrderStatus))
	if !status.IsValid() {
		return order.StatusPending
	}
	return status
}

func (s *Service) overridesByKey(ctx context.Context) (map[string]*settings.Setting, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 0

	all, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*settings.Setting, len(all))
	for idx := range all {
		out[all[idx].Key] = &all[idx]
	}
	return out, nil
}
