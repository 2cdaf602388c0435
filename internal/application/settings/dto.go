package settings

import (
	"github.com/meditrack/backend/internal/domain/settings"
)

// SetSettingRequest represents a request to set one setting value
type SetSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SetMultipleRequest represents a batch of setting writes
type SetMultipleRequest struct {
	Values map[string]string `json:"values" binding:"required,min=1"`
}

// SettingResponse represents a resolved setting in API responses
type SettingResponse struct {
	Key          string   `json:"key"`
	Value        string   `json:"value"`
	Default      string   `json:"default"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Min          *float64 `json:"min,omitempty"`
	Max          *float64 `json:"max,omitempty"`
	Options      []string `json:"options,omitempty"`
	IsOverridden bool     `json:"is_overridden"`
}

func toSettingResponse(def *settings.Definition, value string, overridden bool) *SettingResponse {
	return &SettingResponse{
		Key:          def.Key,
		Value:        value,
		Default:      def.Default,
		Type:         string(def.Type),
		Category:     def.Category,
		Description:  def.Description,
		Min:          def.Min,
		Max:          def.Max,
		Options:      def.Options,
		IsOverridden: overridden,
	}
}
