package settings

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/meditrack/backend/internal/domain/shared"
)

// ValueType describes how a setting value is parsed and validated
type ValueType string

const (
	TypeText        ValueType = "text"
	TypeNumber      ValueType = "number"
	TypeBoolean     ValueType = "boolean"
	TypeSelect      ValueType = "select"
	TypeMultiSelect ValueType = "multiselect"
	TypeColor       ValueType = "color"
)

// Well-known setting keys
const (
	KeyDefaultOrderStatus    = "default_order_status"
	KeyAutoArchiveDays       = "auto_archive_days"
	KeyOldOrderThreshold     = "old_order_threshold"
	KeyPickupReminderDays    = "pickup_reminder_days"
	KeyAlertCheckInterval    = "alert_check_interval"
	KeyNotificationsEnabled  = "notifications_enabled"
	KeyLowStockAlertsEnabled = "low_stock_alerts_enabled"
	KeyPharmacyName          = "pharmacy_name"
	KeyLanguage              = "language"
	KeyThemeColor            = "theme_color"
	KeyOnboardingCompleted   = "onboarding_completed"
)

// Setting categories
const (
	CategoryGeneral       = "general"
	CategoryOrders        = "orders"
	CategoryNotifications = "notifications"
	CategoryAppearance    = "appearance"
)

// Definition describes one configurable setting: its type, default value
// and validation constraints. Definitions are static; only values change.
type Definition struct {
	Key         string    `json:"key"`
	Type        ValueType `json:"type"`
	Default     string    `json:"default"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

func f(v float64) *float64 { return &v }

var definitions = []Definition{
	{
		Key:         KeyDefaultOrderStatus,
		Type:        TypeSelect,
		Default:     "pending",
		Category:    CategoryOrders,
		Description: "Status assigned to newly created orders",
		Options:     []string{"pending", "ordered", "arrived", "ready_for_pickup", "delivered", "cancelled"},
	},
	{
		Key:         KeyAutoArchiveDays,
		Type:        TypeNumber,
		Default:     "30",
		Category:    CategoryOrders,
		Description: "Days after delivery before an order is archived; 0 disables archiving",
		Min:         f(0),
		Max:         f(365),
	},
	{
		Key:         KeyOldOrderThreshold,
		Type:        TypeNumber,
		Default:     "7",
		Category:    CategoryNotifications,
		Description: "Days a pending order may sit before it is flagged as stale",
		Min:         f(1),
		Max:         f(60),
	},
	{
		Key:         KeyPickupReminderDays,
		Type:        TypeNumber,
		Default:     "3",
		Category:    CategoryNotifications,
		Description: "Days an arrived order may wait before a pickup reminder is raised",
		Min:         f(1),
		Max:         f(30),
	},
	{
		Key:         KeyAlertCheckInterval,
		Type:        TypeNumber,
		Default:     "30",
		Category:    CategoryNotifications,
		Description: "Minutes between alert scans",
		Min:         f(5),
		Max:         f(120),
	},
	{
		Key:         KeyNotificationsEnabled,
		Type:        TypeBoolean,
		Default:     "true",
		Category:    CategoryNotifications,
		Description: "Master switch for the in-app notification center",
	},
	{
		Key:         KeyLowStockAlertsEnabled,
		Type:        TypeBoolean,
		Default:     "true",
		Category:    CategoryNotifications,
		Description: "Raise notifications when inventory items run low",
	},
	{
		Key:         KeyPharmacyName,
		Type:        TypeText,
		Default:     "",
		Category:    CategoryGeneral,
		Description: "Pharmacy display name",
	},
	{
		Key:         KeyLanguage,
		Type:        TypeSelect,
		Default:     "en",
		Category:    CategoryGeneral,
		Description: "Interface language",
		Options:     []string{"en", "ar"},
	},
	{
		Key:         KeyThemeColor,
		Type:        TypeColor,
		Default:     "#2563eb",
		Category:    CategoryAppearance,
		Description: "Accent color used by the interface",
	},
	{
		Key:         KeyOnboardingCompleted,
		Type:        TypeBoolean,
		Default:     "false",
		Category:    CategoryGeneral,
		Description: "Whether the initial onboarding seed has been run",
	},
}

// Definitions returns all known setting definitions
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// DefinitionsByCategory returns the definitions belonging to a category
func DefinitionsByCategory(category string) []Definition {
	var out []Definition
	for _, d := range definitions {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Lookup finds the definition for a key
func Lookup(key string) (*Definition, error) {
	for idx := range definitions {
		if definitions[idx].Key == key {
			d := definitions[idx]
			return &d, nil
		}
	}
	return nil, shared.NewDomainError("UNKNOWN_SETTING", fmt.Sprintf("Unknown setting key: %s", key))
}

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks a candidate value against the definition's constraints
func (d *Definition) Validate(value string) error {
	switch d.Type {
	case TypeText:
		return nil
	case TypeNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return shared.NewDomainError("INVALID_SETTING_VALUE", fmt.Sprintf("Setting %s requires a numeric value", d.Key))
		}
		if d.Min != nil && n < *d.Min {
			return shared.NewDomainError("INVALID_SETTING_VALUE", fmt.Sprintf("Setting %s must be at least %g", d.Key, *d.Min))
		}
		if d.Max != nil && n > *d.Max {
			return shared.NewDomainError("INVALID_SETTING_VALUE", fmt.Sprintf("Setting %s must be at most %g", d.Key, *d.Max))
		}
		return nil
	case TypeBoolean:
		if value != "true" && value != "false" {
			return shared.NewDomainError("INVALID_SETTING_VALUE", fmt.Sprintf("Setting %s requires true or false", d.Key))
		}
		return nil
	case TypeSelect:
		for _, opt := range d.Options {
			if value == opt {
				return nil
			}
		}
		return shared.NewDomainError("INVALID_SETTING_VALUE", fmt.Sprintf("Setting %s must be one of: %s", d.Key, strings.Join(d.Options, ", ")))
	case TypeMultiSelect:
		if value == "" {
			return nil
		}
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			valid := false
			for _, opt := range d.Options {
				if part == opt {
					valid = true
					break
				}
			}
			if !valid {
				return shared.NewDomainError("INVALID_SETTING_VALUE", fmt.Sprintf("Setting %s contains an unknown option: %s", d.Key, part))
			}
		}
		return nil
	case TypeColor:
		if !colorPattern.MatchString(value) {
			return shared.NewDomainError("INVALID_SETTING_VALUE", fmt.Sprintf("Setting %s requires a hex color like #2563eb", d.Key))
		}
		return nil
	default:
		return shared.NewDomainError("INVALID_SETTING_TYPE", fmt.Sprintf("Setting %s has an unsupported type", d.Key))
	}
}
