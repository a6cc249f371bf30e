package settings

import "context"

// SettingsRepository defines data access methods for user settings.
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID string) (UserSettings, error)
	Upsert(ctx context.Context, s UserSettings) (UserSettings, error)
}
