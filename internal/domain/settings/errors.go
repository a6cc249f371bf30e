package settings

import "errors"

var ErrSettingsNotFound = errors.New("settings not found")
