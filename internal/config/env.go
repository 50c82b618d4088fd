package config

import (
	"os"
	"strconv"
)

// applyEnv overlays recognized FORGE_* environment variables onto
// settings, the last and highest-precedence layer. Unlike the file
// layers this is a fixed mapping rather than a generic map merge,
// since each variable maps onto exactly one typed field.
func applyEnv(settings *Settings, lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup("FORGE_LOG_LEVEL"); ok {
		settings.Logging.Level = v
	}
	if v, ok := lookup("FORGE_THEME"); ok {
		settings.UI.Theme = v
	}
	if v, ok := lookup("FORGE_FONT_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			settings.UI.FontSize = n
		}
	}
	if v, ok := lookup("FORGE_TAB_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			settings.Editor.TabSize = n
		}
	}
	if v, ok := lookup("FORGE_INSERT_SPACES"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			settings.Editor.InsertSpaces = b
		}
	}
	if v, ok := lookup("FORGE_AI_PROVIDER"); ok {
		settings.AI.Provider = v
	}
	if v, ok := lookup("FORGE_AI_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			settings.AI.Enabled = b
		}
	}
	if v, ok := lookup("FORGE_GIT_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			settings.Git.Enabled = b
		}
	}
}
