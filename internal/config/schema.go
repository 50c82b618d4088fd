// Package config loads and merges Forge's settings: built-in defaults,
// a user TOML file, and environment variable overrides, in that order
// of increasing precedence.
package config

// Settings is the full typed configuration tree. Every section has a
// zero value that is itself a sane default, so a config file that
// omits a section entirely still produces a usable Settings.
type Settings struct {
	Editor  EditorSettings
	UI      UISettings
	Input   InputSettings
	Files   FilesSettings
	Search  SearchSettings
	AI      AISettings
	Logging LoggingSettings
	Git     GitSettings
}

// EditorSettings controls buffer editing behavior.
type EditorSettings struct {
	TabSize              int
	InsertSpaces         bool
	WordWrap             string // "off", "on", "bounded"
	WordWrapColumn       int
	LineNumbers          string // "off", "on", "relative"
	CursorBlinking       bool
	ScrollOff            int
	AutoIndent           bool
	TrimTrailingOnType   bool
	FormatOnSave         bool
}

// UISettings controls the chrome around the editor surface.
type UISettings struct {
	Theme         string
	FontFamily    string
	FontSize      int
	LineHeight    float64
	ShowStatusBar bool
	ShowTabBar    bool
	ShowMinimap   bool
}

// InputSettings controls keybinding resolution.
type InputSettings struct {
	ChordTimeoutMillis int
	LeaderKey          string
}

// FilesSettings controls file I/O behavior.
type FilesSettings struct {
	Encoding            string
	EOL                 string // "auto", "lf", "crlf"
	TrimTrailingOnSave  bool
	InsertFinalNewline  bool
	AutoSave            string // "off", "afterDelay"
	AutoSaveDelayMillis int
	Exclude             []string
}

// SearchSettings controls the default search-panel behavior.
type SearchSettings struct {
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
	MaxResults    int
}

// AISettings controls the agent seam's provider selection.
type AISettings struct {
	Enabled     bool
	Provider    string // "anthropic", "openai", "gemini"
	Model       string
	MaxTokens   int
	Temperature float64
}

// LoggingSettings controls the application logger.
type LoggingSettings struct {
	Level string // "debug", "info", "warn", "error"
	JSON  bool
}

// GitSettings controls the git seam's gutter-mark watcher.
type GitSettings struct {
	Enabled          bool
	PollIntervalMillis int
}

// Default returns the built-in settings every install starts from.
func Default() Settings {
	return Settings{
		Editor: EditorSettings{
			TabSize:        4,
			InsertSpaces:   true,
			WordWrap:       "off",
			WordWrapColumn: 80,
			LineNumbers:    "on",
			CursorBlinking: true,
			ScrollOff:      2,
			AutoIndent:     true,
			FormatOnSave:   false,
		},
		UI: UISettings{
			Theme:         "default-dark",
			FontFamily:    "monospace",
			FontSize:      13,
			LineHeight:    1.4,
			ShowStatusBar: true,
			ShowTabBar:    true,
			ShowMinimap:   false,
		},
		Input: InputSettings{
			ChordTimeoutMillis: 600,
		},
		Files: FilesSettings{
			Encoding:            "utf-8",
			EOL:                 "auto",
			TrimTrailingOnSave:  false,
			InsertFinalNewline:  true,
			AutoSave:            "off",
			AutoSaveDelayMillis: 1000,
		},
		Search: SearchSettings{
			MaxResults: 1000,
		},
		AI: AISettings{
			Enabled:     false,
			Provider:    "anthropic",
			MaxTokens:   4096,
			Temperature: 0.2,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
		Git: GitSettings{
			Enabled:            true,
			PollIntervalMillis: 1000,
		},
	}
}
