package terminal

// Config holds configuration for the terminal settings file.
type Config struct {
	// SettingsPath overrides the detected settings.json location.
	SettingsPath string `mapstructure:"settings_path" default:""`
	// Validate enables best-effort schema validation before saving.
	Validate bool `mapstructure:"validate" default:"true"`
	// SchemaURL is used when the document declares no $schema.
	SchemaURL string `mapstructure:"schema_url" default:"https://aka.ms/terminal-profiles-schema"`
	// SchemaTimeoutSeconds bounds the schema download.
	SchemaTimeoutSeconds int `mapstructure:"schema_timeout_seconds" default:"10"`
}
