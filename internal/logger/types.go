package logger

// Supported encodings.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// Default configuration values.
const (
	DefaultLevel    = "info"
	DefaultEncoding = EncodingJSON
)

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level (debug, info, warn, error, fatal).
	Level string `mapstructure:"level"`
	// Encoding is "json" (default) or "console" for interactive runs.
	Encoding string `mapstructure:"encoding"`
	// Development disables sampling so every entry is visible.
	Development bool `mapstructure:"development"`
	// OutputPaths lists URLs or file paths to write logging output to.
	OutputPaths []string `mapstructure:"output_paths"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.Encoding != EncodingConsole {
		c.Encoding = DefaultEncoding
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = []string{"stdout"}
	}
}
