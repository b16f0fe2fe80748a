package config

// LoggingConfig configures the logrus logger shared by the CLI and the server
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stdout, stderr or file; reports go to stdout so stderr is the default
	Output   string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	Rotation      RotationConfig `mapstructure:"rotation"`
	IncludeCaller bool           `mapstructure:"include_caller"`
}

// RotationConfig maps onto lumberjack; sizes are MB, ages are days
type RotationConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxSize    int  `mapstructure:"max_size" validate:"min=1"`
	MaxBackups int  `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int  `mapstructure:"max_age" validate:"min=0"`
	Compress   bool `mapstructure:"compress"`
}

// Rotates reports whether file output goes through the rotating writer
func (c LoggingConfig) Rotates() bool {
	return c.Output == "file" && c.Rotation.Enabled
}
