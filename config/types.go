package config

// Config represents the complete configuration structure
type Config struct {
	JustWatch JustWatchConfig `mapstructure:"justwatch"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// JustWatchConfig holds JustWatch API defaults applied when flags are not set
type JustWatchConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Country  string `mapstructure:"country"`
	Language string `mapstructure:"language"`
	Count    int    `mapstructure:"count"`
	BestOnly bool   `mapstructure:"best_only"`
}

// FilterConfig contains the default offer filter and named presets
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default_expression"`
	Presets           map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
