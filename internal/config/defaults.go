package config

const (
	defaultDataDir        = "~/.local/share/filmdex"
	defaultLogDir         = "~/.local/share/filmdex/logs"
	defaultLookupBaseURL  = "https://api.titlelookup.example.com/v1"
	defaultLookupLanguage = "en-US"
	defaultLookupTimeout  = 10
	defaultBatchSize      = 30
	defaultMaxBatches     = 0
	defaultWorkers        = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Lookup: Lookup{
			BaseURL:        defaultLookupBaseURL,
			Language:       defaultLookupLanguage,
			TimeoutSeconds: defaultLookupTimeout,
		},
		Enrichment: Enrichment{
			BatchSize:  defaultBatchSize,
			MaxBatches: defaultMaxBatches,
			Workers:    defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
