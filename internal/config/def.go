package config

func defaultConfig() Config {
	return Config{
		Precision: -1,
		Exports:   []string{"pattern.msi"},
	}
}
