package config

type FilterConfiguration struct {
	// Ignore holds expressions; torrents matching any of them are never removed by remove-finished.
	Ignore []string `koanf:"ignore"`
}
