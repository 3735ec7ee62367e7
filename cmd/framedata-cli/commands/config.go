package commands

import (
	"framedata/internal/loader"
	"framedata/internal/roster"
	"framedata/internal/scrapers/supercombo"
	"framedata/lib/configutil"
)

type Config struct {
	BaseUrl           string  `json:"base_url"`
	CacheDir          string  `json:"cache_dir"`
	CacheTTLHours     int     `json:"cache_ttl_hours"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	Concurrency       int     `json:"concurrency"`
	// PagesDir switches the loader to pages saved on disk.
	PagesDir string `json:"pages_dir"`
	// Database is the sqlite file catalogs are saved to and opened from.
	Database string `json:"database"`
	// Roster replaces the built-in roster when it is not empty.
	Roster       []roster.Character `json:"roster"`
	RestyDumpDir string             `json:"resty_dump_dir"`
}

var defaultConfig = Config{
	BaseUrl:           supercombo.DefaultBaseUrl,
	CacheTTLHours:     24,
	RequestsPerSecond: 2,
	Concurrency:       loader.DefaultConcurrency,
}

func readConfig(path string) (Config, error) {
	return configutil.ReadConfigWithDefaults(path, defaultConfig)
}

func (c Config) roster() (*roster.Roster, error) {
	if len(c.Roster) == 0 {
		return roster.Default(), nil
	}
	return roster.New(c.Roster...)
}
