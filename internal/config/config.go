// Package config loads statscrape settings from a YAML file.
//
// Values missing from the file fall back to Default, so a config file only
// needs the settings it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is used for the XDG config directory
	AppName = "statscrape"

	// DefaultTimeout bounds each HTTP request
	DefaultTimeout = 25 * time.Second

	DefaultLimit     = 20
	DefaultUserAgent = "Mozilla/5.0"
	DefaultStockDays = 365
)

// ConfigFile is the path searched under the XDG config directories
var ConfigFile = AppName + "/config.yaml"

// Config holds all settings
type Config struct {
	HTTP       HTTP       `yaml:"http"`
	Log        Log        `yaml:"log"`
	Touchdowns Touchdowns `yaml:"touchdowns"`
	SuperBowl  SuperBowl  `yaml:"superbowl"`
	Stock      Stock      `yaml:"stock"`
}

// HTTP configures the document fetcher
type HTTP struct {
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`

	// BrowserTransport routes requests through a transport that mimics a
	// desktop browser's TLS and header fingerprint.
	BrowserTransport bool `yaml:"browser_transport"`
}

type Log struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// Touchdowns configures the touchdown leaders scraper.
// URLs may contain {year} and {prev_year}.
type Touchdowns struct {
	URLs    []string          `yaml:"urls"`
	Headers map[string]string `yaml:"headers"`
	Limit   int               `yaml:"limit"`
	Feed    Feed              `yaml:"feed"`
}

// Feed describes a JSON leaderboard feed. Records is the dot path to the
// array of player records; Fields maps semantic field names to dot paths
// inside a record.
type Feed struct {
	URL     string            `yaml:"url"`
	Records string            `yaml:"records"`
	Fields  map[string]string `yaml:"fields"`
}

type SuperBowl struct {
	URL      string            `yaml:"url"`
	Selector string            `yaml:"selector"`
	Headers  map[string]string `yaml:"headers"`
	Limit    int               `yaml:"limit"`
}

// Stock configures the historical price scraper.
// URLs may contain {symbol}.
type Stock struct {
	Symbol  string            `yaml:"symbol"`
	HTMLURL string            `yaml:"html_url"`
	CSVURL  string            `yaml:"csv_url"`
	Headers map[string]string `yaml:"headers"`
	Days    int               `yaml:"days"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		HTTP: HTTP{
			Timeout: DefaultTimeout,
			Headers: map[string]string{"User-Agent": DefaultUserAgent},
		},
		Log: Log{Level: "warn"},
		Touchdowns: Touchdowns{
			URLs: []string{
				"https://www.cbssports.com/nfl/stats/playersort/nfl/year-{year}-season-regular-category-touchdowns",
				"https://www.cbssports.com/nfl/stats/playersort/nfl/year-{prev_year}-season-regular-category-touchdowns",
				"https://www.cbssports.com/nfl/stats/player/scoring/nfl/regular/qualifiers/",
			},
			Headers: map[string]string{
				"Accept-Language": "en-US,en;q=0.9",
				"Cache-Control":   "no-cache",
			},
			Limit: DefaultLimit,
			Feed: Feed{
				Records: "players",
				Fields: map[string]string{
					"player":     "name",
					"position":   "position",
					"team":       "team",
					"touchdowns": "touchdowns",
				},
			},
		},
		SuperBowl: SuperBowl{
			URL:      "https://en.wikipedia.org/wiki/List_of_Super_Bowl_champions",
			Selector: "table.wikitable",
			Limit:    DefaultLimit,
		},
		Stock: Stock{
			Symbol:  "AAPL",
			HTMLURL: "https://finance.yahoo.com/quote/{symbol}/history?p={symbol}",
			CSVURL:  "https://query1.finance.yahoo.com/v7/finance/download/{symbol}",
			Headers: map[string]string{"Accept-Language": "en-US,en;q=0.9"},
			Days:    DefaultStockDays,
		},
	}
}

// Load reads the config file at path and fills the gaps from Default.
// An empty path searches the XDG config directories; finding nothing there
// is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(ConfigFile)
		if err != nil {
			return Default(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML and merges it over Default
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return Config{}, fmt.Errorf("merging defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	var errs []error

	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http.timeout must be positive"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if len(c.Touchdowns.URLs) == 0 {
		errs = append(errs, errors.New("touchdowns.urls must not be empty"))
	}
	if c.Touchdowns.Limit <= 0 {
		errs = append(errs, errors.New("touchdowns.limit must be positive"))
	}
	if c.SuperBowl.URL == "" {
		errs = append(errs, errors.New("superbowl.url must be set"))
	}
	if c.SuperBowl.Limit <= 0 {
		errs = append(errs, errors.New("superbowl.limit must be positive"))
	}
	if c.Stock.Symbol == "" {
		errs = append(errs, errors.New("stock.symbol must be set"))
	}
	if c.Stock.Days <= 0 {
		errs = append(errs, errors.New("stock.days must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// SourceURLs expands {year} and {prev_year} in the configured URLs
func (t Touchdowns) SourceURLs(year int) []string {
	r := strings.NewReplacer(
		"{year}", strconv.Itoa(year),
		"{prev_year}", strconv.Itoa(year-1),
	)

	urls := make([]string, len(t.URLs))
	for i, u := range t.URLs {
		urls[i] = r.Replace(u)
	}
	return urls
}

// URLs returns the HTML and CSV endpoints for symbol
func (s Stock) URLs(symbol string) (htmlURL, csvURL string) {
	r := strings.NewReplacer("{symbol}", symbol)
	return r.Replace(s.HTMLURL), r.Replace(s.CSVURL)
}

// HeadersWith returns the global headers overlaid with source-specific ones
func (h HTTP) HeadersWith(source map[string]string) map[string]string {
	merged := make(map[string]string, len(h.Headers)+len(source))
	for k, v := range h.Headers {
		merged[k] = v
	}
	for k, v := range source {
		merged[k] = v
	}
	return merged
}
