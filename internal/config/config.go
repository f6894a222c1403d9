// Package config loads runtime settings from a .env file and GEOINGEST_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every setting the CLI can take from the environment.
// Zero values mean "use the library default".
type Config struct {
	DataDir  string // GEOINGEST_DATA_DIR
	CacheDir string // GEOINGEST_CACHE_DIR

	SourceCRS string // GEOINGEST_SOURCE_CRS
	TargetCRS string // GEOINGEST_TARGET_CRS

	Tolerance     float64 // GEOINGEST_TOLERANCE
	Precision     float64 // GEOINGEST_PRECISION
	MinRadius     float64 // GEOINGEST_MIN_RADIUS
	MinPopulation int64   // GEOINGEST_MIN_POPULATION

	Countries []string // GEOINGEST_COUNTRIES, comma separated

	MetricsAddr string // GEOINGEST_METRICS_ADDR
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		DataDir:  "data",
		CacheDir: "cache",
	}
}

// Load reads .env from the working directory when present, then the
// environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	_ = godotenv.Load(".env")
	return FromEnv(os.Getenv)
}

// LoadFile is Load with an explicit env file, which must exist.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("GEOINGEST_DATA_DIR", &c.DataDir)
	str("GEOINGEST_CACHE_DIR", &c.CacheDir)
	str("GEOINGEST_SOURCE_CRS", &c.SourceCRS)
	str("GEOINGEST_TARGET_CRS", &c.TargetCRS)
	str("GEOINGEST_METRICS_ADDR", &c.MetricsAddr)

	floats := []struct {
		key string
		dst *float64
	}{
		{"GEOINGEST_TOLERANCE", &c.Tolerance},
		{"GEOINGEST_PRECISION", &c.Precision},
		{"GEOINGEST_MIN_RADIUS", &c.MinRadius},
	}
	for _, f := range floats {
		v := strings.TrimSpace(getenv(f.key))
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 {
			return c, fmt.Errorf("%s: invalid value %q", f.key, v)
		}
		*f.dst = n
	}

	if v := strings.TrimSpace(getenv("GEOINGEST_MIN_POPULATION")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return c, fmt.Errorf("GEOINGEST_MIN_POPULATION: invalid value %q", v)
		}
		c.MinPopulation = n
	}

	if v := getenv("GEOINGEST_COUNTRIES"); v != "" {
		for _, cc := range strings.Split(v, ",") {
			if cc = strings.TrimSpace(cc); cc != "" {
				c.Countries = append(c.Countries, strings.ToUpper(cc))
			}
		}
	}
	return c, nil
}
