package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/danielhkuo/survey-insights/sheet"
)

type Config struct {
	Port            int
	SheetID         string
	SheetURL        string
	FetchTimeout    time.Duration
	SubmitURL       string
	DatabaseURL     string
	DatabaseType    string
	IPHashSalt      string
	InsightQuestion string
	InsightInterval time.Duration
	SessionTTL      time.Duration
	MaxSessions     int
}

// Defaults applied when neither a flag nor an env variable is set
const (
	DefaultPort            = 3318
	DefaultFetchTimeout    = 10 * time.Second
	DefaultInsightQuestion = "Q1"
	DefaultInsightInterval = 7 * time.Second
	DefaultSessionTTL      = 30 * time.Minute
	DefaultMaxSessions     = 1000
)

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("survey-insights", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.SheetID, "sheet", "", "Published spreadsheet ID")
	fs.StringVar(&cfg.SheetURL, "sheet-url", "", "Full CSV export URL (overrides -sheet)")
	fs.DurationVar(&cfg.FetchTimeout, "fetch-timeout", 0, "Upstream request timeout")
	fs.StringVar(&cfg.SubmitURL, "submit-url", "", "Question submission endpoint")

	// Optional submission log
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	// Insights
	fs.StringVar(&cfg.InsightQuestion, "insight-question", "", "Question ID summarized on the home page")
	fs.DurationVar(&cfg.InsightInterval, "insight-interval", 0, "Trending insight rotation interval")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle page session lifetime")
	fs.IntVar(&cfg.MaxSessions, "max-sessions", 0, "Live page sessions kept before the least recently used is evicted")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.SheetID == "" {
		cfg.SheetID = os.Getenv("SHEET_ID")
	}
	if cfg.SheetID == "" {
		cfg.SheetID = sheet.DefaultSheetID
	}
	if cfg.SheetURL == "" {
		cfg.SheetURL = os.Getenv("SHEET_URL")
	}
	if cfg.SheetURL == "" {
		cfg.SheetURL = sheet.SheetURL(cfg.SheetID)
	}

	if cfg.SubmitURL == "" {
		cfg.SubmitURL = os.Getenv("SUBMIT_URL")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}

	if cfg.InsightQuestion == "" {
		cfg.InsightQuestion = os.Getenv("INSIGHT_QUESTION")
	}
	if cfg.InsightQuestion == "" {
		cfg.InsightQuestion = DefaultInsightQuestion
	}

	if cfg.MaxSessions < 0 {
		return Config{}, errors.New("max-sessions must be positive")
	}
	if cfg.MaxSessions == 0 {
		if s := os.Getenv("MAX_SESSIONS"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return Config{}, errors.New("invalid MAX_SESSIONS env variable")
			}
			cfg.MaxSessions = n
		} else {
			cfg.MaxSessions = DefaultMaxSessions
		}
	}

	var err error
	if cfg.FetchTimeout, err = durationOrEnv(cfg.FetchTimeout, "FETCH_TIMEOUT", DefaultFetchTimeout); err != nil {
		return Config{}, err
	}
	if cfg.InsightInterval, err = durationOrEnv(cfg.InsightInterval, "INSIGHT_INTERVAL", DefaultInsightInterval); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationOrEnv(cfg.SessionTTL, "SESSION_TTL", DefaultSessionTTL); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// durationOrEnv keeps a flag value, else reads env, else uses def
func durationOrEnv(flagVal time.Duration, env string, def time.Duration) (time.Duration, error) {
	if flagVal < 0 {
		return 0, fmt.Errorf("%s must be positive", env)
	}
	if flagVal > 0 {
		return flagVal, nil
	}
	s := os.Getenv(env)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return d, nil
}
