package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port           string
	DBPath         string
	AllowedOrigins []string
	Assessor       AssessorConfig
	Healthcheck    HealthcheckConfig
	Mail           MailConfig
}

// AssessorConfig describes the single upstream form-based data source and
// the timing bounds for driving it.
type AssessorConfig struct {
	FormURL        string   `yaml:"form_url"`
	ResultSelector string   `yaml:"result_selector"`
	RegionWords    []string `yaml:"region_words"`
	StreetWords    []string `yaml:"street_words"`
	AddressWords   []string `yaml:"address_words"`

	PageLoadTimeout time.Duration `yaml:"-"`
	OptionWait      time.Duration `yaml:"-"`
	GraceDelay      time.Duration `yaml:"-"`
	SettleDelay     time.Duration `yaml:"-"`
	ResultWait      time.Duration `yaml:"-"`
}

type HealthcheckConfig struct {
	Cron     string
	Interval time.Duration
}

type MailConfig struct {
	APIBase string
	APIKey  string
	From    string
	To      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBPath:         getEnv("DB_PATH", "gateway.db"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		Assessor: AssessorConfig{
			FormURL:        getEnv("ASSESSOR_FORM_URL", "https://www.cityofboston.gov/assessing/search/"),
			ResultSelector: getEnv("ASSESSOR_RESULT_SELECTOR", "table"),
			RegionWords:    []string{"region", "city", "town"},
			StreetWords:    []string{"street"},
			AddressWords:   []string{"address", "number"},

			PageLoadTimeout: getEnvMS("PAGE_LOAD_TIMEOUT_MS", 30000),
			OptionWait:      getEnvMS("OPTION_WAIT_TIMEOUT_MS", 10000),
			GraceDelay:      getEnvMS("GRACE_DELAY_MS", 1500),
			SettleDelay:     getEnvMS("SETTLE_DELAY_MS", 3000),
			ResultWait:      getEnvMS("RESULT_WAIT_TIMEOUT_MS", 5000),
		},
		Healthcheck: HealthcheckConfig{
			Cron: os.Getenv("HEALTHCHECK_CRON"),
		},
		Mail: MailConfig{
			APIBase: os.Getenv("MAIL_API_BASE"),
			APIKey:  os.Getenv("MAIL_API_KEY"),
			From:    getEnv("QUOTE_FROM", "quotes@localhost"),
			To:      os.Getenv("QUOTE_TO"),
		},
	}

	if interval := os.Getenv("HEALTHCHECK_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			cfg.Healthcheck.Interval = d
		}
	}

	if err := cfg.loadSiteOverride(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadSiteOverride merges config/assessor.yaml, if present, over the
// defaults. The override covers markup-facing knobs (URL, role keywords,
// result selector) so a site redesign can be absorbed without a rebuild.
func (c *Config) loadSiteOverride() error {
	data, err := os.ReadFile("config/assessor.yaml")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var site AssessorConfig
	if err := yaml.Unmarshal(data, &site); err != nil {
		return err
	}

	if site.FormURL != "" {
		c.Assessor.FormURL = site.FormURL
	}
	if site.ResultSelector != "" {
		c.Assessor.ResultSelector = site.ResultSelector
	}
	if len(site.RegionWords) > 0 {
		c.Assessor.RegionWords = site.RegionWords
	}
	if len(site.StreetWords) > 0 {
		c.Assessor.StreetWords = site.StreetWords
	}
	if len(site.AddressWords) > 0 {
		c.Assessor.AddressWords = site.AddressWords
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvMS(key string, defaultMS int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Millisecond
		}
	}
	return time.Duration(defaultMS) * time.Millisecond
}
