package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DefaultSiteURL        = "https://sugang.korea.ac.kr/"
	DefaultTimeServiceURL = "https://time.navyism.com/"
)

type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreVault  StoreKind = "vault"
	StoreRedis  StoreKind = "redis"
	StoreMemory StoreKind = "memory"
)

type Config struct {
	SiteURL        string        `env:"SUGANG_SITE_URL" envDefault:"https://sugang.korea.ac.kr/"`
	TimeServiceURL string        `env:"SUGANG_TIME_SERVICE_URL" envDefault:"https://time.navyism.com/"`
	TimeRefresh    time.Duration `env:"SUGANG_TIME_REFRESH" envDefault:"30s"`
	Store          StoreKind     `env:"SUGANG_STORE" envDefault:"sqlite"`
	Redis          Redis
	MasterKey      string `env:"SUGANG_MASTER_KEY"`
	SelectorsFile  string `env:"SUGANG_SELECTORS_FILE"`
	Browser        Browser
	Release        Release
}

type Redis struct {
	URL    string `env:"SUGANG_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Prefix string `env:"SUGANG_REDIS_PREFIX" envDefault:"sugang"`
}

type Browser struct {
	ChromePath string `env:"SUGANG_CHROME_PATH"`
	Headless   bool   `env:"SUGANG_HEADLESS" envDefault:"false"`
	Width      int    `env:"SUGANG_WINDOW_WIDTH" envDefault:"1600"`
	Height     int    `env:"SUGANG_WINDOW_HEIGHT" envDefault:"1000"`
}

type Release struct {
	Owner      string `env:"SUGANG_RELEASE_OWNER" envDefault:"BBIYAKYEE7"`
	Repo       string `env:"SUGANG_RELEASE_REPO" envDefault:"sugang"`
	AutoUpdate bool   `env:"SUGANG_AUTO_UPDATE" envDefault:"true"`
}

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store {
	case StoreSQLite, StoreVault, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("invalid SUGANG_STORE %q (valid: sqlite, vault, redis, memory)", c.Store)
	}
	u, err := url.Parse(c.SiteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid SUGANG_SITE_URL %q", c.SiteURL)
	}
	if c.Store == StoreVault && c.MasterKey == "" {
		return fmt.Errorf("SUGANG_MASTER_KEY is required for the vault store")
	}
	return nil
}
