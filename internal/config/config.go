package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type DirectoryEntry struct {
	Name             string `yaml:"name"`
	URL              string `yaml:"url"`
	Category         string `yaml:"category"`
	Description      string `yaml:"description"`
	Requirements     string `yaml:"requirements"`
	EarningPotential string `yaml:"earning_potential"`
}

type SearchLink struct {
	Label string `yaml:"label"`
	Query string `yaml:"query"`
}

type Config struct {
	App struct {
		DataDir    string   `yaml:"data_dir"`
		OutputDir  string   `yaml:"output_dir"`
		RegionName string   `yaml:"region_name"`
		States     []string `yaml:"states"`
	} `yaml:"app"`

	SAM struct {
		APIKey         string   `yaml:"api_key"`
		APIBaseURL     string   `yaml:"api_base_url"`
		SearchDaysBack int      `yaml:"search_days_back"`
		NAICSCodes     []string `yaml:"naics_codes"`
	} `yaml:"sam"`

	Feeds struct {
		JobFeedURLs            []string `yaml:"job_feed_urls"`
		AltFeedURLs            []string `yaml:"alt_feed_urls"`
		PolitenessDelaySeconds int      `yaml:"politeness_delay_seconds"`
		RequestTimeoutSeconds  int      `yaml:"request_timeout_seconds"`
	} `yaml:"feeds"`

	Keywords struct {
		DirectTransport []string `yaml:"direct_transport"`
		ServiceType     []string `yaml:"service_type"`
		PrivateSector   []string `yaml:"private_sector"`
		Exclude         []string `yaml:"exclude"`
	} `yaml:"keywords"`

	Scoring struct {
		AutoHighValue float64 `yaml:"auto_high_value"`
	} `yaml:"scoring"`

	Commbuys struct {
		SearchURL string       `yaml:"search_url"`
		Terms     []SearchLink `yaml:"terms"`
	} `yaml:"commbuys"`

	Directory []DirectoryEntry `yaml:"directory"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = "."
	}
	if cfg.App.OutputDir == "" {
		cfg.App.OutputDir = "docs"
	}
	if cfg.App.RegionName == "" {
		cfg.App.RegionName = "Massachusetts"
	}
	if len(cfg.App.States) == 0 {
		cfg.App.States = []string{"MA"}
	}
	if cfg.SAM.APIBaseURL == "" {
		cfg.SAM.APIBaseURL = "https://api.sam.gov/opportunities/v2/search"
	}
	if cfg.SAM.SearchDaysBack <= 0 {
		cfg.SAM.SearchDaysBack = 365
	}
	if cfg.Feeds.PolitenessDelaySeconds <= 0 {
		cfg.Feeds.PolitenessDelaySeconds = 2
	}
	if cfg.Feeds.RequestTimeoutSeconds <= 0 {
		cfg.Feeds.RequestTimeoutSeconds = 20
	}
	if cfg.Scoring.AutoHighValue <= 0 {
		cfg.Scoring.AutoHighValue = 500000
	}
	if cfg.Commbuys.SearchURL == "" {
		cfg.Commbuys.SearchURL = "https://www.commbuys.com/bso/external/publicBids.sdo"
	}
}
