package config

import (
	"errors"
	"fmt"
	"net/url"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.Scoring.AutoHighValue <= 0 {
		errs = append(errs, "scoring.auto_high_value must be > 0")
	}
	if cfg.SAM.SearchDaysBack <= 0 {
		errs = append(errs, "sam.search_days_back must be > 0")
	}
	if len(cfg.App.States) == 0 {
		errs = append(errs, "app.states must have at least 1 state code")
	}

	checkKeywords := func(name string, kws []string) {
		for i, kw := range kws {
			if kw == "" {
				errs = append(errs, fmt.Sprintf("keywords.%s[%d] cannot be empty", name, i))
			}
		}
	}
	checkKeywords("direct_transport", cfg.Keywords.DirectTransport)
	checkKeywords("service_type", cfg.Keywords.ServiceType)
	checkKeywords("private_sector", cfg.Keywords.PrivateSector)
	checkKeywords("exclude", cfg.Keywords.Exclude)

	checkURLs := func(name string, urls []string) {
		for i, raw := range urls {
			if _, err := url.ParseRequestURI(raw); err != nil {
				errs = append(errs, fmt.Sprintf("feeds.%s[%d] is not a valid URL: %s", name, i, raw))
			}
		}
	}
	checkURLs("job_feed_urls", cfg.Feeds.JobFeedURLs)
	checkURLs("alt_feed_urls", cfg.Feeds.AltFeedURLs)

	for i, d := range cfg.Directory {
		if d.Name == "" {
			errs = append(errs, fmt.Sprintf("directory[%d].name is required", i))
		}
		if d.URL == "" {
			errs = append(errs, fmt.Sprintf("directory[%d].url is required", i))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += s
	}
	return out
}
