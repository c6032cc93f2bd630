package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/QMSS-G5072-2024/nutrilog/pkg/model"
)

// Validate checks the config for values the commands cannot work with.
func Validate(cfg model.Config) []error {
	var errs []error

	if cfg.LogFile == "" {
		errs = append(errs, fmt.Errorf("log_file is required"))
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port))
	}

	if cfg.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout))
	}

	if cfg.Endpoint != "" {
		u, err := url.Parse(cfg.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("endpoint %q is not an absolute URL", cfg.Endpoint))
		}
	}

	if (cfg.AppID == "") != (cfg.AppKey == "") {
		errs = append(errs, fmt.Errorf("app_id and app_key must be set together"))
	}

	// Display names may name nutrients outside the fixed set for hand-edited logs
	seen := make(map[string]bool, len(cfg.Display))
	for _, name := range cfg.Display {
		switch {
		case strings.TrimSpace(name) == "":
			errs = append(errs, fmt.Errorf("display: empty nutrient name"))
		case model.Nutrient(name) == model.Calories:
			errs = append(errs, fmt.Errorf("display: %s has its own chart", model.Calories))
		case seen[name]:
			errs = append(errs, fmt.Errorf("display: duplicate nutrient %q", name))
		}
		seen[name] = true
	}

	return errs
}
