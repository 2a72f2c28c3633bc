package config

import (
	"fmt"
	"io"
	"time"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/providers/actris"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/providers/icos"
	"github.com/atmodata/api-dataaccess/internal/pkg/infrastructure/storage"
	"gopkg.in/yaml.v2"
)

// Cfg controls which catalog providers are enabled, where they live
// and how long query results stay cached.
type Cfg struct {
	CacheTTL  time.Duration
	Providers []ProviderCfg
}

type ProviderCfg struct {
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"`
	URL     string `yaml:"url"`
}

func (p ProviderCfg) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// Default returns the configuration used when no config file is
// supplied: both providers enabled against their production endpoints.
func Default() *Cfg {
	return &Cfg{
		CacheTTL: storage.DefaultTTL,
		Providers: []ProviderCfg{
			{Name: actris.ProviderName, URL: actris.DefaultBaseURL},
			{Name: icos.ProviderName, URL: icos.DefaultEndpoint},
		},
	}
}

type configFile struct {
	CacheTTL  string        `yaml:"cacheTTL"`
	Providers []ProviderCfg `yaml:"providers"`
}

// Load parses a yaml configuration. Omitted fields keep their
// defaults; an unknown provider name is an error so that a typo cannot
// silently disable a provider.
func Load(input io.Reader) (*Cfg, error) {
	body, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %s", err.Error())
	}

	file := configFile{}
	if err := yaml.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %s", err.Error())
	}

	cfg := Cfg{
		CacheTTL:  storage.DefaultTTL,
		Providers: file.Providers,
	}

	if file.CacheTTL != "" {
		ttl, err := time.ParseDuration(file.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid cacheTTL %q: %s", file.CacheTTL, err.Error())
		}
		cfg.CacheTTL = ttl
	}
	if len(cfg.Providers) == 0 {
		cfg.Providers = Default().Providers
	}

	defaultURLs := map[string]string{
		actris.ProviderName: actris.DefaultBaseURL,
		icos.ProviderName:   icos.DefaultEndpoint,
	}

	for i, p := range cfg.Providers {
		defaultURL, known := defaultURLs[p.Name]
		if !known {
			return nil, fmt.Errorf("unknown provider %q in config", p.Name)
		}
		if p.URL == "" {
			cfg.Providers[i].URL = defaultURL
		}
	}

	return &cfg, nil
}

// Provider returns the configuration for one provider by name, falling
// back to the built in default when the config does not mention it.
func (c *Cfg) Provider(name string) ProviderCfg {
	for _, p := range c.Providers {
		if p.Name == name {
			return p
		}
	}

	for _, p := range Default().Providers {
		if p.Name == name {
			return p
		}
	}

	return ProviderCfg{Name: name}
}
