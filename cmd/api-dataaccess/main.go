package main

import (
	"context"
	"flag"
	"os"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/catalog"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/providers/actris"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/providers/icos"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/services/content"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/services/discovery"
	"github.com/atmodata/api-dataaccess/internal/pkg/infrastructure/config"
	"github.com/atmodata/api-dataaccess/internal/pkg/infrastructure/storage"
	"github.com/atmodata/api-dataaccess/internal/pkg/presentation"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var configFileName string

func loadConfig(ctx context.Context, path string) *config.Cfg {
	log := logging.GetFromContext(ctx)

	configfile, err := os.Open(path)
	if err != nil {
		log.Info().Msgf("no config file found at %s, using defaults.", path)
		return config.Default()
	}
	defer configfile.Close()

	cfg, err := config.Load(configfile)
	if err != nil {
		log.Fatal().Err(err).Msgf("failed to load config from %s", path)
	}

	return cfg
}

func newProviders(cfg *config.Cfg, log zerolog.Logger) []catalog.Provider {
	providers := []catalog.Provider{}

	if p := cfg.Provider(actris.ProviderName); p.IsEnabled() {
		providers = append(providers, actris.New(p.URL, log))
	}

	if p := cfg.Provider(icos.ProviderName); p.IsEnabled() {
		provider, err := icos.New(p.URL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create icos provider")
		}
		providers = append(providers, provider)
	}

	return providers
}

func main() {
	serviceName := "api-dataaccess"
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&configFileName, "config", "/opt/atmodata/providers.yaml", "A yaml file with provider configuration")
	flag.Parse()

	cfg := loadConfig(ctx, configFileName)

	store, err := storage.NewStore(storage.NewInMemoryConnector())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create cache store, shutting down...")
	}
	defer store.Close()

	providers := newProviders(cfg, log)
	if len(providers) == 0 {
		log.Fatal().Msg("no providers enabled in config. Exiting.")
	}

	fetchers := make([]*catalog.Fetcher, 0, len(providers))
	for _, p := range providers {
		fetchers = append(fetchers, catalog.NewFetcher(p, store, cfg.CacheTTL, log))
	}

	discoverySvc := discovery.NewDatasetDiscovery(log, fetchers...)
	readerSvc := content.NewDatasetReader(actris.ContentFilter(log), log)

	port := env.GetVariableOrDefault(log, "SERVICE_PORT", "8880")

	r := chi.NewRouter()
	api := presentation.NewAPI(r, ctx, discoverySvc, readerSvc)

	err = api.Start(port)
	if err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}
