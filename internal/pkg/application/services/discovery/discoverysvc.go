package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/catalog"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-dataaccess/svcs/discovery")

//go:generate moq -rm -out discoverysvc_mock.go . DatasetDiscovery
type DatasetDiscovery interface {
	Platforms(ctx context.Context, provider string) ([]domain.Platform, error)
	Variables(ctx context.Context) ([]domain.VariableMapping, error)
	QueryDatasets(ctx context.Context, entityIDs []string, ecvNames []domain.ECVName, extent *domain.TemporalExtent) ([]domain.Dataset, error)
}

// NewDatasetDiscovery creates the discovery service over the given
// catalog fetchers. The fetchers own the cache layer; this service
// owns translation, deduplication and filtering.
func NewDatasetDiscovery(logger zerolog.Logger, fetchers ...*catalog.Fetcher) DatasetDiscovery {
	return &discoverySvc{
		fetchers: fetchers,
		log:      logger,
	}
}

type discoverySvc struct {
	fetchers []*catalog.Fetcher
	log      zerolog.Logger
}

// Platforms lists the platforms of one provider, or of all providers
// when no provider name is given. The listing is live on every call.
func (svc *discoverySvc) Platforms(ctx context.Context, provider string) ([]domain.Platform, error) {
	var err error
	ctx, span := tracer.Start(ctx, "list-platforms")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	platforms := []domain.Platform{}
	found := false

	for _, f := range svc.fetchers {
		p := f.Provider()
		if provider != "" && p.Name() != provider {
			continue
		}
		found = true

		providerPlatforms, perr := p.Platforms(ctx)
		if perr != nil {
			err = perr
			return nil, err
		}
		platforms = append(platforms, providerPlatforms...)
	}

	if !found {
		err = fmt.Errorf("unknown provider %s", provider)
		return nil, err
	}

	return platforms, nil
}

// Variables lists every provider's variable to ECV associations.
func (svc *discoverySvc) Variables(ctx context.Context) ([]domain.VariableMapping, error) {
	var err error
	ctx, span := tracer.Start(ctx, "list-variables")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	mappings := []domain.VariableMapping{}
	for _, f := range svc.fetchers {
		providerMappings, perr := f.Provider().Variables(ctx)
		if perr != nil {
			err = perr
			return nil, err
		}
		mappings = append(mappings, providerMappings...)
	}

	return mappings, nil
}

// QueryDatasets queries every provider's catalog for the given
// entities, translates the requested ECV names to provider native
// variables, deduplicates by dataset identity (first occurrence wins)
// and applies the temporal overlap filter. A transport failure on one
// (entity, variable) key degrades the result to a partial one with a
// logged omission; it never aborts the whole query.
func (svc *discoverySvc) QueryDatasets(ctx context.Context, entityIDs []string, ecvNames []domain.ECVName, extent *domain.TemporalExtent) ([]domain.Dataset, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-datasets")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	collected := []domain.Dataset{}

	for _, f := range svc.fetchers {
		collected = append(collected, svc.queryProvider(ctx, f, entityIDs, ecvNames)...)
	}

	results := []domain.Dataset{}
	seen := map[string]bool{}

	for _, ds := range collected {
		key := identity(ds)
		if seen[key] {
			continue
		}
		seen[key] = true

		if extent != nil && !ds.TimePeriod.Overlaps(extent.Start, extent.End) {
			continue
		}

		results = append(results, ds)
	}

	return results, nil
}

func (svc *discoverySvc) queryProvider(ctx context.Context, f *catalog.Fetcher, entityIDs []string, ecvNames []domain.ECVName) []domain.Dataset {
	provider := f.Provider()
	vocab := provider.Vocabulary()

	requested := ecvNames
	if requested == nil {
		requested = vocab.ECVs()
	}

	// requested names resolve to the provider's canonical spelling, so
	// that byte-identical comparisons work further down the query path
	requestedSet := map[domain.ECVName]bool{}
	canonical := []domain.ECVName{}
	for _, ecv := range requested {
		name, ok := vocab.Resolve(ecv)
		if !ok || requestedSet[name] {
			continue
		}
		requestedSet[name] = true
		canonical = append(canonical, name)
	}
	if len(requestedSet) == 0 {
		return nil
	}

	if provider.Granularity() == catalog.PerEntity {
		return svc.queryPerEntity(ctx, f, entityIDs, requestedSet)
	}

	return svc.queryPerVariable(ctx, f, entityIDs, canonical)
}

func (svc *discoverySvc) queryPerVariable(ctx context.Context, f *catalog.Fetcher, entityIDs []string, requested []domain.ECVName) []domain.Dataset {
	vocab := f.Provider().Vocabulary()

	variables := []string{}
	seen := map[string]bool{}
	for _, ecv := range requested {
		for _, variable := range vocab.VariablesFor(ecv) {
			if !seen[variable] {
				seen[variable] = true
				variables = append(variables, variable)
			}
		}
	}

	datasets := []domain.Dataset{}
	for _, entityID := range entityIDs {
		for _, variable := range variables {
			batch, err := f.Datasets(ctx, entityID, variable)
			if err != nil {
				svc.logOmission(err, f, entityID, variable)
				continue
			}
			datasets = append(datasets, batch...)
		}
	}

	return datasets
}

func (svc *discoverySvc) queryPerEntity(ctx context.Context, f *catalog.Fetcher, entityIDs []string, requestedSet map[domain.ECVName]bool) []domain.Dataset {
	datasets := []domain.Dataset{}

	for _, entityID := range entityIDs {
		batch, err := f.Datasets(ctx, entityID, "")
		if err != nil {
			svc.logOmission(err, f, entityID, "")
			continue
		}

		for _, ds := range batch {
			if intersects(ds.ECVVariables, requestedSet) {
				datasets = append(datasets, ds)
			}
		}
	}

	return datasets
}

func (svc *discoverySvc) logOmission(err error, f *catalog.Fetcher, entityID, variable string) {
	transportErr := &catalog.TransportError{}
	event := svc.log.Error()
	if errors.As(err, &transportErr) {
		event = svc.log.Warn()
	}
	event.Err(err).Msgf(
		"omitting results for provider=%s entity=%s variable=%q",
		f.Provider().Name(), entityID, variable,
	)
}

// identity is the dedup key for a descriptor. Uniqueness across
// providers is not guaranteed by the identifiers alone, so the
// provider scoped id is padded with the platform id.
func identity(ds domain.Dataset) string {
	return ds.ID + "|" + ds.PlatformID
}

func intersects(ecvs []domain.ECVName, requested map[domain.ECVName]bool) bool {
	for _, ecv := range ecvs {
		if requested[ecv] {
			return true
		}
	}
	return false
}
