package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/vocabulary"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/atmodata/api-dataaccess/internal/pkg/infrastructure/storage"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

type stubProvider struct {
	name       string
	queries    int
	datasets   []domain.Dataset
	err        error
	failFor    map[string]error
	vocabulary *vocabulary.Map
}

func (p *stubProvider) Name() string                  { return p.name }
func (p *stubProvider) Granularity() QueryGranularity { return PerVariable }
func (p *stubProvider) Vocabulary() *vocabulary.Map   { return p.vocabulary }

func (p *stubProvider) Platforms(ctx context.Context) ([]domain.Platform, error) {
	return nil, nil
}

func (p *stubProvider) Variables(ctx context.Context) ([]domain.VariableMapping, error) {
	return nil, nil
}

func (p *stubProvider) Datasets(ctx context.Context, entityID, variable string) ([]domain.Dataset, error) {
	p.queries++
	if err, shouldFail := p.failFor[entityID+"/"+variable]; shouldFail {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.datasets, nil
}

func testDatasets() []domain.Dataset {
	return []domain.Dataset{
		{
			ID:           "ds-1",
			Title:        "NO2 at XY12",
			ECVVariables: []domain.ECVName{"NO2"},
			PlatformID:   "XY12",
		},
	}
}

func TestFirstFetchQueriesTheProviderAndPopulatesTheCache(t *testing.T) {
	is := is.New(t)
	provider := &stubProvider{name: "actris", datasets: testDatasets()}
	store, err := storage.NewStore(storage.NewInMemoryConnector())
	is.NoErr(err)
	defer store.Close()

	f := NewFetcher(provider, store, storage.DefaultTTL, zerolog.Nop())

	datasets, err := f.Datasets(context.Background(), "XY12", "nitrogen dioxide amount fraction")
	is.NoErr(err)
	is.Equal(len(datasets), 1)
	is.Equal(provider.queries, 1)
}

func TestSecondFetchWithinTTLSkipsTheNetwork(t *testing.T) {
	is := is.New(t)
	provider := &stubProvider{name: "actris", datasets: testDatasets()}
	store, err := storage.NewStore(storage.NewInMemoryConnector())
	is.NoErr(err)
	defer store.Close()

	f := NewFetcher(provider, store, storage.DefaultTTL, zerolog.Nop())

	first, err := f.Datasets(context.Background(), "XY12", "nitrogen dioxide amount fraction")
	is.NoErr(err)
	second, err := f.Datasets(context.Background(), "XY12", "nitrogen dioxide amount fraction")
	is.NoErr(err)

	is.Equal(provider.queries, 1) // second call must be served from cache
	is.Equal(first, second)
}

func TestExpiredEntryTriggersARefetch(t *testing.T) {
	is := is.New(t)
	provider := &stubProvider{name: "actris", datasets: testDatasets()}
	store, err := storage.NewStore(storage.NewInMemoryConnector())
	is.NoErr(err)
	defer store.Close()

	f := NewFetcher(provider, store, 10*time.Millisecond, zerolog.Nop())

	_, err = f.Datasets(context.Background(), "XY12", "no2")
	is.NoErr(err)

	time.Sleep(20 * time.Millisecond)

	_, err = f.Datasets(context.Background(), "XY12", "no2")
	is.NoErr(err)
	is.Equal(provider.queries, 2)
}

func TestFetchErrorsAreNotCached(t *testing.T) {
	is := is.New(t)
	provider := &stubProvider{name: "actris", err: &TransportError{URL: "http://example.com", StatusCode: 503}}
	store, err := storage.NewStore(storage.NewInMemoryConnector())
	is.NoErr(err)
	defer store.Close()

	f := NewFetcher(provider, store, storage.DefaultTTL, zerolog.Nop())

	_, err = f.Datasets(context.Background(), "XY12", "no2")

	transportErr := &TransportError{}
	is.True(errors.As(err, &transportErr))

	provider.err = nil
	provider.datasets = testDatasets()

	datasets, err := f.Datasets(context.Background(), "XY12", "no2")
	is.NoErr(err)
	is.Equal(len(datasets), 1)
	is.Equal(provider.queries, 2)
}

func TestWarmContinuesPastFailingKeys(t *testing.T) {
	is := is.New(t)
	provider := &stubProvider{
		name:     "actris",
		datasets: testDatasets(),
		failFor: map[string]error{
			"XY12/no2": &TransportError{URL: "http://example.com", StatusCode: 500},
		},
	}
	store, err := storage.NewStore(storage.NewInMemoryConnector())
	is.NoErr(err)
	defer store.Close()

	f := NewFetcher(provider, store, storage.DefaultTTL, zerolog.Nop())
	f.Warm(context.Background(), []string{"XY12", "AB34"}, []string{"no2", "aod"})

	is.Equal(provider.queries, 4) // all keys attempted despite the failure

	_, ok := store.Get("actris/XY12/no2")
	is.True(!ok) // failed key must not be cached
	_, ok = store.Get("actris/AB34/aod")
	is.True(ok)
}
