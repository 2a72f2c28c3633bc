package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/vocabulary"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// QueryGranularity describes what level of detail a provider's catalog
// can be queried at.
type QueryGranularity int

const (
	// PerVariable catalogs are queried once for every
	// (entity, provider variable) pair.
	PerVariable QueryGranularity = iota
	// PerEntity catalogs return all records for an entity in one
	// query; ECV filtering happens after the fact on the descriptor's
	// ECV set.
	PerEntity
)

// Provider is the capability one remote metadata catalog integration
// exposes. Concrete providers differ in vocabulary table, URL scheme
// and record shape but share the discovery and content filter logic.
type Provider interface {
	Name() string
	Granularity() QueryGranularity
	Vocabulary() *vocabulary.Map

	Platforms(ctx context.Context) ([]domain.Platform, error)
	Variables(ctx context.Context) ([]domain.VariableMapping, error)

	// Datasets performs a live catalog query for one entity and, for
	// PerVariable providers, one provider native variable. PerEntity
	// providers ignore the variable argument.
	Datasets(ctx context.Context, entityID, variable string) ([]domain.Dataset, error)
}

// NewHTTPClient returns the instrumented client providers use for all
// outbound catalog traffic.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// FetchPages retrieves pages 0, 1, 2, ... from a paginated catalog
// endpoint until a page comes back empty, and returns the accumulated
// raw records. A failure on any single page abandons the whole
// operation; partial accumulations are never returned.
func FetchPages(ctx context.Context, client *http.Client, pageURL func(page int) string) ([]json.RawMessage, error) {
	records := []json.RawMessage{}

	for page := 0; ; page++ {
		url := pageURL(page)

		pageRecords, err := fetchPage(ctx, client, url)
		if err != nil {
			return nil, err
		}

		if len(pageRecords) == 0 {
			break
		}

		records = append(records, pageRecords...)
	}

	return records, nil
}

func fetchPage(ctx context.Context, client *http.Client, url string) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %s", err.Error())
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page %s: %s", url, err.Error())
	}

	return records, nil
}
