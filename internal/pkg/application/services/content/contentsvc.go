package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/jfbus/httprs"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-dataaccess/svcs/content")

// Result is the outcome of reading a dataset. ECVs always lists the
// requested climate variables the dataset turned out to contain.
// Dataset is nil in membership only mode and when no variable
// qualified; the latter is the "no matching content" result, not an
// error.
type Result struct {
	ECVs    []domain.ECVName       `json:"ecv_variables"`
	Dataset *domain.ReducedDataset `json:"dataset,omitempty"`
}

//go:generate moq -rm -out contentsvc_mock.go . DatasetReader
type DatasetReader interface {
	Read(ctx context.Context, locator any, ecvNames []domain.ECVName, membershipOnly bool) (*Result, error)
}

func NewDatasetReader(cfg FilterConfig, logger zerolog.Logger) DatasetReader {
	return &reader{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: logger,
	}
}

type reader struct {
	cfg        FilterConfig
	httpClient *http.Client
	log        zerolog.Logger
}

// Read opens the dataset behind the locator, preferring the OPeNDAP
// endpoint and falling back to a full http download, then retains only
// the variables whose native attribute maps to a requested ECV.
func (r *reader) Read(ctx context.Context, locator any, ecvNames []domain.ECVName, membershipOnly bool) (*Result, error) {
	var err error
	ctx, span := tracer.Start(ctx, "read-dataset")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	primaryURL, fallbackURL, err := resolveLocator(locator)
	if err != nil {
		return nil, err
	}

	group, err := r.open(ctx, primaryURL, fallbackURL)
	if err != nil {
		err = &DatasetReadError{Locator: locatorString(primaryURL, fallbackURL), Err: err}
		return nil, err
	}
	defer group.Close()

	requested := map[domain.ECVName]bool{}
	for _, ecv := range ecvNames {
		requested[ecv] = true
	}

	outcome := filterVariables(group, r.cfg, requested)

	result := &Result{ECVs: outcome.ecvs}
	if membershipOnly || len(outcome.retained) == 0 {
		return result, nil
	}

	result.Dataset, err = materialize(group, outcome.retained)
	if err != nil {
		err = &DatasetReadError{Locator: locatorString(primaryURL, fallbackURL), Err: err}
		return nil, err
	}
	result.Dataset.ECVs = outcome.ecvs

	return result, nil
}

// resolveLocator accepts either a single URL, used for both open
// attempts, or a list of tagged URLs from which the OPeNDAP entry is
// selected as primary and the HTTP entry as fallback.
func resolveLocator(locator any) (primaryURL, fallbackURL string, err error) {
	switch l := locator.(type) {
	case string:
		return l, l, nil
	case []domain.DatasetURL:
		for _, entry := range l {
			switch entry.Type {
			case domain.URLTypeOpendap:
				primaryURL = entry.URL
			case domain.URLTypeHTTP:
				fallbackURL = entry.URL
			}
		}
		if primaryURL == "" && fallbackURL == "" {
			return "", "", &DatasetReadError{
				Locator: fmt.Sprintf("%v", locator),
				Err:     fmt.Errorf("locator contains no OPeNDAP or HTTP url"),
			}
		}
		return primaryURL, fallbackURL, nil
	default:
		return "", "", fmt.Errorf("%w; got %T", ErrInvalidLocator, locator)
	}
}

// open tries the streaming protocol on the primary url first. Any
// failure there falls through to downloading the fallback url fully
// into memory and decoding from the buffer.
func (r *reader) open(ctx context.Context, primaryURL, fallbackURL string) (api.Group, error) {
	var openErr error

	if primaryURL != "" {
		group, err := r.openStreaming(ctx, primaryURL)
		if err == nil {
			return group, nil
		}
		openErr = err
		r.log.Debug().Err(err).Msgf("streaming open of %s failed, trying http fallback", primaryURL)
	}

	if fallbackURL != "" {
		group, err := r.openBuffered(ctx, fallbackURL)
		if err == nil {
			return group, nil
		}
		if openErr == nil {
			openErr = err
		}
	}

	return nil, openErr
}

// openStreaming opens the remote file through a range request backed
// reader, so that the decoder only transfers the byte ranges it needs.
func (r *reader) openStreaming(ctx context.Context, url string) (api.Group, error) {
	resp, err := r.get(ctx, url)
	if err != nil {
		return nil, err
	}

	rs := httprs.NewHttpReadSeeker(resp, r.httpClient)
	group, err := netcdf.New(rs)
	if err != nil {
		rs.Close()
		return nil, err
	}

	return group, nil
}

// openBuffered downloads the whole file and decodes it from memory.
func (r *reader) openBuffered(ctx context.Context, url string) (api.Group, error) {
	resp, err := r.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return netcdf.New(&bufferedReader{bytes.NewReader(body)})
}

func (r *reader) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("request to %s failed with status %d", url, resp.StatusCode)
	}

	return resp, nil
}

func locatorString(primaryURL, fallbackURL string) string {
	if primaryURL != "" {
		return primaryURL
	}
	return fallbackURL
}

type bufferedReader struct {
	*bytes.Reader
}

func (b *bufferedReader) Close() error {
	return nil
}
