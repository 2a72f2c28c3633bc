package actris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/catalog"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/vocabulary"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL points at the production ACTRIS metadata catalog.
	DefaultBaseURL string = "https://prod-actris-md2.nilu.no"

	ProviderName string = "actris"
)

// ecvTable maps the ECV taxonomy to ACTRIS content attribute labels.
// The catalog is queried by these labels, one at a time.
var ecvTable = vocabulary.Table{
	{ECV: "Aerosol Optical Properties", Variables: []string{
		"aerosol particle light absorption coefficient",
		"aerosol particle light hemispheric backscatter coefficient",
		"aerosol particle light scattering coefficient",
		"aerosol particle optical depth",
	}},
	{ECV: "Aerosol Chemical Properties", Variables: []string{
		"aerosol particle elemental carbon mass concentration",
		"aerosol particle organic carbon mass concentration",
	}},
	{ECV: "Aerosol Physical Properties", Variables: []string{
		"aerosol particle number concentration",
		"cloud condensation nuclei number concentration",
		"aerosol particle number size distribution",
		"cloud condensation nuclei number size distribution",
	}},
	{ECV: "NO2", Variables: []string{
		"nitrogen dioxide amount fraction",
		"nitrogen dioxide mass concentration",
	}},
}

type actris struct {
	baseURL    string
	httpClient *http.Client
	vocab      *vocabulary.Map
	log        zerolog.Logger
}

// New creates the ACTRIS catalog integration. ACTRIS label matching is
// exact: the catalog vocabulary is consistent about casing.
func New(baseURL string, logger zerolog.Logger) catalog.Provider {
	return &actris{
		baseURL:    baseURL,
		httpClient: catalog.NewHTTPClient(),
		vocab:      vocabulary.New(ecvTable, vocabulary.MatchExact, logger),
		log:        logger,
	}
}

func (a *actris) Name() string {
	return ProviderName
}

func (a *actris) Granularity() catalog.QueryGranularity {
	return catalog.PerVariable
}

func (a *actris) Vocabulary() *vocabulary.Map {
	return a.vocab
}

type facilityDTO struct {
	Identifier       string  `json:"identifier"`
	Name             string  `json:"name"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	Alt              float64 `json:"alt"`
	NationalFacility bool    `json:"actris_national_facility"`
}

// Platforms lists the ACTRIS national facilities. The listing is live
// on every call; facility reference data is not cached here.
func (a *actris) Platforms(ctx context.Context) ([]domain.Platform, error) {
	facilities := []facilityDTO{}
	err := a.getJSON(ctx, a.baseURL+"/facilities", &facilities)
	if err != nil {
		return nil, err
	}

	platforms := []domain.Platform{}
	for _, f := range facilities {
		if !f.NationalFacility {
			continue
		}
		platforms = append(platforms, domain.Platform{
			ShortName: f.Identifier,
			LongName:  f.Name,
			Latitude:  f.Lat,
			Longitude: f.Lon,
			Altitude:  f.Alt,
			URI:       fmt.Sprintf("%s/facilities/%s", a.baseURL, f.Identifier),
		})
	}

	return platforms, nil
}

type contentAttributeDTO struct {
	Label string `json:"label"`
}

// Variables lists the ACTRIS content attributes the shared taxonomy
// knows about, together with the ECV names each one maps to.
func (a *actris) Variables(ctx context.Context) ([]domain.VariableMapping, error) {
	attributes := []contentAttributeDTO{}
	err := a.getJSON(ctx, a.baseURL+"/vocabulary/contentattribute", &attributes)
	if err != nil {
		return nil, err
	}

	mappings := []domain.VariableMapping{}
	for _, attr := range attributes {
		ecvs := a.vocab.ECVsFor(attr.Label)
		if len(ecvs) == 0 {
			continue
		}
		mappings = append(mappings, domain.VariableMapping{
			VariableName: attr.Label,
			ECVNames:     ecvs,
		})
	}

	return mappings, nil
}

// Datasets pages through the metadata catalog for one facility and
// content attribute and normalizes every record. Malformed records are
// logged and skipped; the batch continues.
func (a *actris) Datasets(ctx context.Context, entityID, variable string) ([]domain.Dataset, error) {
	records, err := catalog.FetchPages(ctx, a.httpClient, func(page int) string {
		return fmt.Sprintf("%s/metadata/facility/%s/content/%s/page/%d",
			a.baseURL, url.PathEscape(entityID), url.PathEscape(variable), page)
	})
	if err != nil {
		return nil, err
	}

	datasets := []domain.Dataset{}
	for _, record := range records {
		ds, err := a.normalize(record, variable)
		if err != nil {
			a.log.Warn().Err(err).Msg("skipping malformed catalog record")
			continue
		}
		if ds != nil {
			datasets = append(datasets, *ds)
		}
	}

	return datasets, nil
}

func (a *actris) getJSON(ctx context.Context, url string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %s", err.Error())
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return &catalog.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &catalog.TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &catalog.TransportError{URL: url, Err: err}
	}

	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s: %s", url, err.Error())
	}

	return nil
}
