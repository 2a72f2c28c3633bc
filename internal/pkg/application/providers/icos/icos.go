package icos

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/catalog"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/vocabulary"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/knakk/sparql"
	"github.com/rs/zerolog"
)

const (
	// DefaultEndpoint is the ICOS Carbon Portal SPARQL endpoint.
	DefaultEndpoint string = "https://meta.icos-cp.eu/sparql"

	ProviderName string = "icos"

	queryTimeout = 30 * time.Second
)

// ecvTable maps the ECV taxonomy to ICOS variable codes. A single code
// serves several ECV spellings, including the lowercase aliases the
// portal itself uses.
var ecvTable = vocabulary.Table{
	{ECV: "Pressure (surface)", Variables: []string{"AP"}},
	{ECV: "Pressure", Variables: []string{"AP"}},
	{ECV: "ap", Variables: []string{"AP"}},
	{ECV: "Surface Wind Speed and direction", Variables: []string{"WD", "WS"}},
	{ECV: "wd", Variables: []string{"WD"}},
	{ECV: "ws", Variables: []string{"WS"}},
	{ECV: "Temperature (near surface)", Variables: []string{"AT"}},
	{ECV: "Temperature", Variables: []string{"AT"}},
	{ECV: "at", Variables: []string{"AT"}},
	{ECV: "Water Vapour (surface)", Variables: []string{"RH"}},
	{ECV: "Water Vapour (Relative Humidity)", Variables: []string{"RH"}},
	{ECV: "rh", Variables: []string{"RH"}},
	{ECV: "Carbon Dioxide", Variables: []string{"co2"}},
	{ECV: "Carbon Dioxide, Methane and other Greenhouse gases", Variables: []string{"co2", "co", "ch4", "n2o"}},
	{ECV: "Tropospheric CO2", Variables: []string{"co2"}},
	{ECV: "co2", Variables: []string{"co2"}},
	{ECV: "Carbon Monoxide", Variables: []string{"co"}},
	{ECV: "co", Variables: []string{"co"}},
	{ECV: "Methane", Variables: []string{"ch4"}},
	{ECV: "Tropospheric CH4", Variables: []string{"ch4"}},
	{ECV: "ch4", Variables: []string{"ch4"}},
	{ECV: "Nitrous Oxide", Variables: []string{"n2o"}},
	{ECV: "n2o", Variables: []string{"n2o"}},
}

// variableSpecs associates each ICOS variable code (lowercase) with the
// object specification IRI the data portal tags its data objects with.
var variableSpecs = map[string]string{
	"ap":  "http://meta.icos-cp.eu/resources/cpmeta/atcMtoL2DataObject",
	"wd":  "http://meta.icos-cp.eu/resources/cpmeta/atcMtoL2DataObject",
	"ws":  "http://meta.icos-cp.eu/resources/cpmeta/atcMtoL2DataObject",
	"at":  "http://meta.icos-cp.eu/resources/cpmeta/atcMtoL2DataObject",
	"rh":  "http://meta.icos-cp.eu/resources/cpmeta/atcMtoL2DataObject",
	"co2": "http://meta.icos-cp.eu/resources/cpmeta/atcCo2Product",
	"co":  "http://meta.icos-cp.eu/resources/cpmeta/atcCoL2DataObject",
	"ch4": "http://meta.icos-cp.eu/resources/cpmeta/atcCh4Product",
	"n2o": "http://meta.icos-cp.eu/resources/cpmeta/atcN2oL2DataObject",
}

type icos struct {
	endpoint string
	repo     *sparql.Repo
	vocab    *vocabulary.Map

	specVariables map[string][]string

	log zerolog.Logger
}

// New creates the ICOS catalog integration. ICOS variable codes appear
// in mixed case across the portal, so lookups fold case.
func New(endpoint string, logger zerolog.Logger) (catalog.Provider, error) {
	repo, err := sparql.NewRepo(endpoint, sparql.Timeout(queryTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to create sparql repo for %s: %s", endpoint, err.Error())
	}

	specVariables := map[string][]string{}
	for variable, spec := range variableSpecs {
		specVariables[spec] = append(specVariables[spec], variable)
	}
	for _, variables := range specVariables {
		sort.Strings(variables)
	}

	return &icos{
		endpoint:      endpoint,
		repo:          repo,
		vocab:         vocabulary.New(ecvTable, vocabulary.MatchFold, logger),
		specVariables: specVariables,
		log:           logger,
	}, nil
}

func (i *icos) Name() string {
	return ProviderName
}

func (i *icos) Granularity() catalog.QueryGranularity {
	return catalog.PerEntity
}

func (i *icos) Vocabulary() *vocabulary.Map {
	return i.vocab
}

// SpecFor returns the object specification IRI for a variable code.
func (i *icos) SpecFor(variable string) string {
	return variableSpecs[strings.ToLower(variable)]
}

// ecvsForSpec maps an object specification IRI back to the union of
// ECV names of the variable codes it covers.
func (i *icos) ecvsForSpec(spec string) []domain.ECVName {
	ecvs := []domain.ECVName{}
	seen := map[domain.ECVName]bool{}
	for _, variable := range i.specVariables[spec] {
		for _, ecv := range i.vocab.ECVsFor(variable) {
			if seen[ecv] {
				continue
			}
			seen[ecv] = true
			ecvs = append(ecvs, ecv)
		}
	}
	return ecvs
}

// Variables returns the static ICOS variable to ECV mapping. The
// portal has no vocabulary listing endpoint; the mapping is maintained
// with the integration.
func (i *icos) Variables(ctx context.Context) ([]domain.VariableMapping, error) {
	return i.vocab.Mappings(), nil
}

const platformsQuery = `
prefix cpmeta: <http://meta.icos-cp.eu/ontologies/cpmeta/>
select ?uri ?id ?name ?lat ?lon ?elevation
where {
	?uri cpmeta:hasStationId ?id ;
		cpmeta:hasName ?name .
	filter(strstarts(str(?uri), "http://meta.icos-cp.eu/resources/stations/AS"))
	optional { ?uri cpmeta:hasLatitude ?lat }
	optional { ?uri cpmeta:hasLongitude ?lon }
	optional { ?uri cpmeta:hasElevation ?elevation }
}`

// Platforms lists the ICOS atmospheric stations.
func (i *icos) Platforms(ctx context.Context) ([]domain.Platform, error) {
	res, err := i.repo.Query(platformsQuery)
	if err != nil {
		return nil, &catalog.TransportError{URL: i.endpoint, Err: err}
	}

	platforms := []domain.Platform{}
	for _, solution := range res.Solutions() {
		platform := domain.Platform{
			ShortName: termString(solution, "id"),
			LongName:  termString(solution, "name"),
			Latitude:  termFloat(solution, "lat"),
			Longitude: termFloat(solution, "lon"),
			Altitude:  termFloat(solution, "elevation"),
			URI:       termString(solution, "uri"),
		}
		if platform.ShortName == "" {
			continue
		}
		platforms = append(platforms, platform)
	}

	return platforms, nil
}
