package icos

import (
	"context"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/catalog"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/knakk/rdf"
)

// datasetsQuery lists all current data objects for the known object
// specifications, with their station, file name and temporal coverage.
// The VALUES filter keeps the result bounded to the specs the
// vocabulary covers.
const datasetsQuery = `
prefix cpmeta: <http://meta.icos-cp.eu/ontologies/cpmeta/>
prefix prov: <http://www.w3.org/ns/prov#>
select ?station ?dobj ?spec ?fileName ?size ?submTime ?timeStart ?timeEnd
where {
	VALUES ?spec {
		<http://meta.icos-cp.eu/resources/cpmeta/atcCh4Product>
		<http://meta.icos-cp.eu/resources/cpmeta/atcCoL2DataObject>
		<http://meta.icos-cp.eu/resources/cpmeta/atcCo2Product>
		<http://meta.icos-cp.eu/resources/cpmeta/atcMtoL2DataObject>
		<http://meta.icos-cp.eu/resources/cpmeta/atcN2oL2DataObject>}
	?dobj cpmeta:hasObjectSpec ?spec .
	?dobj cpmeta:hasSizeInBytes ?size .
	?dobj cpmeta:hasName ?fileName .
	?dobj cpmeta:wasAcquiredBy/prov:wasAssociatedWith ?station .
	?dobj cpmeta:wasSubmittedBy/prov:endedAtTime ?submTime .
	?dobj cpmeta:hasStartTime | (cpmeta:wasAcquiredBy / prov:startedAtTime) ?timeStart .
	?dobj cpmeta:hasEndTime | (cpmeta:wasAcquiredBy / prov:endedAtTime) ?timeEnd .
	FILTER NOT EXISTS {[] cpmeta:isNextVersionOf ?dobj}
	{
		{FILTER NOT EXISTS {?dobj cpmeta:hasVariableName ?varName}}
		UNION
		{
			?dobj cpmeta:hasVariableName ?varName
			FILTER (?varName = "co2" || ?varName = "ch4" || ?varName = "co" || ?varName = "n2o" || ?varName = "RH" || ?varName = "WD" || ?varName = "WS")
		}
	}
}`

// Datasets queries the SPARQL catalog and keeps the data objects that
// belong to the given station. The catalog is entity granular, so the
// variable argument is unused; callers filter on the descriptor ECV
// set instead. Duplicate rows for one data object (meteo variables
// share a file) collapse to the first occurrence.
func (i *icos) Datasets(ctx context.Context, entityID, variable string) ([]domain.Dataset, error) {
	res, err := i.repo.Query(datasetsQuery)
	if err != nil {
		return nil, &catalog.TransportError{URL: i.endpoint, Err: err}
	}

	datasets := []domain.Dataset{}
	seen := map[string]bool{}

	for _, solution := range res.Solutions() {
		station := termString(solution, "station")
		if platformID(station) != entityID {
			continue
		}

		dobj := termString(solution, "dobj")
		if dobj == "" || seen[dobj] {
			continue
		}
		seen[dobj] = true

		spec := termString(solution, "spec")
		ecvs := i.ecvsForSpec(spec)
		if len(ecvs) == 0 {
			continue
		}

		timeStart, err := termTime(solution, "timeStart")
		if err != nil {
			i.log.Warn().Err(err).Msgf("skipping malformed catalog row for %s", dobj)
			continue
		}
		timeEnd, err := termTime(solution, "timeEnd")
		if err != nil {
			i.log.Warn().Err(err).Msgf("skipping malformed catalog row for %s", dobj)
			continue
		}

		datasets = append(datasets, domain.Dataset{
			ID:           dobj,
			Title:        datasetTitle(termString(solution, "fileName")),
			URLs:         []domain.DatasetURL{{URL: dobj, Type: domain.URLTypeLandingPage}},
			ECVVariables: ecvs,
			TimePeriod:   domain.NewTemporalExtent(timeStart, timeEnd),
			PlatformID:   platformID(station),
		})
	}

	return datasets, nil
}

// platformID extracts the three letter station code from a station
// resource IRI.
func platformID(stationIRI string) string {
	if len(stationIRI) < 3 {
		return stationIRI
	}
	return stationIRI[len(stationIRI)-3:]
}

func datasetTitle(fileName string) string {
	return strings.TrimSuffix(fileName, path.Ext(fileName))
}

func termString(solution map[string]rdf.Term, key string) string {
	term, ok := solution[key]
	if !ok {
		return ""
	}
	return term.String()
}

func termFloat(solution map[string]rdf.Term, key string) float64 {
	value, err := strconv.ParseFloat(termString(solution, key), 64)
	if err != nil {
		return 0
	}
	return value
}

func termTime(solution map[string]rdf.Term, key string) (time.Time, error) {
	return time.Parse(time.RFC3339, termString(solution, key))
}
