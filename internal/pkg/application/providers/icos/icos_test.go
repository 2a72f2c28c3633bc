package icos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/catalog"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestPlatformsListsAtmosphericStations(t *testing.T) {
	is := is.New(t)
	server := newEndpoint(t)
	defer server.Close()

	provider, err := New(server.URL, zerolog.Nop())
	is.NoErr(err)

	platforms, err := provider.Platforms(context.Background())
	is.NoErr(err)
	is.Equal(len(platforms), 2)

	is.Equal(platforms[0].ShortName, "SMR")
	is.Equal(platforms[0].LongName, "Hyytiälä")
	is.Equal(platforms[0].Latitude, 61.8474)
	is.Equal(platforms[0].URI, "http://meta.icos-cp.eu/resources/stations/AS_SMR")

	is.Equal(platforms[1].ShortName, "HTM")
	is.Equal(platforms[1].Altitude, float64(0)) // elevation is optional
}

func TestDatasetsKeepsOnlyTheRequestedStation(t *testing.T) {
	is := is.New(t)
	server := newEndpoint(t)
	defer server.Close()

	provider, err := New(server.URL, zerolog.Nop())
	is.NoErr(err)

	datasets, err := provider.Datasets(context.Background(), "SMR", "")
	is.NoErr(err)
	is.Equal(len(datasets), 1) // the HTM data object is filtered out

	ds := datasets[0]
	is.Equal(ds.ID, "https://meta.icos-cp.eu/objects/abc123")
	is.Equal(ds.Title, "ICOS_ATC_L2_SMR_CO2")
	is.Equal(ds.PlatformID, "SMR")
	is.Equal(ds.URLs, []domain.DatasetURL{{URL: "https://meta.icos-cp.eu/objects/abc123", Type: domain.URLTypeLandingPage}})
	is.Equal(ds.TimePeriod.Start, time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC))
	is.Equal(ds.TimePeriod.End, time.Date(2023, 3, 31, 23, 0, 0, 0, time.UTC))
}

func TestDatasetsCollapseDuplicateDataObjectRows(t *testing.T) {
	is := is.New(t)
	server := newEndpoint(t)
	defer server.Close()

	provider, err := New(server.URL, zerolog.Nop())
	is.NoErr(err)

	// the meteo data object appears once per variable name in the
	// result set but must be reported once
	datasets, err := provider.Datasets(context.Background(), "HTM", "")
	is.NoErr(err)
	is.Equal(len(datasets), 1)
	is.Equal(datasets[0].ID, "https://meta.icos-cp.eu/objects/def456")
}

func TestDataObjectECVsFollowTheObjectSpecification(t *testing.T) {
	is := is.New(t)
	server := newEndpoint(t)
	defer server.Close()

	provider, err := New(server.URL, zerolog.Nop())
	is.NoErr(err)

	datasets, err := provider.Datasets(context.Background(), "SMR", "")
	is.NoErr(err)
	is.Equal(len(datasets), 1)
	is.Equal(datasets[0].ECVVariables, []domain.ECVName{
		"Carbon Dioxide",
		"Carbon Dioxide, Methane and other Greenhouse gases",
		"Tropospheric CO2",
		"co2",
	})
}

func TestUnreachableEndpointYieldsTransportError(t *testing.T) {
	is := is.New(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider, err := New(server.URL, zerolog.Nop())
	is.NoErr(err)

	_, err = provider.Datasets(context.Background(), "SMR", "")
	is.True(err != nil)

	transportErr := &catalog.TransportError{}
	is.True(errors.As(err, &transportErr))
}

func TestNitrousOxideBelongsToTheCombinedGreenhouseGasECV(t *testing.T) {
	is := is.New(t)
	server := newEndpoint(t)
	defer server.Close()

	provider, err := New(server.URL, zerolog.Nop())
	is.NoErr(err)

	vocab := provider.Vocabulary()
	is.Equal(vocab.VariablesFor("Carbon Dioxide, Methane and other Greenhouse gases"), []string{"co2", "co", "ch4", "n2o"})

	i := provider.(*icos)
	is.Equal(i.ecvsForSpec("http://meta.icos-cp.eu/resources/cpmeta/atcN2oL2DataObject"), []domain.ECVName{
		"Carbon Dioxide, Methane and other Greenhouse gases",
		"Nitrous Oxide",
		"n2o",
	})
}

func TestECVNamesMatchCaseInsensitively(t *testing.T) {
	is := is.New(t)
	server := newEndpoint(t)
	defer server.Close()

	provider, err := New(server.URL, zerolog.Nop())
	is.NoErr(err)

	vocab := provider.Vocabulary()
	is.True(vocab.Contains("temperature"))
	is.True(vocab.Contains("Nitrous Oxide"))
	is.Equal(vocab.VariablesFor("TROPOSPHERIC CO2"), []string{"co2"})
}

func TestSpecLookupFoldsCase(t *testing.T) {
	is := is.New(t)
	server := newEndpoint(t)
	defer server.Close()

	provider, err := New(server.URL, zerolog.Nop())
	is.NoErr(err)

	i := provider.(*icos)
	is.Equal(i.SpecFor("CO2"), "http://meta.icos-cp.eu/resources/cpmeta/atcCo2Product")
	is.Equal(i.SpecFor("rh"), "http://meta.icos-cp.eu/resources/cpmeta/atcMtoL2DataObject")
	is.Equal(i.SpecFor("nox"), "")
}

func TestPlatformIDIsTheStationCode(t *testing.T) {
	is := is.New(t)

	is.Equal(platformID("http://meta.icos-cp.eu/resources/stations/AS_SMR"), "SMR")
	is.Equal(platformID("X"), "X")
}

func TestDatasetTitleDropsTheFileExtension(t *testing.T) {
	is := is.New(t)

	is.Equal(datasetTitle("ICOS_ATC_L2_SMR_CO2.zip"), "ICOS_ATC_L2_SMR_CO2")
	is.Equal(datasetTitle("no-extension"), "no-extension")
}

// newEndpoint serves canned SPARQL JSON results, branching on the
// query text the same way the live endpoint branches on the query.
func newEndpoint(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/sparql-results+json")

		if strings.Contains(string(body), "hasStationId") {
			fmt.Fprint(w, stationResultsJSON)
			return
		}
		fmt.Fprint(w, dataObjectResultsJSON)
	}))
}

const stationResultsJSON = `{
	"head": {"vars": ["uri", "id", "name", "lat", "lon", "elevation"]},
	"results": {"bindings": [
		{
			"uri": {"type": "uri", "value": "http://meta.icos-cp.eu/resources/stations/AS_SMR"},
			"id": {"type": "literal", "value": "SMR"},
			"name": {"type": "literal", "value": "Hyytiälä"},
			"lat": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#double", "value": "61.8474"},
			"lon": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#double", "value": "24.2948"},
			"elevation": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#float", "value": "181"}
		},
		{
			"uri": {"type": "uri", "value": "http://meta.icos-cp.eu/resources/stations/AS_HTM"},
			"id": {"type": "literal", "value": "HTM"},
			"name": {"type": "literal", "value": "Hyltemossa"},
			"lat": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#double", "value": "56.0976"},
			"lon": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#double", "value": "13.4189"}
		}
	]}
}`

const dataObjectResultsJSON = `{
	"head": {"vars": ["station", "dobj", "spec", "fileName", "size", "submTime", "timeStart", "timeEnd"]},
	"results": {"bindings": [
		{
			"station": {"type": "uri", "value": "http://meta.icos-cp.eu/resources/stations/AS_SMR"},
			"dobj": {"type": "uri", "value": "https://meta.icos-cp.eu/objects/abc123"},
			"spec": {"type": "uri", "value": "http://meta.icos-cp.eu/resources/cpmeta/atcCo2Product"},
			"fileName": {"type": "literal", "value": "ICOS_ATC_L2_SMR_CO2.zip"},
			"size": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#long", "value": "1048576"},
			"submTime": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#dateTime", "value": "2023-04-12T09:00:00Z"},
			"timeStart": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#dateTime", "value": "2017-01-01T00:00:00Z"},
			"timeEnd": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#dateTime", "value": "2023-03-31T23:00:00Z"}
		},
		{
			"station": {"type": "uri", "value": "http://meta.icos-cp.eu/resources/stations/AS_HTM"},
			"dobj": {"type": "uri", "value": "https://meta.icos-cp.eu/objects/def456"},
			"spec": {"type": "uri", "value": "http://meta.icos-cp.eu/resources/cpmeta/atcMtoL2DataObject"},
			"fileName": {"type": "literal", "value": "ICOS_ATC_L2_HTM_MTO.zip"},
			"size": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#long", "value": "524288"},
			"submTime": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#dateTime", "value": "2023-04-12T09:00:00Z"},
			"timeStart": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#dateTime", "value": "2018-01-01T00:00:00Z"},
			"timeEnd": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#dateTime", "value": "2023-03-31T23:00:00Z"}
		},
		{
			"station": {"type": "uri", "value": "http://meta.icos-cp.eu/resources/stations/AS_HTM"},
			"dobj": {"type": "uri", "value": "https://meta.icos-cp.eu/objects/def456"},
			"spec": {"type": "uri", "value": "http://meta.icos-cp.eu/resources/cpmeta/atcMtoL2DataObject"},
			"fileName": {"type": "literal", "value": "ICOS_ATC_L2_HTM_MTO.zip"},
			"size": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#long", "value": "524288"},
			"submTime": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#dateTime", "value": "2023-04-12T09:00:00Z"},
			"timeStart": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#dateTime", "value": "2018-01-01T00:00:00Z"},
			"timeEnd": {"type": "literal", "datatype": "http://www.w3.org/2001/XMLSchema#dateTime", "value": "2023-03-31T23:00:00Z"}
		}
	]}
}`
