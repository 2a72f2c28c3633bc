package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ECVName is an entry in the Essential Climate Variable taxonomy,
// shared across all provider integrations.
type ECVName string

// URL type tags used in dataset distribution information.
const (
	URLTypeOpendap     string = "OPeNDAP"
	URLTypeHTTP        string = "HTTP"
	URLTypeLandingPage string = "landing_page"
)

// DatasetURL is one access point for a dataset's underlying data.
type DatasetURL struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// TemporalExtent is the [start, end] time period covered by a dataset.
// It serialises as a two element array to stay compatible with the
// time_period field of the ENVRI dataset exchange format.
type TemporalExtent struct {
	Start time.Time
	End   time.Time
}

func NewTemporalExtent(start, end time.Time) TemporalExtent {
	return TemporalExtent{Start: start, End: end}
}

// Overlaps reports whether the extent overlaps [t0, t1]. Touching
// endpoints count as overlap.
func (te TemporalExtent) Overlaps(t0, t1 time.Time) bool {
	return !(te.Start.After(t1) || te.End.Before(t0))
}

func (te TemporalExtent) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]time.Time{te.Start, te.End})
}

func (te *TemporalExtent) UnmarshalJSON(data []byte) error {
	var period []time.Time
	if err := json.Unmarshal(data, &period); err != nil {
		return err
	}
	if len(period) != 2 {
		return fmt.Errorf("time period should contain exactly 2 timestamps, got %d", len(period))
	}
	te.Start = period[0]
	te.End = period[1]
	return nil
}

// Dataset is the provider agnostic description of one discoverable
// dataset. The identifier is only used for deduplication and is not
// part of the serialised form.
type Dataset struct {
	ID           string         `json:"-"`
	Title        string         `json:"title"`
	URLs         []DatasetURL   `json:"urls"`
	ECVVariables []ECVName      `json:"ecv_variables"`
	TimePeriod   TemporalExtent `json:"time_period"`
	PlatformID   string         `json:"platform_id"`
}

// Platform is a station or facility that owns datasets.
type Platform struct {
	ShortName string  `json:"short_name"`
	LongName  string  `json:"long_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	URI       string  `json:"URI"`
}

// VariableMapping associates a single provider native variable with
// one or many ECV names.
type VariableMapping struct {
	VariableName string    `json:"variable_name"`
	ECVNames     []ECVName `json:"ECV_name"`
}

// DataArray is one variable loaded from an opened dataset.
type DataArray struct {
	Values     any            `json:"values"`
	Dimensions []string       `json:"dimensions"`
	Attributes map[string]any `json:"attributes"`
}

// ReducedDataset holds the variables of an opened dataset that
// survived content filtering, fully loaded into memory.
type ReducedDataset struct {
	Variables map[string]DataArray `json:"variables"`
	ECVs      []ECVName            `json:"ecv_variables"`
}
