package actris

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/catalog"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
)

type metadataRecord struct {
	ID               any `json:"id"`
	MDIdentification *struct {
		Title *string `json:"title"`
	} `json:"md_identification"`
	MDDistributionInformation []struct {
		DatasetURL string `json:"dataset_url"`
		Protocol   string `json:"protocol"`
	} `json:"md_distribution_information"`
	ExTemporalExtent *struct {
		TimePeriodBegin *string `json:"time_period_begin"`
		TimePeriodEnd   *string `json:"time_period_end"`
	} `json:"ex_temporal_extent"`
	MDDataIdentification *struct {
		Facility *struct {
			Identifier *string `json:"identifier"`
		} `json:"facility"`
	} `json:"md_data_identification"`
}

func (r *metadataRecord) recordID() string {
	if r.ID == nil {
		return ""
	}
	return fmt.Sprintf("%v", r.ID)
}

// normalize turns one raw catalog record into a canonical dataset
// descriptor, or nil when the queried content attribute maps to no ECV.
// Missing required fields are aggregated into a single error so that a
// malformed record can be diagnosed in one log line.
func (a *actris) normalize(raw json.RawMessage, variable string) (*domain.Dataset, error) {
	ecvs := a.vocab.ECVsFor(variable)
	if len(ecvs) == 0 {
		return nil, nil
	}

	record := metadataRecord{}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, &catalog.MalformedRecordError{Err: err}
	}

	missing := []string{}
	if record.ID == nil {
		missing = append(missing, "id")
	}
	if record.MDIdentification == nil || record.MDIdentification.Title == nil {
		missing = append(missing, "md_identification.title")
	}
	if record.ExTemporalExtent == nil || record.ExTemporalExtent.TimePeriodBegin == nil || record.ExTemporalExtent.TimePeriodEnd == nil {
		missing = append(missing, "ex_temporal_extent")
	}
	if record.MDDataIdentification == nil || record.MDDataIdentification.Facility == nil || record.MDDataIdentification.Facility.Identifier == nil {
		missing = append(missing, "md_data_identification.facility.identifier")
	}
	if len(missing) > 0 {
		return nil, &catalog.MalformedRecordError{RecordID: record.recordID(), MissingFields: missing}
	}

	begin, err := parseTime(*record.ExTemporalExtent.TimePeriodBegin)
	if err != nil {
		return nil, &catalog.MalformedRecordError{RecordID: record.recordID(), Err: err}
	}
	end, err := parseTime(*record.ExTemporalExtent.TimePeriodEnd)
	if err != nil {
		return nil, &catalog.MalformedRecordError{RecordID: record.recordID(), Err: err}
	}

	urls := []domain.DatasetURL{}
	for _, entry := range record.MDDistributionInformation {
		if entry.Protocol != domain.URLTypeOpendap && entry.Protocol != domain.URLTypeHTTP {
			continue
		}
		urls = append(urls, domain.DatasetURL{URL: entry.DatasetURL, Type: entry.Protocol})
	}

	return &domain.Dataset{
		ID:           record.recordID(),
		Title:        *record.MDIdentification.Title,
		URLs:         urls,
		ECVVariables: ecvs,
		TimePeriod:   domain.NewTemporalExtent(begin, end),
		PlatformID:   *record.MDDataIdentification.Facility.Identifier,
	}, nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}
