package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/services/discovery"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
)

func NewQueryDatasetsHandler(logger zerolog.Logger, svc discovery.DatasetDiscovery) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "query-datasets")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		platforms := splitParam(r.URL.Query().Get("platforms"))
		if len(platforms) == 0 {
			err = fmt.Errorf("no platforms supplied in query")
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var ecvs []domain.ECVName
		if param := splitParam(r.URL.Query().Get("ecvs")); len(param) > 0 {
			for _, name := range param {
				ecvs = append(ecvs, domain.ECVName(name))
			}
		}

		extent, err := parseExtent(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
		if err != nil {
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		datasets, err := svc.QueryDatasets(ctx, platforms, ecvs, extent)
		if err != nil {
			log.Error().Err(err).Msg("failed to query datasets")
			w.WriteHeader(statusFromError(err))
			return
		}

		body, err := json.Marshal(struct {
			Data []domain.Dataset `json:"data"`
		}{Data: datasets})
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal datasets")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}

func splitParam(value string) []string {
	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

var extentLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// parseExtent turns the start and end query parameters into a temporal
// filter. Both must be given together, or neither.
func parseExtent(start, end string) (*domain.TemporalExtent, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, fmt.Errorf("start and end must both be supplied")
	}

	t0, err := parseExtentTime(start)
	if err != nil {
		return nil, err
	}
	t1, err := parseExtentTime(end)
	if err != nil {
		return nil, err
	}
	if t1.Before(t0) {
		return nil, fmt.Errorf("end %s precedes start %s", end, start)
	}

	extent := domain.NewTemporalExtent(t0, t1)
	return &extent, nil
}

func parseExtentTime(value string) (time.Time, error) {
	for _, layout := range extentLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}
