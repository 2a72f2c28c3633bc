package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/services/discovery"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
)

func NewRetrieveVariablesHandler(logger zerolog.Logger, svc discovery.DatasetDiscovery) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-variables")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		mappings, err := svc.Variables(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to retrieve variable mappings")
			w.WriteHeader(statusFromError(err))
			return
		}

		body, err := json.Marshal(mappings)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal variable mappings")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Header().Add("Cache-Control", "max-age=3600")
		w.Write(body)
	})
}
