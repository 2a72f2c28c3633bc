package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/catalog"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/services/discovery"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-dataaccess/api")

func NewRetrievePlatformsHandler(logger zerolog.Logger, svc discovery.DatasetDiscovery) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-platforms")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		provider := r.URL.Query().Get("provider")

		platforms, err := svc.Platforms(ctx, provider)
		if err != nil {
			log.Error().Err(err).Msg("failed to retrieve platforms")
			w.WriteHeader(statusFromError(err))
			return
		}

		body, err := json.Marshal(platforms)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal platforms")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Header().Add("Cache-Control", "max-age=3600")
		w.Write(body)
	})
}

// statusFromError maps a discovery failure onto a response status. A
// transport failure against a remote catalog is the gateway's fault,
// anything else is a problem with the request.
func statusFromError(err error) int {
	transportErr := &catalog.TransportError{}
	if errors.As(err, &transportErr) {
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}
