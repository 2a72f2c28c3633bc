package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/services/content"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
)

func NewRetrieveDatasetContentHandler(logger zerolog.Logger, svc content.DatasetReader) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-dataset-content")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		datasetURL := r.URL.Query().Get("url")
		if datasetURL == "" {
			err = fmt.Errorf("no dataset url supplied in query")
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var ecvs []domain.ECVName
		for _, name := range splitParam(r.URL.Query().Get("ecvs")) {
			ecvs = append(ecvs, domain.ECVName(name))
		}

		membershipOnly := false
		if param := r.URL.Query().Get("membership"); param != "" {
			membershipOnly, err = strconv.ParseBool(param)
			if err != nil {
				log.Error().Err(err).Msg("bad request")
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}

		result, err := svc.Read(ctx, datasetURL, ecvs, membershipOnly)
		if err != nil {
			log.Error().Err(err).Msg("failed to read dataset content")

			readErr := &content.DatasetReadError{}
			if errors.As(err, &readErr) {
				w.WriteHeader(http.StatusBadGateway)
			} else if errors.Is(err, content.ErrInvalidLocator) {
				w.WriteHeader(http.StatusBadRequest)
			} else {
				w.WriteHeader(http.StatusInternalServerError)
			}
			return
		}

		body, err := json.Marshal(result)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal dataset content")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}
