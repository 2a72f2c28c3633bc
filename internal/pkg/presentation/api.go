package presentation

import (
	"compress/flate"
	"context"
	"net/http"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/services/content"
	"github.com/atmodata/api-dataaccess/internal/pkg/application/services/discovery"
	"github.com/atmodata/api-dataaccess/internal/pkg/presentation/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	Start(port string) error
}

type dataaccessAPI struct {
	router chi.Router
	log    zerolog.Logger
}

func NewAPI(r chi.Router, ctx context.Context, discoverySvc discovery.DatasetDiscovery, readerSvc content.DatasetReader) API {
	return newDataaccessAPI(r, ctx, discoverySvc, readerSvc)
}

func newDataaccessAPI(r chi.Router, ctx context.Context, discoverySvc discovery.DatasetDiscovery, readerSvc content.DatasetReader) *dataaccessAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(flate.DefaultCompression, "application/json")
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("api-dataaccess", otelchi.WithChiRoutes(r)))

	a := &dataaccessAPI{
		router: r,
		log:    log,
	}

	a.addDiscoveryHandlers(r, log, discoverySvc, readerSvc)
	a.addProbeHandlers(r)

	return a
}

func (a *dataaccessAPI) Start(port string) error {
	a.log.Info().Msgf("Starting api-dataaccess on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *dataaccessAPI) addDiscoveryHandlers(r chi.Router, log zerolog.Logger, discoverySvc discovery.DatasetDiscovery, readerSvc content.DatasetReader) {
	r.Get(
		"/api/platforms",
		handlers.NewRetrievePlatformsHandler(log, discoverySvc),
	)
	r.Get(
		"/api/variables",
		handlers.NewRetrieveVariablesHandler(log, discoverySvc),
	)
	r.Get(
		"/api/datasets",
		handlers.NewQueryDatasetsHandler(log, discoverySvc),
	)
	r.Get(
		"/api/datasets/content",
		handlers.NewRetrieveDatasetContentHandler(log, readerSvc),
	)
}

func (a *dataaccessAPI) addProbeHandlers(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
