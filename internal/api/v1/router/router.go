package router

import (
	"context"
	"net/http"

	"coursehub/docs"
	"coursehub/internal/api/v1/handler"
	"coursehub/internal/config"
	"coursehub/internal/middleware"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"
	"coursehub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
)

// New wires storage, services and handlers and returns the root handler.
// The returned close function releases the backend and the Pub/Sub client.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	logger.Info().Str("environment", cfg.Environment).Str("storage_backend", cfg.StorageBackend).Msg("App environment loaded")

	// 1. Resolve credentials kept in Secret Manager
	if cfg.UsesSecretManager() {
		secrets, err := service.NewSecretManagerService(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		err = service.ResolveSecrets(ctx, cfg, secrets)
		secrets.Close()
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("Credentials resolved from Secret Manager")
	}

	// 2. Open the document backend and the repositories
	stores, closeStores, err := repository.OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	// 3. Initialize the change event publisher
	var publisher pubsub.Publisher = pubsub.NoopPublisher{}
	closeAll := closeStores
	if cfg.PubSubTopic != "" {
		p, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			closeStores()
			return nil, nil, err
		}
		publisher = p
		closeAll = func() {
			if err := p.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close Pub/Sub client")
			}
			closeStores()
		}
		logger.Info().Str("topic", cfg.PubSubTopic).Msg("Publishing change events")
	}
	notifier := pubsub.NewNotifier(publisher, cfg.PubSubTopic)

	// 4. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 5. Initialize services & handlers
	coordinator := service.NewCoordinator(stores.Courses, stores.Modules, stores.Lessons, notifier, logger)
	courseSvc := service.NewCourseService(stores.Courses, notifier, logger)
	moduleSvc := service.NewModuleService(stores.Modules, notifier, logger)
	lessonSvc := service.NewLessonService(stores.Lessons, notifier, logger)

	courseHandler := handler.NewCourseHandler(courseSvc, coordinator, validate, logger)
	moduleHandler := handler.NewModuleHandler(moduleSvc, coordinator, validate, logger)
	lessonHandler := handler.NewLessonHandler(lessonSvc, coordinator, validate, logger)

	// 6. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, logger)

	// 7. Create ServeMux router
	mux := http.NewServeMux()

	apiV1Mux := http.NewServeMux()
	courseHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	moduleHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	lessonHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	// Mount the API v1 routes under /v1
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	mux.HandleFunc("GET /swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			http.Error(w, "Failed to read API documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), closeAll, nil
}
