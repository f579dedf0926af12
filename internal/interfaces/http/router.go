package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/orris-inc/modgate/docs"
	"github.com/orris-inc/modgate/internal/application/moderation/usecases"
	"github.com/orris-inc/modgate/internal/domain/moderation"
	"github.com/orris-inc/modgate/internal/infrastructure/auth"
	"github.com/orris-inc/modgate/internal/infrastructure/config"
	"github.com/orris-inc/modgate/internal/infrastructure/ratelimit"
	"github.com/orris-inc/modgate/internal/interfaces/http/handlers"
	moderationHandlers "github.com/orris-inc/modgate/internal/interfaces/http/handlers/moderation"
	"github.com/orris-inc/modgate/internal/interfaces/http/middleware"
	"github.com/orris-inc/modgate/internal/shared/errors"
	"github.com/orris-inc/modgate/internal/shared/logger"
	"github.com/orris-inc/modgate/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine            *gin.Engine
	cfg               *config.Config
	moderationHandler *moderationHandlers.Handler
	healthHandler     *handlers.HealthHandler
	rateLimiter       *middleware.RateLimiter
	verifier          *auth.TokenVerifier
	logger            logger.Interface
}

// NewRouter creates a new HTTP router. The limiter is shared between the
// moderation pipeline and the rate limit middleware so every client has a
// single window.
func NewRouter(cfg *config.Config, limiter ratelimit.Limiter, scorer moderation.Scorer, log logger.Interface) (*Router, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, err
	}

	pipeline := usecases.NewPipeline(
		limiter,
		scorer,
		usecases.PoliciesFromConfig(cfg.Moderation),
		cfg.Moderation.ScoringTimeout,
		log.Named("pipeline"),
	)

	moderateTextUC := usecases.NewModerateTextUseCase(pipeline, usecases.TextValidatorFromConfig(cfg.Moderation))
	moderateImageUC := usecases.NewModerateImageUseCase(pipeline, usecases.ImageValidatorFromConfig(cfg.Upload))
	listCategoriesUC := usecases.NewListCategoriesUseCase(pipeline.Policies())

	moderationHandler := moderationHandlers.NewHandler(
		moderateTextUC,
		moderateImageUC,
		listCategoriesUC,
		cfg.Moderation.TextMaxLength,
		cfg.Upload.MaxSize,
		log.Named("moderation_handler"),
	)

	var store ratelimit.Pinger
	if p, ok := limiter.(ratelimit.Pinger); ok {
		store = p
	}
	healthHandler := handlers.NewHealthHandler(cfg.Server.Version, cfg.Server.Mode, store, log)

	rateLimiter := middleware.NewRateLimiter(limiter, ratelimit.NewExemptPaths(cfg.RateLimit.ExemptPaths), log)

	return &Router{
		engine:            engine,
		cfg:               cfg,
		moderationHandler: moderationHandler,
		healthHandler:     healthHandler,
		rateLimiter:       rateLimiter,
		verifier:          auth.NewTokenVerifier(cfg.Auth.JWTSecret),
		logger:            log,
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.ErrorHandler(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.ClientIdentity(r.verifier, r.logger))

	r.engine.NoRoute(func(c *gin.Context) {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("Resource not found", c.Request.URL.Path))
	})

	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/ready", r.healthHandler.Ready)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/api/docs", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/swagger/index.html")
	})

	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/openapi.json", serveOpenAPI)

		// Admission for moderation routes happens inside the pipeline, after
		// validation, so malformed submissions do not use up quota.
		v1.POST("/moderate/text", r.moderationHandler.ModerateText)
		v1.POST("/moderate/image", r.moderationHandler.ModerateImage)

		v1.GET("/moderation/categories", r.rateLimiter.Limit(), r.moderationHandler.ListCategories)
	}
}

func serveOpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
