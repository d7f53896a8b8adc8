package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/safetrip/internal/config"
	"github.com/xyz-asif/safetrip/internal/features/auth"
	"github.com/xyz-asif/safetrip/internal/features/comments"
	"github.com/xyz-asif/safetrip/internal/features/demo"
	"github.com/xyz-asif/safetrip/internal/features/incidents"
	"github.com/xyz-asif/safetrip/internal/features/media"
	"github.com/xyz-asif/safetrip/internal/features/posts"
	"github.com/xyz-asif/safetrip/internal/features/safetymap"
	"github.com/xyz-asif/safetrip/internal/pkg/cache"
	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
	"github.com/xyz-asif/safetrip/internal/pkg/jwt"
	"github.com/xyz-asif/safetrip/internal/pkg/ratelimit"
)

// Deps are the external collaborators. Provider, Media and Cache may be nil: the affected
// operations then report the service as unavailable, or run uncached.
type Deps struct {
	Store    *docstore.Database
	Provider auth.IdentityProvider
	Media    media.Store
	Cache    cache.Cache
	// Stop ends background housekeeping.
	Stop <-chan struct{}
}

func SetupRoutes(router *gin.Engine, cfg *config.Config, deps Deps) {
	var authOpts []auth.Option
	if deps.Cache != nil {
		authOpts = append(authOpts, auth.WithCache(deps.Cache, cfg.ProfileCacheTTL))
	}
	tokens := jwt.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour)
	authService := auth.NewService(deps.Provider, auth.NewRepository(deps.Store), tokens, authOpts...)
	authService.OnAuthStateChanged(auth.RecordAuthState)

	incidentService := incidents.NewService(incidents.NewRepository(deps.Store), authService, time.Now)
	postService := posts.NewService(posts.NewRepository(deps.Store), authService, time.Now)
	commentService := comments.NewService(comments.NewRepository(deps.Store), map[comments.ParentType]comments.Parent{
		comments.ParentIncident: incidentService,
		comments.ParentPost:     postService,
	}, authService, time.Now)

	limiter := ratelimit.New(cfg.WriteRateLimit, cfg.WriteRateBurst)
	if deps.Stop != nil {
		limiter.StartCleanup(time.Minute, deps.Stop)
	}
	limit := ratelimit.Middleware(limiter, func(c *gin.Context) string {
		return auth.SessionFrom(c).UID()
	})
	requireAuth := auth.NewAuthMiddleware(authService)
	optionalAuth := auth.OptionalAuth(authService)

	// API v1 group
	api := router.Group("/api/v1")

	auth.RegisterRoutes(api, authService, deps.Media, limit)
	incidents.RegisterRoutes(api, incidentService, requireAuth, optionalAuth, limit)
	posts.RegisterRoutes(api, postService, requireAuth, optionalAuth, limit)
	comments.RegisterRoutes(api, commentService, requireAuth, limit)
	media.RegisterRoutes(api, deps.Media, requireAuth, limit)
	safetymap.RegisterRoutes(api, safetymap.SampleData())

	// Demo endpoints predate versioning and live directly under /api.
	demo.RegisterRoutes(router.Group("/api"), demo.NewGenerator(time.Now().UnixNano(), time.Now))
}
