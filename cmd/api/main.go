// @title SafeTrip API
// @version 1.0
// @description Travel safety community: incidents, discussion board, profiles and a safety map
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xyz-asif/safetrip/internal/config"
	"github.com/xyz-asif/safetrip/internal/database"
	"github.com/xyz-asif/safetrip/internal/features/auth"
	"github.com/xyz-asif/safetrip/internal/features/media"
	"github.com/xyz-asif/safetrip/internal/middleware"
	"github.com/xyz-asif/safetrip/internal/pkg/cache"
	"github.com/xyz-asif/safetrip/internal/pkg/cloudinary"
	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
	"github.com/xyz-asif/safetrip/internal/pkg/logger"
	"github.com/xyz-asif/safetrip/internal/pkg/metrics"
	"github.com/xyz-asif/safetrip/internal/pkg/response"
	"github.com/xyz-asif/safetrip/internal/routes"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	docs "github.com/xyz-asif/safetrip/docs"
	"go.uber.org/zap"
)

func main() {
	// Load config
	cfg := config.Load()

	if _, err := logger.Init(cfg.LogLevel, cfg.IsProduction()); err != nil {
		log.Fatal("Failed to initialise logger:", err)
	}
	defer logger.Sync()

	// Configure Swagger metadata at runtime
	docs.SwaggerInfo.Title = "SafeTrip API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	stop := make(chan struct{})
	deps := routes.Deps{Stop: stop}

	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using the in-memory document store, data is lost on restart")
		deps.Store = docstore.NewMemoryDatabase()
	default:
		db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer db.Disconnect(context.Background())
		deps.Store = docstore.FromMongo(db.Database)
	}

	if cfg.RedisAddr != "" {
		rdb, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, profiles will not be cached", zap.Error(err))
		} else {
			defer rdb.Close()
			deps.Cache = cache.NewRedisCache(rdb, "safetrip:")
		}
	}

	if provider, err := auth.NewFirebaseProvider(context.Background(), cfg); err != nil {
		logger.Warn("identity provider disabled", zap.Error(err))
	} else {
		deps.Provider = provider
	}

	if cld, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder); err != nil {
		logger.Warn("media uploads disabled", zap.Error(err))
	} else {
		deps.Media = media.NewCloudinaryStore(cld)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))
	router.Use(metrics.Middleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	routes.SetupRoutes(router, cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	close(stop)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
