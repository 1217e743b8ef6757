package server

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/snap-party/snapparty/internal/handler"
	"github.com/snap-party/snapparty/internal/middleware"
	"github.com/snap-party/snapparty/pkg/device"
	"github.com/snap-party/snapparty/pkg/event"
	"github.com/snap-party/snapparty/pkg/gallery"
	"github.com/snap-party/snapparty/pkg/health"
	"github.com/snap-party/snapparty/pkg/participant"
	"github.com/snap-party/snapparty/pkg/photo"
)

// GetEngine returns the Gin engine with the common middleware stack and the
// health route mounted. Routes are mounted separately so tests can mount just
// the handlers under test.
func GetEngine(logger *slog.Logger, basePath string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("authorization")
	corsConfig.MaxAge = 24 * time.Hour
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler())

	r.Group(basePath).GET("/health", health.Health)

	return r
}

// MountRoutes mounts every API route. Reads are public so a gallery can be
// browsed without a session; everything that writes requires one.
func MountRoutes(
	engine *gin.Engine,
	basePath string,
	deviceHandler device.Handler,
	eventHandler event.Handler,
	participantHandler participant.Handler,
	photoHandler photo.Handler,
	galleryHandler gallery.Handler,
	authMiddleware *handler.AuthenticationMiddleware,
) {
	router := engine.Group(basePath)

	router.POST("/devices", deviceHandler.Register)

	router.GET("/events/:id", eventHandler.FindById)
	router.GET("/events/join-code/:code", eventHandler.FindByJoinCode)
	router.GET("/events/:id/participants", participantHandler.List)
	router.GET("/events/:id/participants/:userId", participantHandler.Find)
	router.GET("/events/:id/photos", photoHandler.List)
	router.GET("/events/:id/stream", galleryHandler.Stream)
	router.GET("/photos/:id/image", photoHandler.Image)

	tokenAuthenticationRouter := router.Group("")
	tokenAuthenticationRouter.Use(authMiddleware.TokenAuthentication)

	tokenAuthenticationRouter.POST("/events", eventHandler.Create)
	tokenAuthenticationRouter.POST("/events/:id/participants", participantHandler.Join)
	tokenAuthenticationRouter.POST("/events/:id/photos", photoHandler.Upload)
	tokenAuthenticationRouter.PUT("/participants/:id/shots", participantHandler.UpdateShots)
	tokenAuthenticationRouter.POST("/participants/:id/shots/consume", participantHandler.ConsumeShot)
}
