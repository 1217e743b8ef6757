// Package classification SnapParty Service.
//
// Disposable-camera photo sharing for events
//
//	Version: 0.1.0
//
//	Consumes:
//	  - application/json
//	  - multipart/form-data
//
//	Produces:
//	  - application/json
//
//	SecurityDefinitions:
//	  deviceSession:
//	    type: apiKey
//	    name: Authorization
//	    in: header
//
// swagger:meta
package main

import (
	"context"
	stdlog "log"
	"log/slog"
	"os"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/snap-party/snapparty/internal/handler"
	"github.com/snap-party/snapparty/internal/log"
	"github.com/snap-party/snapparty/internal/server"
	"github.com/snap-party/snapparty/pkg/config"
	"github.com/snap-party/snapparty/pkg/device"
	"github.com/snap-party/snapparty/pkg/event"
	"github.com/snap-party/snapparty/pkg/gallery"
	"github.com/snap-party/snapparty/pkg/participant"
	"github.com/snap-party/snapparty/pkg/photo"
	"github.com/snap-party/snapparty/pkg/storage"
	"github.com/snap-party/snapparty/pkg/token"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	logger := slog.New(log.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	cfg := config.New()

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	db, err := storage.NewDatabase(cfg.Postgresql)
	if err != nil {
		return err
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(), awsConfig.WithRegion(cfg.S3.Region))
	if err != nil {
		return err
	}
	s3AWSClient := s3.NewFromConfig(awsCfg)
	s3Client := storage.NewS3Client(logger, s3AWSClient, manager.NewUploader(s3AWSClient))

	tokenService := token.NewService(logger, cfg.Session.SecretKey, cfg.Session.ExpirationSeconds)
	authMiddleware := handler.NewAuthentication(tokenService)
	deviceHandler := device.NewHandler(tokenService)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository)
	eventHandler := event.NewHandler(eventService)

	participantRepository := participant.NewRepository(db)
	participantService := participant.NewService(logger, eventService, participantRepository)
	participantHandler := participant.NewHandler(participantService)

	broker := gallery.NewBroker()
	galleryHandler := gallery.NewHandler(broker)

	photoRepository := photo.NewRepository(db)
	photoService := photo.NewService(logger, cfg.S3.Bucket, s3Client, eventService, photoRepository, broker)
	photoHandler := photo.NewHandler(photoService)

	engine := server.GetEngine(logger, cfg.BasePath)
	server.MountRoutes(engine, cfg.BasePath, deviceHandler, eventHandler, participantHandler, photoHandler, galleryHandler, authMiddleware)

	return engine.Run()
}
