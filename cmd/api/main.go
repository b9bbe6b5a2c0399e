package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homeservice/internal/config"
	"homeservice/internal/database"
	"homeservice/internal/middleware"
	"homeservice/internal/modules/auth"
	"homeservice/internal/modules/booking"
	"homeservice/internal/modules/directory"
	"homeservice/internal/modules/rating"
	"homeservice/internal/modules/worker"
	"homeservice/internal/notification"
	jwtsvc "homeservice/internal/pkg/jwt"
	"homeservice/internal/pkg/logger"
	"homeservice/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.AppEnv)
	defer func() { _ = zlog.Sync() }()

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var notifier notification.Notifier
	if cfg.SMTPHost != "" {
		notifier = notification.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPass)
	} else {
		notifier = notification.NewLogNotifier(zlog)
	}
	dispatcher := notification.NewDispatcher(notifier, zlog)

	authHandler := auth.NewHandler(auth.NewService(userRepo, workerRepo, j))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, workerRepo, serviceRepo, userRepo, dispatcher))
	ratingHandler := rating.NewHandler(rating.NewService(ratingRepo, workerRepo))
	directoryHandler := directory.NewHandler(directory.NewService(workerRepo, serviceRepo, ratingRepo))
	workerHandler := worker.NewHandler(worker.NewService(workerRepo, serviceRepo))

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(zlog))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Authorization", "Accept", "Origin", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		directoryHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			ratingHandler.RegisterRoutes(protected)
			workerHandler.RegisterRoutes(protected)
		}
	}

	zlog.Info("server starting", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
