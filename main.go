package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/pavelchamgl/booking/config"
	"github.com/pavelchamgl/booking/internal/consumer"
	"github.com/pavelchamgl/booking/internal/handler"
	"github.com/pavelchamgl/booking/internal/middleware"
	"github.com/pavelchamgl/booking/internal/repository"
	"github.com/pavelchamgl/booking/internal/service"
	"github.com/pavelchamgl/booking/pkg/database"
	"github.com/pavelchamgl/booking/pkg/mailer"
	"github.com/pavelchamgl/booking/pkg/media"
	"github.com/pavelchamgl/booking/pkg/rabbitmq"
	"github.com/pavelchamgl/booking/pkg/token"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	redisClient := token.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	issuer := token.NewIssuer(token.Config{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.JWTAccessTTL,
		RefreshTTL:    cfg.JWTRefreshTTL,
	}, token.NewRedisBlocklist(redisClient))

	// RabbitMQ: OTP emails are published here and sent by the consumer below.
	broker, err := rabbitmq.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer broker.Close()

	msgs, err := broker.Consume(rabbitmq.NotificationQueue, rabbitmq.NotificationBinding, 10)
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	smtpMailer := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	})
	consumer.NewNotificationConsumer(smtpMailer).Start(msgs)

	var uploader service.ImageUploader
	if cfg.CloudinaryURL != "" {
		cld, err := media.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatalf("failed to configure Cloudinary: %v", err)
		}
		uploader = cld
	} else {
		log.Println("[Config] CLOUDINARY_URL not set, image uploads disabled")
	}

	// Repositories
	listingRepo := repository.NewListingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// Services
	listingSvc := service.NewListingService(listingRepo, favoriteRepo, uploader)
	bookingSvc := service.NewBookingService(bookingRepo, listingRepo)
	otpSvc := service.NewOTPService(userRepo, otpRepo, broker, cfg.OTPLifetime)
	accountSvc := service.NewAccountService(userRepo, otpSvc, issuer)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, listingRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "neobooking"})
	})

	auth := middleware.JWTAuth(issuer)
	optionalAuth := middleware.OptionalJWTAuth(issuer)

	api := e.Group("/neobooking")
	handler.NewListingHandler(listingSvc).RegisterRoutes(api.Group("/accommodations"), auth, optionalAuth)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api.Group("/bookings"), auth)
	handler.NewAccountHandler(accountSvc).RegisterRoutes(api.Group("/accounts"), auth)
	handler.NewFeedbackHandler(feedbackSvc).RegisterRoutes(api.Group("/feedbacks"), auth)

	log.Printf("NeoBooking starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
