package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/config"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/logging"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/repository/postgres"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/repository/redisrate"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/service"
	httptransport "github.com/herbandveda/Herb_and_Veda_BackEnd/internal/transport/http"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/transport/mail"
	"github.com/herbandveda/Herb_and_Veda_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	users := postgres.NewUserRepo(db)
	otps := postgres.NewOTPRepo(db)
	resets := postgres.NewResetTokenRepo(db)
	orders := postgres.NewOrderRepo(db)
	contacts := postgres.NewContactRepo(db)

	var otpLimiter service.RateLimiter = service.NopLimiter{}
	var resetLimiter service.RateLimiter = service.NopLimiter{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		otpLimiter = redisrate.New(client, "otp", cfg.OTPRequestsPerHour, time.Hour)
		resetLimiter = redisrate.New(client, "reset", cfg.ResetRequestsPerHour, time.Hour)
	}

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.FrontendBaseURL, cfg.ContactInbox)

	authService := service.NewAuthService(users, resets, jwtManager, mailer, resetLimiter, cfg.ResetTokenTTL)
	otpService := service.NewOTPService(otps, users, jwtManager, mailer, otpLimiter, cfg.OTPTTL, cfg.OTPLength, cfg.OTPMaxAttempts)
	orderService := service.NewOrderService(orders)
	contactService := service.NewContactService(contacts, mailer)

	e := httptransport.NewRouter(cfg.AllowOrigins)
	httptransport.RegisterAuth(e, authService)
	httptransport.RegisterOTP(e, otpService)
	httptransport.RegisterOrders(e, authService, orderService)
	httptransport.RegisterContact(e, contactService)
	httptransport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
