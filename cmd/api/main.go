package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moizrehman/portfolio-api/internal/config"
	"github.com/moizrehman/portfolio-api/internal/logging"
	"github.com/moizrehman/portfolio-api/internal/repository/memory"
	"github.com/moizrehman/portfolio-api/internal/repository/ports"
	"github.com/moizrehman/portfolio-api/internal/repository/postgres"
	"github.com/moizrehman/portfolio-api/internal/service"
	transport "github.com/moizrehman/portfolio-api/internal/transport/http"
	"github.com/moizrehman/portfolio-api/internal/transport/mail"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	var store ports.OTPRepository
	if cfg.DatabaseURL != "" {
		db, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connect to database: %v", err)
		}
		defer db.Close()
		store = postgres.NewOTPRepo(db)
	} else {
		log.Println("DATABASE_URL not set, using the in-memory OTP store (codes do not survive restarts)")
		store = memory.NewOTPRepo()
	}

	var mailer mail.Mailer
	switch cfg.MailProvider {
	case "smtp":
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	default:
		mailer = mail.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	}

	otps := service.NewOTPService(store, mailer, service.OTPServiceConfig{
		OwnerName: cfg.OwnerName,
		TTL:       cfg.OTPTTL,
		Cooldown:  cfg.OTPCooldown,
	})
	contact := service.NewContactService(mailer, service.ContactServiceConfig{
		OwnerEmail: cfg.OwnerEmail,
		OwnerName:  cfg.OwnerName,
	})

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterOTP(e, otps)
	transport.RegisterContact(e, contact)
	transport.RegisterSwagger(e)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, draining in-flight requests")

	// An in-flight contact relay is two sequential mail sends; give
	// outstanding requests a deadline to finish instead of killing them.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server exited gracefully")
}
