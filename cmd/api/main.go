package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/agendalivre/agenda-api/internal/config"
	dbpkg "github.com/agendalivre/agenda-api/internal/db"
	infraRepo "github.com/agendalivre/agenda-api/internal/infra/repository"
	"github.com/agendalivre/agenda-api/internal/notification"
	"github.com/agendalivre/agenda-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.New(cfg.DBUrl)

	repo := infraRepo.NewBookingGormRepository(db)

	var sender notification.Sender
	if cfg.WhatsAppWebhookURL != "" {
		sender = notification.NewWebhookSender(cfg.WhatsAppWebhookURL)
	} else {
		log.Println("WHATSAPP_WEBHOOK_URL not set, notifications disabled")
	}

	notifier := notification.NewDispatcher(repo, sender, cfg.DefaultCountryCode)

	if sender != nil {
		reminder := notification.NewReminderWorker(repo, notifier, cfg.ReminderInterval, cfg.Timezone)
		go reminder.Run(context.Background())
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, repo, notifier)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
