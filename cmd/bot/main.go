package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/lucasrm/slack-gameday-bot/internal/config"
	"github.com/lucasrm/slack-gameday-bot/internal/database"
	"github.com/lucasrm/slack-gameday-bot/internal/domain/service"
	"github.com/lucasrm/slack-gameday-bot/internal/handlers"
	"github.com/lucasrm/slack-gameday-bot/internal/sportsdata"
	"github.com/lucasrm/slack-gameday-bot/migrator/sqlite"
	"github.com/slack-go/slack"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Println("Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	dm := database.NewInstance(db)
	slackClient := slack.New(cfg.SlackBotToken)
	provider := sportsdata.New(cfg.SportsAPIBaseURL, cfg.SportsAPIKey)

	services := service.New(dm, slackClient, provider)

	services.Sweeper.Start()
	defer services.Sweeper.Stop()

	handler := handlers.New(services.Preference, services.Alert, cfg.SlackSigningSecret)

	http.HandleFunc("/slack/commands", handler.HandleSlashCommand)
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK")
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
