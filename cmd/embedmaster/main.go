package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/intrntsrfr/embedmaster/bot"
	"github.com/intrntsrfr/embedmaster/database"
	"github.com/intrntsrfr/embedmaster/owo"

	_ "github.com/lib/pq"
)

type config struct {
	Token          string `json:"token"`
	Nickname       string `json:"nickname"`
	PermissionRole string `json:"permission_role"`
	OwnerID        string `json:"owner_id"`
	OwoAPIKey      string `json:"owo_api_key"`

	// Store selects the guild-config backend: json (default), badger or
	// postgres.
	Store            string `json:"store"`
	StorePath        string `json:"store_path"`
	ConnectionString string `json:"connection_string"`
}

func main() {
	d, err := os.ReadFile("./config.json")
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg config
	if err := json.Unmarshal(d, &cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	if cfg.Nickname == "" {
		cfg.Nickname = "EmbedMaster"
	}

	z, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}

	db, err := newDB(&cfg, z.Named("database"))
	if err != nil {
		z.Fatal("failed to open store", zap.Error(err))
	}
	defer db.Close()

	var owoClient *owo.Client
	if cfg.OwoAPIKey != "" {
		owoClient = owo.NewClient(cfg.OwoAPIKey)
	}

	b, err := bot.NewBot(&bot.Config{
		Log:            z.Named("bot"),
		DB:             db,
		Owo:            owoClient,
		Token:          cfg.Token,
		Nickname:       cfg.Nickname,
		PermissionRole: cfg.PermissionRole,
		OwnerID:        cfg.OwnerID,
	})
	if err != nil {
		z.Fatal("failed to create bot", zap.Error(err))
	}

	if err := b.Run(); err != nil {
		z.Fatal("failed to run bot", zap.Error(err))
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	// announce to all guilds, then release the gateway
	b.Shutdown()
}

func newDB(cfg *config, log *zap.Logger) (database.DB, error) {
	switch cfg.Store {
	case "badger":
		path := cfg.StorePath
		if path == "" {
			path = "./data"
		}
		return database.NewKVStore(path, log)
	case "postgres":
		return database.NewPSQLDatabase(cfg.ConnectionString, log)
	default:
		path := cfg.StorePath
		if path == "" {
			path = "./log_channels.json"
		}
		return database.NewJsonDatabase(path, log), nil
	}
}
