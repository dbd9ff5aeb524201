package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"socialblog/common"
	"socialblog/config"
	"socialblog/database"
	"socialblog/server"
)

func main() {
	debug := flag.Bool("debug", false, "run the development server in debug mode")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	if *debug {
		cfg.Debug = true
	}

	logger := common.NewLogger(os.Stdout, cfg.Debug)

	db, err := common.ConnectDb(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	app := server.NewApp(cfg, db, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", "port", cfg.Port, "debug", cfg.Debug, "auth_mode", cfg.AuthMode, "posts_source", cfg.PostsSource)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
