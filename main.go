package main

import (
	"flag"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/IhorDund/Invenlytics/config"
	"github.com/IhorDund/Invenlytics/controllers"
	"github.com/IhorDund/Invenlytics/database"
	"github.com/IhorDund/Invenlytics/middleware"
	"github.com/IhorDund/Invenlytics/routes"
	"github.com/IhorDund/Invenlytics/seed"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	seedDemo := flag.Bool("seed", false, "populate the database with demo data and exit")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if *seedDemo {
		if err := seed.Generate(db, seed.DefaultOptions()); err != nil {
			log.WithError(err).Fatal("failed to seed database")
		}
		log.Info("database seeded with demo data")
		return
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.RequestLogger(log))

	routes.SetupRoutes(router, controllers.NewHandler(db))

	log.WithField("port", cfg.HTTPPort).Info("starting server")
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
