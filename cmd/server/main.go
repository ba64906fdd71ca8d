package main

import (
	"log"

	"github.com/sylar-lab/sharks-backend-go/internal/api"
	"github.com/sylar-lab/sharks-backend-go/internal/config"
	"github.com/sylar-lab/sharks-backend-go/internal/database"
	"github.com/sylar-lab/sharks-backend-go/internal/dataset"
	"github.com/sylar-lab/sharks-backend-go/internal/models"
	"github.com/sylar-lab/sharks-backend-go/internal/overlay"
	"github.com/sylar-lab/sharks-backend-go/internal/predict"
	"github.com/sylar-lab/sharks-backend-go/internal/productivity"
	"github.com/sylar-lab/sharks-backend-go/internal/service"
	"github.com/sylar-lab/sharks-backend-go/internal/session"
)

func main() {
	cfg := config.Load()

	var source dataset.Source
	switch cfg.DatasetSource {
	case "sqlite":
		db, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			log.Fatal("Failed to open observation database: ", err)
		}
		defer db.Close()
		source = dataset.NewSQLiteSource(db, cfg.DatasetTable)
	case "csv":
		source = dataset.NewCSVSource(cfg.DatasetPath)
	default:
		log.Fatalf("Unknown DATASET_SOURCE %q (want csv or sqlite)", cfg.DatasetSource)
	}

	invoker := predict.NewInvoker(predict.FileLoader{Path: cfg.ModelPath})
	controller := overlay.NewController(
		models.TrainingBounds(),
		invoker,
		source,
		productivity.NewSimulator(productivity.DefaultPointCount),
	)

	manager := session.NewManager(cfg.SessionTTL)
	mapService := service.NewMapService(controller)

	router := api.SetupRouter(cfg, manager, mapService)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
