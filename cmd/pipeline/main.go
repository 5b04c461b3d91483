package main

import (
	"MedWarehouse/internal/api/config"
	"MedWarehouse/internal/pipeline"
	"MedWarehouse/internal/pkg/database"
	"MedWarehouse/internal/pkg/logger"
	"MedWarehouse/internal/pkg/redis"
	"MedWarehouse/internal/wire"
	"context"
	"flag"
	log "log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	var (
		stage   = flag.String("stage", "all", "stage to run: scrape, load, transform, enrich, validate, all")
		dateStr = flag.String("date", "", "partition date (YYYY-MM-DD), defaults to today")
	)
	flag.Parse()

	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	logger.InitLogger()

	date := time.Now().UTC()
	if *dateStr != "" {
		parsed, err := time.Parse(time.DateOnly, *dateStr)
		if err != nil {
			log.Error("invalid -date value", "value", *dateStr, "err", err)
			os.Exit(2)
		}
		date = parsed
	}

	opts := pipeline.All(date)
	switch *stage {
	case "all":
	case "scrape":
		opts = pipeline.Options{Scrape: true, Date: date}
	case "load":
		opts = pipeline.Options{Load: true, Date: date}
	case "transform":
		opts = pipeline.Options{Transform: true, Date: date}
	case "enrich":
		opts = pipeline.Options{Enrich: true, Date: date}
	case "validate":
		opts = pipeline.Options{Validate: true, Date: date}
	default:
		log.Error("unknown -stage value", "value", *stage)
		os.Exit(2)
	}

	dbCfg := config.Cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}
	if err = redis.InitRedis(config.Cfg.Redis); err != nil {
		// 流水线锁退化为不加锁
		log.Warn("redis unavailable, pipeline runs without a run lock", "err", err)
	}

	pipe, err := wire.BuildPipeline(db)
	if err != nil {
		log.Error("Fatal error: failed to build pipeline", "err", err)
		panic(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	summary := pipe.Run(ctx, opts)
	for _, st := range summary.Stages {
		log.Info("stage result", "stage", st.Name, "status", st.Status, "duration", st.Duration, "detail", st.Detail)
	}
	if !summary.Succeeded {
		os.Exit(1)
	}
}
