package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/swaggo/swag" // swag

	"ahp_profiler/config"
	_ "ahp_profiler/docs" // swagger docs
	"ahp_profiler/handlers"
	"ahp_profiler/logger"
	"ahp_profiler/repository"
	"ahp_profiler/scheduler"
	"ahp_profiler/services"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	logger.Info("logging initialized", "level", cfg.Log.Level, "format", cfg.Log.Format, "output", cfg.Log.Output)

	// Build the knowledge base once at startup; it is shared read-mostly
	// state for the process lifetime. A missing rule file degrades to an
	// empty index, it never aborts startup.
	repo := repository.NewKnowledgeRepository(cfg)
	kb := services.NewKnowledgeBase(repo)
	kb.Load()

	parser := services.NewTranscriptParser(kb, services.NewPDFTextSource())
	ahp := services.NewAHPService(kb)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handlers.RegisterRoutes(r, cfg, kb, parser, ahp)

	// Periodic rule file reload, if enabled.
	scheduler.Start(cfg, kb)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", serverAddr)
	logger.Info("swagger docs available", "url", fmt.Sprintf("http://%s/swagger/index.html", serverAddr))
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port), r))
}
