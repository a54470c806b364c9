package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mdexhq/mdex/apps/controller/config"
	"github.com/mdexhq/mdex/apps/controller/routes"
	"github.com/mdexhq/mdex/apps/controller/services"
	"github.com/mdexhq/mdex/apps/controller/services/gate"
	"github.com/mdexhq/mdex/pkg/llm"
)

func main() {
	cfg, err := config.ValidateEnv()
	if err != nil {
		log.Fatalf("❌ %v\n", err)
	}

	cfg.Print(log.Printf)

	router := chi.NewMux()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	gateSvc := gate.New(cfg.AuthSecret, cfg.GateSecret, time.Duration(cfg.AccessTokenTTL)*time.Second)

	llmClient := llm.New(llm.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.LLMModel,
	})

	humaConfig := huma.DefaultConfig("mdex Controller", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
			Description:  "Token from /api/auth",
		},
	}

	api := humachi.New(router, humaConfig)

	svcs := &services.Container{
		Gate: gateSvc,
		LLM:  llmClient,
	}

	api.UseMiddleware(gateSvc.Middleware())
	routes.RegisterRoutes(api, svcs)

	addr := fmt.Sprintf(":%s", cfg.Port)

	log.Printf("🚀 Controller starting on %s\n", addr)
	log.Printf("📚 OpenAPI docs: http://localhost:%s/docs\n", cfg.Port)
	log.Printf("📄 OpenAPI spec: http://localhost:%s/openapi.json\n", cfg.Port)
	log.Printf("🔐 Session tokens: http://localhost:%s/api/auth\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
