package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "agritrace/internal/adapters/web"
	"agritrace/internal/ai"
	"agritrace/internal/app"
	"agritrace/internal/core"
	"agritrace/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	repo, cleanup, err := newRepository(ctx)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer cleanup()

	lots, err := core.NewLotStore(ctx, repo)
	if err != nil {
		log.Fatalf("lot store: %v", err)
	}
	staging, err := core.NewStagingStore(ctx, repo)
	if err != nil {
		log.Fatalf("staging store: %v", err)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set")
	}
	agent := ai.NewAgent(apiKey)

	svc := app.NewAppService(lots, staging, agent)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// newRepository picks the snapshot backend: Postgres when DATABASE_URL is
// set, otherwise a local SQLite file (AGRITRACE_DB, default agritrace.db).
func newRepository(ctx context.Context) (core.Repository, func(), error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		repo, err := db.NewPostgresRepository(ctx, connStr)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}
	repo, err := db.NewSQLiteRepository(os.Getenv("AGRITRACE_DB"))
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { _ = repo.Close() }, nil
}
