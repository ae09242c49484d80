package main

import (
	"context"
	"log"
	"os"

	"helpdesk/api"
	"helpdesk/auth"
	"helpdesk/classify"
	"helpdesk/db"
	"helpdesk/issue"
)

func main() {
	ctx := context.Background()

	connString := os.Getenv("DATABASE_URL")
	pool, err := db.NewPool(ctx, connString)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	addr := os.Getenv("HELPDESK_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	authSvc := auth.NewService(auth.NewRepository(pool), secret)
	issueSvc := issue.NewService(issue.NewRepository(pool), classify.New())

	e := api.New(authSvc, issueSvc, api.Config{AllowOrigin: origin})
	log.Fatal(e.Start(addr))
}
