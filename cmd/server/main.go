package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskpipe/taskpipe/internal/app"
	"github.com/taskpipe/taskpipe/internal/server"
	"github.com/taskpipe/taskpipe/internal/store/postgres"
)

// main is the entrypoint for the taskpipe HTTP server. Pipelines and run
// reports are persisted in PostgreSQL; the connection string comes from the
// DATABASE_URL environment variable.
func main() {
	addr := flag.String("addr", ":3000", "Address for the HTTP server to listen on.")
	flag.Parse()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	st := postgres.New(pool)
	srv := server.New(st, app.DefaultRegistry())

	log.Fatal(srv.Listen(*addr))
}
