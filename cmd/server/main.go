package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/time/rate"

	"github.com/quickpoll/api/internal/adapters/broadcast"
	"github.com/quickpoll/api/internal/adapters/handler/http"
	"github.com/quickpoll/api/internal/adapters/repository/postgres"
	"github.com/quickpoll/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to reach database: %v", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("Warning: JWT_SECRET not set")
	}

	hub := broadcast.NewHub()

	userRepo := postgres.NewUserRepository(db)
	pollRepo := postgres.NewPollRepository(db)
	optionRepo := postgres.NewOptionRepository(db)
	voteRepo := postgres.NewVoteRepository(db)
	likeRepo := postgres.NewLikeRepository(db)

	credSvc := services.NewCredentialService(userRepo, []byte(secret), tokenTTL())
	pollSvc := services.NewPollService(pollRepo, optionRepo, hub)
	voteSvc := services.NewVoteService(pollRepo, optionRepo, voteRepo, hub)
	likeSvc := services.NewLikeService(pollRepo, likeRepo, hub)

	handler := http.NewHandler(
		http.NewUserHandler(credSvc),
		http.NewPollHandler(pollSvc),
		http.NewVoteHandler(voteSvc),
		http.NewLikeHandler(likeSvc),
		http.NewWSHandler(hub),
		http.NewAuthMiddleware(credSvc),
		http.NewRateLimiter(rate.Every(time.Second), 10),
	)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func tokenTTL() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("TOKEN_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 3000
	}
	return time.Duration(minutes) * time.Minute
}

func dbConnString() string {
	dbName, user, password, host, port := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func dbConfig() (dbName string, user string, password string, host string, port string) {
	dbName = os.Getenv("POSTGRES_DB")
	user = os.Getenv("POSTGRES_USER")
	password = os.Getenv("POSTGRES_PASSWORD")
	host = os.Getenv("POSTGRES_HOST")
	port = os.Getenv("POSTGRES_PORT")
	return
}
