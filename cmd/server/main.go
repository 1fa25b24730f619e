package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-admin-api/internal/config"
	"github.com/iliyamo/cinema-admin-api/internal/content"
	"github.com/iliyamo/cinema-admin-api/internal/database"
	"github.com/iliyamo/cinema-admin-api/internal/handler"
	"github.com/iliyamo/cinema-admin-api/internal/middleware"
	"github.com/iliyamo/cinema-admin-api/internal/model"
	"github.com/iliyamo/cinema-admin-api/internal/queue"
	"github.com/iliyamo/cinema-admin-api/internal/repository"
	"github.com/iliyamo/cinema-admin-api/internal/router"
	"github.com/iliyamo/cinema-admin-api/internal/session"
	"github.com/iliyamo/cinema-admin-api/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("auth db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs the query cache, sessions and rate limiting.  A nil
	// client degrades each concern independently instead of refusing to
	// start.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: in-memory sessions, pass-through cache, rate limiting off")
	}

	var cacheBackend store.Backend
	if be := store.NewRedisBackend(rdb); be != nil {
		cacheBackend = be
	}
	cache := store.New(config.LoadQueryCacheConfig(), cacheBackend)

	var sessStore session.Store
	if rs := session.NewRedisStore(rdb); rs != nil {
		sessStore = rs
	} else {
		sessStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(sessStore, time.Duration(cfg.RefreshTTLDays)*24*time.Hour)

	client := content.New(cfg.Content)

	users := repository.NewUserRepo(db)
	bootstrapAdmin(users, cfg)

	authH := handler.NewAuthHandler(cfg,
		users,
		repository.NewTokenRepo(db),
		sessions,
	)
	adminH := handler.NewAdminHandler(
		repository.NewCinemaRepo(client, cache),
		repository.NewEventRepo(client, cache),
		repository.NewCustomerRepo(client, cache),
		repository.NewReviewRepo(client, cache),
		client,
	)

	// Audit trail consumer; reconnects on its own.
	go func() {
		if err := queue.StartMutationConsumer(); err != nil {
			log.Printf("mutation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, sessions)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret, sessions)
	router.RegisterPages(e, sessions)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// bootstrapAdmin seeds the initial admin account when ADMIN_EMAIL and
// ADMIN_PASSWORD are set.  An already-registered email is left alone, so
// the seed is safe to run on every start.
func bootstrapAdmin(users *repository.UserRepo, cfg config.Config) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := users.Create(ctx, email, password, model.RoleAdmin, cfg.BcryptCost)
	if err != nil && !errors.Is(err, repository.ErrEmailExists) {
		log.Printf("admin bootstrap failed: %v", err)
		return
	}
	if err == nil {
		log.Printf("admin account %s created", email)
	}
}
