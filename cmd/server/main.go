package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/nvast/TODO-list/internal/auth"
	"github.com/nvast/TODO-list/internal/config"
	"github.com/nvast/TODO-list/internal/mail"
	"github.com/nvast/TODO-list/internal/middleware"
	"github.com/nvast/TODO-list/internal/store"
	"github.com/nvast/TODO-list/internal/todo"
	"github.com/nvast/TODO-list/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		log.Fatalf("postgres migrate: %v", err)
	}

	// ── Redis sessions ───────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()
	sessions := auth.NewRedisSessionStore(rdb)

	// ── Pages, flash, mail ───────────────────────────────────
	flash := web.NewFlash(cfg.SecretKey)
	pages, err := web.NewRenderer(flash)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	mailer := mail.NewSMTPMailer(&cfg.Email)

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(pgStore, sessions, mailer, pages, flash)
	todoHandler := todo.NewHandler(pgStore, pages)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Static pages
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		pages.Render(w, r, "index.html", nil)
	})
	r.Get("/list", func(w http.ResponseWriter, r *http.Request) {
		pages.Render(w, r, "list.html", nil)
	})

	// Auth routes (public)
	r.Get("/login", authHandler.LoginForm)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterForm)
	r.Post("/register", authHandler.Register)
	r.Get("/logout", authHandler.Logout)
	r.Get("/retrive", authHandler.RetrieveForm)
	r.Post("/retrive", authHandler.Retrieve)

	// To-do list (session required)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessions))
		r.Get("/todo", todoHandler.List)
		r.Post("/todo", todoHandler.Create)
	})

	// Delete is routed without the auth guard, matching the original app.
	r.Get("/delete/{id}", todoHandler.Delete)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
