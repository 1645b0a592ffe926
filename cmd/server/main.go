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
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/peerfund/server/internal/auth"
	"github.com/peerfund/server/internal/config"
	"github.com/peerfund/server/internal/fundraise"
	"github.com/peerfund/server/internal/loan"
	"github.com/peerfund/server/internal/middleware"
	"github.com/peerfund/server/internal/store"
	"github.com/peerfund/server/internal/upload"
	"github.com/peerfund/server/internal/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("mongo ping: %v", err)
	}
	db := client.Database(cfg.MongoDB)

	userStore := store.NewUserStore(db)
	extraStore := store.NewExtraInfoStore(db)
	fundraiseStore := store.NewFundraiseStore(db)
	loanStore := store.NewLoanStore(db)

	// ── Upload directory ─────────────────────────────────────
	fileStore, err := store.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(cfg.TokenSecret)
	userHandler := user.NewHandler(userStore, extraStore)
	fundraiseHandler := fundraise.NewHandler(fundraiseStore)
	loanHandler := loan.NewHandler(loanStore)
	uploadHandler := upload.NewHandler(fileStore)

	requireAuth := middleware.RequireAuth(cfg.TokenSecret)
	requireAdmin := middleware.RequireAdmin(userStore)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from Peer fund Server!"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/jwt", authHandler.IssueToken)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)
		r.With(requireAuth, requireAdmin).Get("/", userHandler.List)
		r.With(requireAuth).Get("/{email}", userHandler.GetByEmail)
		r.With(requireAuth).Patch("/{email}", userHandler.UpdateProfile)
		r.With(requireAuth, requireAdmin).Delete("/{id}", userHandler.Delete)
		r.With(requireAuth).Get("/admin/{email}", userHandler.IsAdmin)
		r.With(requireAuth, requireAdmin).Patch("/admin/{id}", userHandler.PromoteAdmin)
	})

	r.Route("/userExtraInfo", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/{id}", userHandler.GetExtraInfo)
		r.Post("/{id}", userHandler.UpsertExtraInfo)
	})

	r.With(requireAuth).Post("/upload-profile-image", uploadHandler.ProfileImage)
	r.With(requireAuth).Get("/user-image/{email}", userHandler.GetImage)
	r.With(requireAuth).Delete("/user-image/{email}", userHandler.DeleteImage)

	r.Post("/fundraise", fundraiseHandler.Create)
	r.Get("/fundraise", fundraiseHandler.List)
	r.Post("/loans", loanHandler.Create)

	// Uploaded images are exposed read-only under a fixed prefix.
	r.Handle(upload.PublicPrefix+"*", http.StripPrefix(upload.PublicPrefix,
		http.FileServer(http.Dir(fileStore.Dir()))))

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
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
