package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"google.golang.org/api/option"

	"github.com/inkvoice/inkvoice/config"
	"github.com/inkvoice/inkvoice/internal/api"
	"github.com/inkvoice/inkvoice/internal/auth"
	"github.com/inkvoice/inkvoice/internal/catalog"
	"github.com/inkvoice/inkvoice/internal/database"
	"github.com/inkvoice/inkvoice/internal/services"
	"github.com/inkvoice/inkvoice/internal/storage"
	"github.com/inkvoice/inkvoice/internal/tts"
	"github.com/inkvoice/inkvoice/internal/voices"
	"github.com/inkvoice/inkvoice/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %s", err)
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	userService := services.NewUserService(db)
	auth.Init(cfg.Auth.SessionSecret, userService)

	synth, err := tts.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize TTS: %v", err)
	}

	signer := storage.NewSigner(cfg.Storage.SigningSecret, time.Duration(cfg.Storage.SignedURLTTL)*time.Second)
	assetStore := storage.NewStore(db, cfg.Storage.Dir, cfg.Storage.BaseURL, signer)
	profileStore := voices.NewStore(db)

	listers := []catalog.Lister{
		catalog.NewOpenAILister(),
		catalog.NewElevenLabsLister(cfg.ElevenLabs.APIKey, cfg.ElevenLabs.BaseURL),
	}
	if cfg.Google.CredentialsFile != "" {
		gclient, err := texttospeech.NewClient(context.Background(),
			option.WithCredentialsFile(cfg.Google.CredentialsFile))
		if err != nil {
			log.Fatalf("Failed to initialize Google TTS client: %v", err)
		}
		defer gclient.Close()
		listers = append(listers, catalog.NewGoogleLister(gclient, cfg.Google.LanguageCode))
	}
	voiceCatalog := catalog.New(listers...)

	r := mux.NewRouter()

	// Public routes (no authentication required)
	publicRouter := r.PathPrefix("/").Subrouter()
	publicRouter.HandleFunc("/register", auth.RegisterHandler).Methods("POST")
	publicRouter.HandleFunc("/login", auth.LoginHandler).Methods("POST")
	publicRouter.HandleFunc("/logout", auth.LogoutHandler).Methods("POST")
	publicRouter.PathPrefix(storage.PublicPathPrefix).Handler(
		storage.FileHandler(signer, cfg.Storage.Dir))

	// Authenticated routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(auth.AuthMiddleware)

	hub := websocket.RegisterRoutes(authRouter)

	speechService := services.NewSpeechService(synth, assetStore, hub)
	frameService := services.NewFrameService(db, speechService)
	profileService := services.NewProfileService(profileStore, speechService, cfg.Tts.Provider, cfg.OpenAI.Voice)

	apiRouter := authRouter.PathPrefix("/api/v1").Subrouter()
	handler := api.NewHandler(profileStore, profileService, speechService, frameService, voiceCatalog,
		time.Duration(cfg.Server.RequestTimeout)*time.Second)
	handler.RegisterRoutes(apiRouter)

	// CORS setup for development
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Server.Port
	}

	log.Printf("inkvoice server starting on port %s", port)
	log.Printf("Database: %s", cfg.Database.Path)
	log.Printf("TTS backend: %s", synth.Name())

	if err := http.ListenAndServe(":"+port, c.Handler(r)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
