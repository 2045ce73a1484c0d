// Command play fetches or synthesizes a frame's audio and plays it on the
// local audio device. Useful for auditioning voices against a running
// server's database and audio directory.
package main

import (
	"context"
	"flag"
	"log"
	"net/url"
	"time"

	"github.com/inkvoice/inkvoice/config"
	"github.com/inkvoice/inkvoice/internal/database"
	"github.com/inkvoice/inkvoice/internal/models"
	"github.com/inkvoice/inkvoice/internal/playback"
	"github.com/inkvoice/inkvoice/internal/services"
	"github.com/inkvoice/inkvoice/internal/storage"
	"github.com/inkvoice/inkvoice/internal/tts"
)

func main() {
	frameID := flag.String("frame", "", "frame id to play")
	voice := flag.String("voice", "", "voice handle (defaults to the configured voice)")
	speed := flag.Float64("speed", 0, "playback speed (0 uses the default)")
	base := flag.String("base", "http://localhost:8080", "server base URL for relative audio paths")
	flag.Parse()

	if *frameID == "" {
		log.Fatal("usage: play -frame <id> [-voice nova] [-speed 1.0]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %s", err)
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	synth, err := tts.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize TTS: %v", err)
	}

	signer := storage.NewSigner(cfg.Storage.SigningSecret, time.Duration(cfg.Storage.SignedURLTTL)*time.Second)
	assetStore := storage.NewStore(db, cfg.Storage.Dir, cfg.Storage.BaseURL, signer)
	speechService := services.NewSpeechService(synth, assetStore, nil)
	frameService := services.NewFrameService(db, speechService)

	baseURL, err := url.Parse(*base)
	if err != nil {
		log.Fatalf("Invalid base URL: %v", err)
	}

	platform := &resolvingPlatform{base: baseURL, inner: playback.NewOtoPlatform()}
	controller := playback.NewController(platform, &frameGenerator{
		frames: frameService,
		voice:  *voice,
		speed:  *speed,
	})

	ctx := context.Background()
	frame, err := frameService.GetFrame(*frameID)
	if err != nil {
		log.Fatalf("Failed to load frame: %v", err)
	}

	if err := controller.Play(ctx, frame); err != nil {
		log.Fatalf("Playback failed: %v", err)
	}
	log.Printf("Playing frame %s (%s)", frame.ID, frame.AudioURL)
	controller.Wait(ctx)
}

// frameGenerator adapts the frame audio cache to the playback generator,
// carrying the CLI's voice and speed choices.
type frameGenerator struct {
	frames *services.FrameService
	voice  string
	speed  float64
}

func (g *frameGenerator) GenerateAudioURL(ctx context.Context, frame *models.Frame) (string, error) {
	audioURL, _, err := g.frames.EnsureAudio(ctx, frame.ID, g.voice, g.speed)
	return audioURL, err
}

// resolvingPlatform turns stored relative audio paths into absolute URLs
// before handing them to the audio device.
type resolvingPlatform struct {
	base  *url.URL
	inner playback.AudioPlatform
}

func (p *resolvingPlatform) Start(ctx context.Context, audioURL string) (playback.AudioSession, error) {
	parsed, err := url.Parse(audioURL)
	if err != nil {
		return nil, err
	}
	return p.inner.Start(ctx, p.base.ResolveReference(parsed).String())
}
