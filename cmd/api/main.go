package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wzhuang/simpatient/backend/internal/config"
	"github.com/wzhuang/simpatient/backend/internal/export"
	"github.com/wzhuang/simpatient/backend/internal/handler"
	"github.com/wzhuang/simpatient/backend/internal/model/persona"
	"github.com/wzhuang/simpatient/backend/internal/service/ai"
	"github.com/wzhuang/simpatient/backend/internal/service/chat"
	"github.com/wzhuang/simpatient/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Load the instructor-authored persona roster. A missing roster is an
	// empty catalog, not a crash; a malformed roster is a config error.
	personas, err := persona.LoadCatalog(cfg.Storage.RolesFile)
	switch {
	case errors.Is(err, persona.ErrCatalogMissing):
		log.Printf("warning: %v, starting with an empty catalog", err)
	case err != nil:
		log.Fatalf("failed to load persona catalog: %v", err)
	default:
		log.Printf("loaded %d personas from %s", len(personas), cfg.Storage.RolesFile)
	}
	personaStore := persona.NewMemoryStore(personas)

	sessions, err := store.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		log.Fatalf("failed to initialize session store: %v", err)
	}

	provider := newProvider(cfg.AI)
	controller := chat.NewController(sessions, personaStore, provider)

	exporter, err := export.NewPDFExporter(sessions, cfg.Storage.ExportDir, cfg.Storage.ExportFont)
	if err != nil {
		log.Fatalf("failed to initialize transcript exporter: %v", err)
	}

	router := handler.NewRouter(personaStore, controller, exporter)

	startServer(ctx, cfg.Server, router)
}

// newProvider picks the reply backend from configuration. Model backends are
// lazy: the first chat exchange pays the acquisition cost, not startup.
func newProvider(cfg config.AIConfig) ai.Provider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch cfg.Resolve() {
	case config.ProviderArk:
		log.Println("using Ark model backend for patient replies")
		return ai.NewArkProvider(cfg.Ark, timeout)
	case config.ProviderOpenAI:
		log.Println("using OpenAI model backend for patient replies")
		return ai.NewOpenAIProvider(cfg.OpenAI, timeout)
	default:
		log.Println("模型凭证未配置，使用内建 stub 回覆")
		return ai.NewStubProvider()
	}
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("simpatient backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
