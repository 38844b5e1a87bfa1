package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zmx4/aelp/internal/config"
	"github.com/zmx4/aelp/internal/database"
	"github.com/zmx4/aelp/internal/database/favorites"
	"github.com/zmx4/aelp/internal/database/mistakes"
	"github.com/zmx4/aelp/internal/database/records"
	"github.com/zmx4/aelp/internal/database/words"
	"github.com/zmx4/aelp/internal/dictionary"
	http_controllers "github.com/zmx4/aelp/internal/http"
	"github.com/zmx4/aelp/internal/refdict"
	"github.com/zmx4/aelp/internal/scheduler"
	"github.com/zmx4/aelp/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting aelp v%s", version)

	// Initialize user database
	db, err := database.NewDatabase(cfg.Database.UserPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Open the reference dictionary store
	var refStore *refdict.Store
	if _, err := os.Stat(cfg.Database.DictionaryPath); err == nil {
		refStore, err = refdict.Open(cfg.Database.DictionaryPath)
		if err != nil {
			log.Fatalf("Failed to open reference dictionary: %v", err)
		}
		defer func() {
			if err := refStore.Close(); err != nil {
				log.Printf("Error closing reference dictionary: %v", err)
			}
		}()
	} else {
		log.Printf("WARNING: reference dictionary not found at %s. Lookups and tests will be unavailable. Run 'import-wordlist' to build it.", cfg.Database.DictionaryPath)
	}

	// Translation fallback chain: reference store first, then the
	// online dictionary when enabled.
	var translationSources []dictionary.Client
	if refStore != nil {
		translationSources = append(translationSources, dictionary.NewReferenceClient(refStore))
	}
	if cfg.Dictionary.OnlineFallback {
		translationSources = append(translationSources, dictionary.NewFreeDictionaryClient())
	}
	translations := dictionary.NewFallback(translationSources...)

	// Build repositories
	favoritesRepo := favorites.NewRepository(db.DB)
	mistakesRepo := mistakes.NewRepository(db.DB, translations)
	recordsRepo := records.NewRepository(db.DB)
	wordsRepo := words.NewRepository(db.DB)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		taskClient, err = tasks.NewClient(cfg.Database.UserPath, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewEnrichTranslationsQueue(wordsRepo, translationSources...),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		// A favorites change can create word rows without a translation;
		// queue an enrichment run to fill them in.
		unsubscribe := favoritesRepo.OnChange(func() {
			if _, err := taskClient.Add(tasks.EnrichTranslationsTask{}).Save(); err != nil {
				log.Printf("Failed to queue translation enrichment: %v", err)
			}
		})
		defer unsubscribe()
	}

	// Start the user-database backup scheduler if enabled
	var backupScheduler *scheduler.BackupScheduler
	if cfg.Backup.Enabled {
		backupScheduler = scheduler.NewBackupScheduler(cfg.Database.UserPath, scheduler.BackupConfig{
			Enabled:  cfg.Backup.Enabled,
			Schedule: cfg.Backup.Schedule,
			Dir:      cfg.Backup.Dir,
			Keep:     cfg.Backup.Keep,
		})
		if err := backupScheduler.Start(); err != nil {
			log.Fatalf("Failed to start backup scheduler: %v", err)
		}
	}

	// Build router configuration with all dependencies
	routerCfg := http_controllers.RouterConfig{
		Database:  db,
		Favorites: favoritesRepo,
		Mistakes:  mistakesRepo,
		Records:   recordsRepo,
		Version:   version,
	}
	if refStore != nil {
		routerCfg.Dictionary = refStore
		routerCfg.WordSource = refStore
		routerCfg.ResultStore = recordsRepo
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if backupScheduler != nil {
			backupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
