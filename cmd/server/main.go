package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"

	_ "reel-processor/docs"

	"reel-processor/internal/delivery/http/handlers"
	"reel-processor/internal/delivery/http/routers"
	"reel-processor/internal/domain/repositories"
	"reel-processor/internal/infrastructure/processor"
	"reel-processor/internal/infrastructure/queue"
	"reel-processor/internal/infrastructure/storage"
	"reel-processor/internal/pkg/config"
	"reel-processor/internal/pkg/logger"
	"reel-processor/internal/usecases"
	"reel-processor/pkg/errors"
	"reel-processor/pkg/errors/i18n"
)

// @title        Reel Processor API
// @version      2.1.0
// @description  Turns an uploaded clip into a 1080x1920 reel with replaced audio and burned-in text.
// @BasePath     /
func main() {
	cfg, err := config.LoadConfig(".env", "../../.env")
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}

	if err := i18n.Load(cfg.Locale); err != nil {
		log.WithError(err).Warnf("locale %q not available, using en", cfg.Locale)
	}

	if err := cfg.EnsureDirs(); err != nil {
		log.WithError(err).Fatal("scratch directories could not be created")
	}

	// Repositories & Services
	scratch := storage.NewLocalStorage(cfg.Scratch.UploadsDir, cfg.Scratch.OutputsDir, log)
	runner := processor.NewFFmpegRunner(cfg.Media.Timeout, log)
	pool := queue.NewWorkerPool(cfg.Media.Workers, runner, log)

	var prober repositories.Prober
	if cfg.Media.ProbeEnabled {
		prober = processor.NewFFprobe(cfg.Media.FFprobePath, cfg.Media.ProbeTimeout)
	}

	reelService := usecases.NewReelService(
		scratch,
		processor.NewFFmpegBuilder(cfg.Media),
		pool,
		prober,
		cfg.Media,
		log,
	)

	cleanupService := usecases.NewCleanupService(scratch, log)
	sweeper, err := usecases.StartSweeper(cleanupService, cfg.Scratch.SweepSchedule, cfg.Scratch.MaxAge, log)
	if err != nil {
		log.WithError(err).Fatal("scratch sweeper could not be scheduled")
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          errors.FiberErrorHandler(log),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		Output: log.Writer(),
	}))
	app.Use(cors.New())

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Routes
	routers.SetupReelRoutes(app, handlers.NewReelHandler(reelService, log))

	addr := cfg.Addr()
	log.WithFields(logrus.Fields{
		"addr":    addr,
		"workers": cfg.Media.Workers,
		"timeout": cfg.Media.Timeout.String(),
	}).Info("server starting")

	// Graceful shutdown
	go func() {
		if err := app.Listen(addr); err != nil {
			log.WithError(err).Fatal("server could not start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")

	ctxShut, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		log.WithError(err).Error("server did not shut down cleanly")
	}
	<-sweeper.Stop().Done()
	pool.Shutdown()
	log.Info("server stopped")
}
