package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"digraph-be/internal/bootstrap"
	"digraph-be/internal/config"
	"digraph-be/internal/server"
	"digraph-be/internal/tracer"
	"digraph-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.App.Environment != "production")
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Start Background Services
	go container.WebSocketHub.Run(ctx)

	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	if container.FlashService != nil {
		if err := container.FlashService.Start(ctx); err != nil {
			log.Printf("Background Flash Service Error: %v", err)
		}
	}

	// 6. Run Server until a signal arrives
	srv := server.New(cfg, container)
	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
