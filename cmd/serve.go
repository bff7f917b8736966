package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dcode-github/real_estate_portal/cache"
	"github.com/dcode-github/real_estate_portal/config"
	"github.com/dcode-github/real_estate_portal/middleware"
	"github.com/dcode-github/real_estate_portal/migrations"
	"github.com/dcode-github/real_estate_portal/routes"
	"github.com/dcode-github/real_estate_portal/storage"
	"github.com/dcode-github/real_estate_portal/utils"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}
			skipMigrate, _ := cmd.Flags().GetBool("skip-migrate")
			return serve(cfg, !skipMigrate)
		},
	}
	cmd.Flags().String("port", "", "Port to listen on (overrides PORT)")
	cmd.Flags().Bool("skip-migrate", false, "Do not apply pending migrations on start")
	return cmd
}

func setupRouter(d routes.Deps) *mux.Router {
	router := mux.NewRouter()
	routes.Routes(router, d)
	return router
}

func serve(cfg *config.Config, migrate bool) error {
	if cfg.JWTKey == "" {
		return errors.New("JWT_KEY not set in environment")
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}
	defer config.CloseDBConnection(db)

	if migrate {
		if _, err := migrations.Default(db).Up(); err != nil {
			return err
		}
	}

	sqlxDB, err := config.SQLX(db)
	if err != nil {
		return err
	}

	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		log.Printf("Property cache disabled: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	mongoClient, err := config.ConnectMongo(cfg)
	if err != nil {
		log.Printf("Photo storage disabled: %v", err)
	}
	defer config.CloseMongo(mongoClient)

	router := setupRouter(routes.Deps{
		DB:             db,
		SQLX:           sqlxDB,
		Cache:          cache.New(redisClient, cfg.CacheTTL),
		Photos:         storage.New(mongoClient, cfg.MongoDB),
		JWT:            utils.NewJWTManager(cfg.JWTKey, cfg.JWTTTL),
		MaxUploadBytes: cfg.MaxUploadMB << 20,
	})

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(middleware.RequestLogger(router))

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("error starting server: %w", err)
	case <-sigCh:
	}

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}
