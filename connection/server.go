package connection

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tasktracker/config"
	"tasktracker/controller/auth"
	"tasktracker/controller/project"
	"tasktracker/controller/response"
	"tasktracker/controller/task"
	"tasktracker/middleware"
	"tasktracker/services"
	"tasktracker/store"
)

const shutdownTimeout = 10 * time.Second

// NewRouter wires every route against s.
func NewRouter(s store.Store, tokens *services.TokenService, corsOrigins []string) *gin.Engine {
	response.UseJSONFieldNames()

	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery())
	router.Use(corsMiddleware(corsOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})

	users := services.NewUserService(s, tokens)
	auth.SignUpController(router, users)
	auth.SignInController(router, users)
	auth.MeController(router, users, tokens)
	project.ProjectController(router, services.NewProjectService(s), tokens)
	task.TaskController(router, services.NewTaskService(s), tokens)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowHeaders("Authorization")
	return cors.New(cfg)
}

// StartServer opens the store, serves until ctx is done, then shuts down
// gracefully and closes the store.
func StartServer(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	s, err := OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(s, tokens, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (store: %s)", srv.Addr, cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("Shutdown complete.")
	return nil
}
