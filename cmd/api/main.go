package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TorqueWorks01/garage-scheduler/internal/cache"
	"github.com/TorqueWorks01/garage-scheduler/internal/config"
	dbpkg "github.com/TorqueWorks01/garage-scheduler/internal/db"
	"github.com/TorqueWorks01/garage-scheduler/internal/logger"
	"github.com/TorqueWorks01/garage-scheduler/internal/middleware"
	"github.com/TorqueWorks01/garage-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db := dbpkg.NewDB(cfg)
	cch := cache.New(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(zlog))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, cch, zlog)

	zlog.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
