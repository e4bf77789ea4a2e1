package main

import (
	"log"

	"github.com/foresight/internal/config"
	"github.com/foresight/internal/db"
	"github.com/foresight/internal/router"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(router.Options{
		SessionSecret:  cfg.SessionSecret,
		SecureCookies:  cfg.SecureCookies,
		UploadDir:      cfg.UploadDir,
		UploadURLPath:  cfg.UploadURLPath,
		EnableDevSeed:  cfg.EnableDevSeed,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
