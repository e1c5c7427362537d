package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashwinyue/next-nlp/internal/config"
	"github.com/ashwinyue/next-nlp/internal/handler"
	"github.com/ashwinyue/next-nlp/internal/logger"
	"github.com/ashwinyue/next-nlp/internal/metrics"
	"github.com/ashwinyue/next-nlp/internal/router"
	"github.com/ashwinyue/next-nlp/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 加载配置，缺少 VOYAGEAI_API_KEY 时在监听端口之前退出
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("failed to load config", zap.String("path", configPath), zap.Error(err))
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	// 设置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
	}

	// 初始化各层（分词模型在此加载一次）
	services, err := service.NewServices(cfg, log, collector)
	if err != nil {
		log.Fatal("failed to init services", zap.Error(err))
	}
	handlers := handler.NewHandlers(services)

	// 初始化路由
	r := router.SetupRouter(handlers, log, collector, time.Duration(cfg.Server.RequestTimeout)*time.Second)

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 启动服务器
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
