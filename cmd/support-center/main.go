package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supportbot/support-center/internal/client"
	"github.com/supportbot/support-center/internal/config"
	"github.com/supportbot/support-center/internal/content"
	"github.com/supportbot/support-center/internal/handler"
	"github.com/supportbot/support-center/internal/middleware"
	"github.com/supportbot/support-center/internal/notify"
	"github.com/supportbot/support-center/internal/responder"
	"github.com/supportbot/support-center/internal/service"
	"github.com/supportbot/support-center/internal/ticket"
	"github.com/supportbot/support-center/pkg/logger"
	"github.com/supportbot/support-center/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/support-center.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("support-center 服务启动中...")

	// 加载静态内容
	site := content.Default()
	if cfg.Content.Path != "" {
		if site, err = content.Load(cfg.Content.Path); err != nil {
			zapLogger.Fatal("加载内容失败", zap.String("path", cfg.Content.Path), zap.Error(err))
		}
	}

	r, err := responder.New(responder.Config{
		Keywords:     site.Keywords,
		QuickReplies: site.QuickReplies,
		Greeting:     site.Greeting,
		Fallback:     site.Fallback,
		Articles:     site.Articles,
	})
	if err != nil {
		zapLogger.Fatal("初始化应答器失败", zap.Error(err))
	}

	// 初始化服务
	sessionService := service.NewSessionService(service.SessionConfig{
		TTL:      cfg.Chat.SessionTTL,
		FAQItems: site.FAQItems,
	}, zapLogger)
	defer sessionService.Close()

	knowledgeService := service.NewKnowledgeService(site, zapLogger)
	chatService := service.NewChatService(sessionService, r, service.ChatConfig{
		ReplyDelay:   cfg.Chat.ReplyDelay,
		ArticleDelay: cfg.Chat.ArticleDelay,
		Welcome:      site.Welcome,
		QuickReplies: site.QuickReplyPhrases(),
		Articles:     knowledgeService,
	}, zapLogger)

	submitter, lister, closeBackend, err := newTicketBackend(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("初始化工单后端失败", zap.String("backend", cfg.Ticket.Backend), zap.Error(err))
	}
	defer closeBackend()

	dataSource := service.NewMemoryDataSource(lister)
	adminService := service.NewAdminService(cfg.Admin.AccessCode, dataSource, zapLogger)
	if cfg.Admin.AccessCode == "" {
		zapLogger.Warn("未配置管理后台访问码，后台不可用")
	}

	toasts := notify.Multi{notify.NewLogSink(zapLogger), sessionService}

	// 初始化路由
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(zapLogger))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins...))
	if cfg.RateLimit.PerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.PerMinute, zapLogger)
		defer limiter.Close()
		engine.Use(limiter.Middleware())
	}

	handler.RegisterRoutes(engine, handler.Handlers{
		API:       handler.NewAPIHandler(sessionService, chatService, site.QuickReplyPhrases(), cfg.Server.Name, zapLogger),
		Knowledge: handler.NewKnowledgeHandler(knowledgeService),
		Ticket:    handler.NewTicketHandler(service.NewRecordingSubmitter(submitter, dataSource), knowledgeService, toasts, zapLogger),
		Admin:     handler.NewAdminHandler(adminService, zapLogger),
		WebSocket: handler.NewWebSocketHandler(sessionService, chatService, zapLogger),
	})

	// 启动服务
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("support-center 服务启动成功",
			zap.Int("port", cfg.Server.Port),
			zap.String("ticketBackend", cfg.Ticket.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("服务关闭中...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("服务关闭失败", zap.Error(err))
	}
	chatService.Wait()
	zapLogger.Info("服务已停止")
}

// newTicketBackend 按配置创建工单后端，lister 仅 redis 后端提供
func newTicketBackend(cfg *config.Config, zapLogger *zap.Logger) (ticket.Submitter, service.TicketLister, func(), error) {
	noop := func() {}

	switch cfg.Ticket.Backend {
	case config.TicketBackendRedis:
		rdb, err := redis.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		store := ticket.NewRedisStore(rdb, cfg.Ticket.TTL, zapLogger)
		return store, store, func() { rdb.Close() }, nil

	case config.TicketBackendHTTP:
		api := client.NewTicketAPIClient(cfg.Ticket.APIURL, cfg.Ticket.APIKey, client.RetryConfig{
			MaxRetries: cfg.Ticket.MaxRetries,
			BaseDelay:  cfg.Ticket.BaseDelay,
			MaxDelay:   cfg.Ticket.MaxDelay,
		}, zapLogger)
		return api, nil, noop, nil

	default:
		return ticket.NewMockSubmitter(cfg.Ticket.SubmitDelay, zapLogger), nil, noop, nil
	}
}
