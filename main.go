package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RigelNana/arktube/auth"
	"github.com/RigelNana/arktube/config"
	"github.com/RigelNana/arktube/database"
	"github.com/RigelNana/arktube/handler"
	"github.com/RigelNana/arktube/handler/ops"
	"github.com/RigelNana/arktube/middleware"
	"github.com/RigelNana/arktube/pkg/metrics"
	grpcMetrics "github.com/RigelNana/arktube/pkg/metrics/grpc"
	"github.com/RigelNana/arktube/processor"
	"github.com/RigelNana/arktube/repository"
	"github.com/RigelNana/arktube/router"
	"github.com/RigelNana/arktube/service"
	"github.com/RigelNana/arktube/storage"
	"github.com/RigelNana/arktube/workflow"
	"github.com/gin-gonic/gin"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 初始化日志
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("加载配置失败: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	if level := logger.GetLevel(); level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 启动 Prometheus metrics 服务器
	metricsServer := metrics.StartMetricsServer(cfg.Server.MetricsPort)
	logger.Infof("Prometheus metrics server started on :%s", cfg.Server.MetricsPort)

	// 初始化数据库
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Fatalf("初始化数据库失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatalf("数据库迁移失败: %v", err)
	}
	if err := database.SeedCategories(db); err != nil {
		logger.Fatalf("写入默认分类失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalf("获取数据库连接池失败: %v", err)
	}
	logger.Info("数据库连接成功")

	// 外部依赖
	blob, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		logger.Fatalf("初始化对象存储失败: %v", err)
	}
	muxClient := processor.NewClient(cfg.Mux)
	publisher, err := workflow.NewPublisher(cfg.Workflow)
	if err != nil {
		logger.Fatalf("初始化工作流失败: %v", err)
	}
	defer publisher.Close()

	// 仓储
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	videos := repository.NewVideoRepository(db)
	comments := repository.NewCommentRepository(db)
	reactions := repository.NewReactionRepository(db)
	subscriptions := repository.NewSubscriptionRepository(db)
	views := repository.NewViewRepository(db)
	webhookEvents := repository.NewWebhookEventRepository(db)

	// 服务
	userService := service.NewUserService(users, logger)
	videoService := service.NewVideoService(videos, views, reactions, logger)
	commentService := service.NewCommentService(comments, reactions, logger)
	subscriptionService := service.NewSubscriptionService(subscriptions, logger)
	categoryService := service.NewCategoryService(categories)
	studioService := service.NewStudioService(videos, muxClient, blob, publisher, cfg.Workflow.Retries, logger)
	verifier := processor.NewVerifier(cfg.Mux.WebhookSecret, cfg.Mux.WebhookTolerance)
	webhookService := service.NewWebhookService(verifier, videos, webhookEvents, muxClient, logger)

	// 工作流消费者
	if cfg.Workflow.RunWorker {
		consumer, err := workflow.NewConsumer(cfg.Workflow)
		switch {
		case errors.Is(err, workflow.ErrDisabled):
			logger.Warn("workflow broker disabled, worker not started")
		case err != nil:
			logger.Fatalf("初始化工作流消费者失败: %v", err)
		default:
			defer consumer.Close()
			worker := workflow.NewWorker(videos, muxClient, workflow.NewOpenAIGenerator(cfg.OpenAI), blob, publisher, logger)
			go func() {
				if err := consumer.Run(ctx, worker.Handle); err != nil && ctx.Err() == nil {
					logger.WithError(err).Error("workflow consumer stopped")
				}
			}()
			logger.Infof("workflow worker started (%s)", cfg.Workflow.Broker)
		}
	}

	// 运维 gRPC：健康检查与反射
	monitor := ops.NewHealthMonitor(sqlDB, 15*time.Second, logger)
	go monitor.Run(ctx)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCPort))
	if err != nil {
		logger.Fatalf("gRPC监听失败: %v", err)
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMetrics.UnaryServerInterceptor(metrics.ServiceName)),
		grpc.StreamInterceptor(grpcMetrics.StreamServerInterceptor(metrics.ServiceName)),
	)
	healthpb.RegisterHealthServer(grpcServer, monitor.Server())
	reflection.Register(grpcServer)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatalf("gRPC服务器启动失败: %v", err)
		}
	}()
	logger.Infof("gRPC服务器启动在端口 %s", cfg.Server.GRPCPort)

	// HTTP
	authn := middleware.NewAuthenticator(auth.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer), userService, logger)
	engine := router.Setup(router.Handlers{
		Health:       handler.NewHealthHandler(monitor),
		Category:     handler.NewCategoryHandler(categoryService, logger),
		Video:        handler.NewVideoHandler(videoService, logger),
		Comment:      handler.NewCommentHandler(commentService, logger),
		Subscription: handler.NewSubscriptionHandler(subscriptionService, logger),
		User:         handler.NewUserHandler(userService, logger),
		Studio:       handler.NewStudioHandler(studioService, logger),
		Webhook:      handler.NewWebhookHandler(webhookService, logger),
	}, authn, logger)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.Origins()),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		gorillaHandlers.AllowCredentials(),
	)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.HTTPPort,
		Handler:           cors(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP服务器启动失败: %v", err)
		}
	}()
	logger.Infof("HTTP服务器启动在端口 %s", cfg.Server.HTTPPort)

	// 等待中断信号
	<-ctx.Done()
	logger.Info("服务正在关闭...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HTTP shutdown")
	}
	grpcServer.GracefulStop()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("metrics shutdown")
	}
	if err := sqlDB.Close(); err != nil {
		logger.WithError(err).Warn("database close")
	}
}
