package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/pkg/cache"
	"github.com/wyfcoding/pkg/config"
	"github.com/wyfcoding/pkg/database"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/pkg/messagequeue/outbox"
	"github.com/wyfcoding/pkg/metrics"
	"github.com/wyfcoding/pkg/middleware"
	accountapp "github.com/wyfcoding/retailbackend/internal/account/application"
	accountdomain "github.com/wyfcoding/retailbackend/internal/account/domain"
	accountgw "github.com/wyfcoding/retailbackend/internal/account/infrastructure/gateway"
	accountmsg "github.com/wyfcoding/retailbackend/internal/account/infrastructure/messaging"
	accountmysql "github.com/wyfcoding/retailbackend/internal/account/infrastructure/persistence/mysql"
	accounthttp "github.com/wyfcoding/retailbackend/internal/account/interfaces/http"
	analyticsapp "github.com/wyfcoding/retailbackend/internal/analytics/application"
	analyticsmysql "github.com/wyfcoding/retailbackend/internal/analytics/infrastructure/persistence/mysql"
	analyticshttp "github.com/wyfcoding/retailbackend/internal/analytics/interfaces/http"
	authapp "github.com/wyfcoding/retailbackend/internal/auth/application"
	authredis "github.com/wyfcoding/retailbackend/internal/auth/infrastructure/persistence/redis"
	authhttp "github.com/wyfcoding/retailbackend/internal/auth/interfaces/http"
	catalogapp "github.com/wyfcoding/retailbackend/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/retailbackend/internal/catalog/domain"
	catalogmsg "github.com/wyfcoding/retailbackend/internal/catalog/infrastructure/messaging"
	catalogmysql "github.com/wyfcoding/retailbackend/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/retailbackend/internal/catalog/interfaces/http"
	orderapp "github.com/wyfcoding/retailbackend/internal/order/application"
	orderdomain "github.com/wyfcoding/retailbackend/internal/order/domain"
	ordergw "github.com/wyfcoding/retailbackend/internal/order/infrastructure/gateway"
	ordermsg "github.com/wyfcoding/retailbackend/internal/order/infrastructure/messaging"
	ordermysql "github.com/wyfcoding/retailbackend/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/retailbackend/internal/order/interfaces/http"
	"golang.org/x/sync/errgroup"
)

// Config 服务扩展配置
type Config struct {
	config.Config `mapstructure:",squash"`
	Auth          struct {
		JWTSecret string `mapstructure:"jwt_secret" toml:"jwt_secret"`
	} `mapstructure:"auth" toml:"auth"`
}

var configPath = flag.String("config", "configs/server/config.toml", "config file path")

func main() {
	flag.Parse()

	// 1. 配置
	var cfg Config
	if err := config.Load(*configPath, &cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. 日志
	logCfg := &logging.Config{Service: cfg.Server.Name, Level: cfg.Log.Level}
	logger := logging.NewFromConfig(logCfg)
	slog.SetDefault(logger.Logger)

	// 3. 指标
	metricsImpl := metrics.NewMetrics(cfg.Server.Name)

	// 4. 数据库
	db, err := database.NewDB(cfg.Data.Database, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	if cfg.Server.Environment == "dev" {
		if err := db.RawDB().AutoMigrate(
			&accountdomain.User{},
			&accountdomain.CartItem{},
			&catalogdomain.Product{},
			&catalogdomain.Rating{},
			&orderdomain.Order{},
			&orderdomain.OrderItem{},
			&outbox.Message{},
		); err != nil {
			slog.Error("failed to migrate database", "error", err)
		}
	}

	// 5. Kafka & Outbox
	kafkaProducer := kafka.NewProducer(&cfg.MessageQueue.Kafka, logger, metricsImpl)
	outboxMgr := outbox.NewManager(db.RawDB(), logger.Logger)
	pusher := func(ctx context.Context, topic, key string, payload []byte) error {
		return kafkaProducer.PublishToTopic(ctx, topic, []byte(key), payload)
	}
	outboxProcessor := outbox.NewProcessor(outboxMgr, pusher, 100, 2*time.Second)

	// 6. Redis
	redisCache, err := cache.NewRedisCache(&cfg.Data.Redis, cfg.CircuitBreaker, logger, metricsImpl)
	if err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	// 7. 仓储与网关
	productRepo := catalogmysql.NewProductRepository(db.RawDB())
	userRepo := accountmysql.NewUserRepository(db.RawDB())
	orderRepo := ordermysql.NewOrderRepository(db.RawDB())
	salesRepo := analyticsmysql.NewSalesRepository(db.RawDB())
	sessionRepo := authredis.NewSessionRedisRepository(redisCache.GetClient())

	catalogPublisher := catalogmsg.NewOutboxPublisher(outboxMgr)
	accountPublisher := accountmsg.NewOutboxPublisher(outboxMgr)
	orderPublisher := ordermsg.NewOutboxPublisher(outboxMgr)

	accountCatalogGw := accountgw.NewCatalogGateway(productRepo)
	orderCatalogGw := ordergw.NewCatalogGateway(productRepo)
	orderAccountGw := ordergw.NewAccountGateway(userRepo)

	// 8. 应用服务
	tokenSvc := authapp.NewTokenService(cfg.Auth.JWTSecret, sessionRepo)
	hasher := authapp.NewBcryptHasher()

	catalogCmd := catalogapp.NewCatalogCommandService(productRepo, catalogPublisher)
	catalogQuery := catalogapp.NewCatalogQueryService(productRepo)
	accountCmd := accountapp.NewAccountCommandService(userRepo, hasher, tokenSvc, accountPublisher)
	cartSvc := accountapp.NewCartService(userRepo, accountCatalogGw, accountPublisher)
	orderCmd := orderapp.NewOrderCommandService(orderRepo, orderCatalogGw, orderAccountGw, orderPublisher)
	orderQuery := orderapp.NewOrderQueryService(orderRepo)
	earningsQuery := analyticsapp.NewEarningsQueryService(salesRepo)

	// 9. 接口层
	if cfg.Server.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORS())

	catalogHandler := cataloghttp.NewCatalogHandler(catalogCmd, catalogQuery)
	accountHandler := accounthttp.NewAccountHandler(accountCmd, cartSvc, tokenSvc)
	orderHandler := orderhttp.NewOrderHandler(orderCmd, orderQuery)
	analyticsHandler := analyticshttp.NewAnalyticsHandler(earningsQuery)

	accountHandler.RegisterRootRoutes(r)

	api := r.Group("/api")
	accountHandler.RegisterPublicRoutes(api)

	authed := api.Group("")
	authed.Use(authhttp.AuthRequired(tokenSvc))
	accountHandler.RegisterRoutes(authed)
	catalogHandler.RegisterRoutes(authed)
	orderHandler.RegisterRoutes(authed)

	admin := r.Group("/admin")
	admin.Use(authhttp.AuthRequired(tokenSvc), authhttp.AdminRequired(userRepo))
	catalogHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	analyticsHandler.RegisterAdminRoutes(admin)

	r.GET("/sys/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.Server.Name})
	})

	// 10. 启动
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		outboxProcessor.Start()
		<-ctx.Done()
		outboxProcessor.Stop()
		return nil
	})

	addr := fmt.Sprintf(":%d", cfg.Server.HTTP.Port)
	server := &http.Server{Addr: addr, Handler: r}

	g.Go(func() error {
		slog.Info("HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			slog.Info("shutting down server...")
		case <-ctx.Done():
			slog.Info("context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "error", err)
	}
}
