package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	hotelv1 "github.com/fekuna/termas-hotel-service/api/hotel/v1"
	"github.com/fekuna/termas-hotel-service/config"
	"github.com/fekuna/termas-hotel-service/pkg/broker"
	"github.com/fekuna/termas-hotel-service/pkg/cache"
	"github.com/fekuna/termas-hotel-service/pkg/database/postgres"
	"github.com/fekuna/termas-hotel-service/pkg/httpserver"
	"github.com/fekuna/termas-hotel-service/pkg/i18n"
	"github.com/fekuna/termas-hotel-service/pkg/logger"
	"github.com/fekuna/termas-hotel-service/pkg/mail"
	"github.com/fekuna/termas-hotel-service/pkg/middleware"
	"github.com/fekuna/termas-hotel-service/pkg/search"

	"github.com/fekuna/termas-hotel-service/internal/assistant"
	aiGemini "github.com/fekuna/termas-hotel-service/internal/assistant/gemini"
	aiH "github.com/fekuna/termas-hotel-service/internal/assistant/handler"
	aiRepoPkg "github.com/fekuna/termas-hotel-service/internal/assistant/repository"
	aiUCPkg "github.com/fekuna/termas-hotel-service/internal/assistant/usecase"

	catH "github.com/fekuna/termas-hotel-service/internal/category/handler"
	catRepoPkg "github.com/fekuna/termas-hotel-service/internal/category/repository"
	catUCPkg "github.com/fekuna/termas-hotel-service/internal/category/usecase"

	cliH "github.com/fekuna/termas-hotel-service/internal/client/handler"
	cliRepoPkg "github.com/fekuna/termas-hotel-service/internal/client/repository"
	cliUCPkg "github.com/fekuna/termas-hotel-service/internal/client/usecase"

	invH "github.com/fekuna/termas-hotel-service/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/termas-hotel-service/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/termas-hotel-service/internal/inventory/repository"
	invUCPkg "github.com/fekuna/termas-hotel-service/internal/inventory/usecase"

	notifH "github.com/fekuna/termas-hotel-service/internal/notification/handler"
	"github.com/fekuna/termas-hotel-service/internal/notification/render"
	notifRepoPkg "github.com/fekuna/termas-hotel-service/internal/notification/repository"
	notifUCPkg "github.com/fekuna/termas-hotel-service/internal/notification/usecase"

	pcH "github.com/fekuna/termas-hotel-service/internal/pettycash/handler"
	pcRepoPkg "github.com/fekuna/termas-hotel-service/internal/pettycash/repository"
	pcUCPkg "github.com/fekuna/termas-hotel-service/internal/pettycash/usecase"

	posH "github.com/fekuna/termas-hotel-service/internal/pos/handler"
	posRepoPkg "github.com/fekuna/termas-hotel-service/internal/pos/repository"
	posUCPkg "github.com/fekuna/termas-hotel-service/internal/pos/usecase"

	prodH "github.com/fekuna/termas-hotel-service/internal/product/handler"
	prodRepoPkg "github.com/fekuna/termas-hotel-service/internal/product/repository"
	prodUCPkg "github.com/fekuna/termas-hotel-service/internal/product/usecase"

	resH "github.com/fekuna/termas-hotel-service/internal/reservation/handler"
	resRepoPkg "github.com/fekuna/termas-hotel-service/internal/reservation/repository"
	resUCPkg "github.com/fekuna/termas-hotel-service/internal/reservation/usecase"

	roomH "github.com/fekuna/termas-hotel-service/internal/room/handler"
	roomRepoPkg "github.com/fekuna/termas-hotel-service/internal/room/repository"
	roomUCPkg "github.com/fekuna/termas-hotel-service/internal/room/usecase"

	supH "github.com/fekuna/termas-hotel-service/internal/supplier/handler"
	supRepoPkg "github.com/fekuna/termas-hotel-service/internal/supplier/repository"
	supUCPkg "github.com/fekuna/termas-hotel-service/internal/supplier/usecase"

	whH "github.com/fekuna/termas-hotel-service/internal/warehouse/handler"
	whRepoPkg "github.com/fekuna/termas-hotel-service/internal/warehouse/repository"
	whUCPkg "github.com/fekuna/termas-hotel-service/internal/warehouse/usecase"

	waGateway "github.com/fekuna/termas-hotel-service/internal/whatsapp/gateway"
	waH "github.com/fekuna/termas-hotel-service/internal/whatsapp/handler"
	waUCPkg "github.com/fekuna/termas-hotel-service/internal/whatsapp/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.IsDevelopment() {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 2.5 Initialize i18n
	i18n.Init()
	if path := os.Getenv("I18N_EXTRA_LOCALE"); path != "" {
		if err := i18n.Load(path); err != nil {
			appLogger.Fatal("Could not load extra locale", zap.String("path", path), zap.Error(err))
		}
	}

	hotelLoc, err := time.LoadLocation(cfg.WhatsApp.Timezone)
	if err != nil {
		appLogger.Warn("Unknown hotel timezone, using UTC", zap.String("timezone", cfg.WhatsApp.Timezone), zap.Error(err))
		hotelLoc = time.UTC
	}

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	roomRepo := roomRepoPkg.NewPGRepository(db)
	cliRepo := cliRepoPkg.NewPGRepository(db)
	supRepo := supRepoPkg.NewPGRepository(db)
	resRepo := resRepoPkg.NewPGRepository(db)
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	whRepo := whRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	pcRepo := pcRepoPkg.NewPGRepository(db)
	posRepo := posRepoPkg.NewPGRepository(db)
	notifRepo := notifRepoPkg.NewPGRepository(db)
	aiRepo := aiRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.SaleTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.SaleTopic,
	})
	defer kafkaProducer.Close()
	appLogger.Info("Kafka configured", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.SaleTopic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, search falls back to SQL", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5.9 Initialize Gemini
	var generator assistant.Generator
	if cfg.GenAI.APIKey != "" {
		gc, err := aiGemini.NewClient(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
		if err != nil {
			appLogger.Warn("Could not create Gemini client, assistant disabled", zap.Error(err))
		} else {
			generator = gc
		}
	} else {
		appLogger.Warn("GEMINI_API_KEY not set, assistant disabled")
	}

	// 6. Initialize UseCases
	emailEngine := render.NewEngine(cfg.Hotel.Name, cfg.Hotel.Phone, hotelLoc)
	notifUC := notifUCPkg.NewNotificationUseCase(notifRepo, mail.NewSMTPSender(cfg.SMTP), emailEngine, appLogger)

	roomUC := roomUCPkg.NewRoomUseCase(roomRepo, appLogger)
	cliUC := cliUCPkg.NewClientUseCase(cliRepo, esClient, appLogger)
	supUC := supUCPkg.NewSupplierUseCase(supRepo, appLogger)
	resUC := resUCPkg.NewReservationUseCase(resRepo, roomRepo, cliRepo, notifUC, hotelLoc, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, appLogger)
	whUC := whUCPkg.NewWarehouseUseCase(whRepo, prodRepo, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, prodRepo, whRepo, redisClient, appLogger)
	pcUC := pcUCPkg.NewPettyCashUseCase(pcRepo, appLogger)
	posUC := posUCPkg.NewPOSUseCase(posRepo, catRepo, pcRepo, kafkaProducer, appLogger)
	aiUC := aiUCPkg.NewAssistantUseCase(aiRepo, generator, cfg.GenAI.Model, cfg.Hotel.Name, hotelLoc, appLogger)
	waUC := waUCPkg.NewWhatsAppUseCase(waGateway.NewClient(cfg.WhatsApp), aiUC, cfg.WhatsApp, cfg.Hotel, appLogger)

	// 6.5 Initialize Listeners
	saleListener := invListenerPkg.NewSaleListener(kafkaConsumer, invUC, cfg.Hotel.SaleWarehouses, appLogger)

	// 7. gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	lis, err := net.Listen("tcp", port)
	if err != nil {
		appLogger.Fatal("failed to listen", zap.String("port", port), zap.Error(err))
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor(appLogger),
			middleware.LoggingInterceptor(appLogger),
			middleware.ContextInterceptor(&middleware.AuthConfig{
				Secret:  cfg.JWT.SecretKey,
				DevMode: cfg.Server.IsDevelopment(),
			}),
		),
	)

	hotelv1.RegisterRoomServiceServer(grpcServer, roomH.NewRoomHandler(roomUC, appLogger))
	hotelv1.RegisterClientServiceServer(grpcServer, cliH.NewClientHandler(cliUC, appLogger))
	hotelv1.RegisterSupplierServiceServer(grpcServer, supH.NewSupplierHandler(supUC, appLogger))
	hotelv1.RegisterReservationServiceServer(grpcServer, resH.NewReservationHandler(resUC, appLogger))
	hotelv1.RegisterCategoryServiceServer(grpcServer, catH.NewCategoryHandler(catUC, appLogger))
	hotelv1.RegisterProductServiceServer(grpcServer, prodH.NewProductHandler(prodUC, appLogger))
	hotelv1.RegisterWarehouseServiceServer(grpcServer, whH.NewWarehouseHandler(whUC, appLogger))
	hotelv1.RegisterInventoryServiceServer(grpcServer, invH.NewInventoryHandler(invUC, appLogger))
	hotelv1.RegisterPettyCashServiceServer(grpcServer, pcH.NewPettyCashHandler(pcUC, appLogger))
	hotelv1.RegisterPOSServiceServer(grpcServer, posH.NewPOSHandler(posUC, appLogger))
	hotelv1.RegisterNotificationServiceServer(grpcServer, notifH.NewNotificationHandler(notifUC, appLogger))
	hotelv1.RegisterAssistantServiceServer(grpcServer, aiH.NewAssistantHandler(aiUC, appLogger))
	hotelv1.RegisterWhatsAppServiceServer(grpcServer, waH.NewWhatsAppHandler(waUC, appLogger))

	// 8. HTTP Server
	router := httpserver.NewRouter(appLogger, map[string]httpserver.Pinger{
		"postgres": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Client.Ping(ctx).Err()
		},
	})
	waH.NewWebhook(waUC, cfg.WhatsApp.WebhookToken, appLogger).Routes(router)
	httpServer := httpserver.New(cfg.Server.HTTPPort, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting gRPC server", zap.String("port", port))
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		appLogger.Info("Starting HTTP server", zap.String("addr", cfg.Server.HTTPPort))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		saleListener.Start(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Server stopped with error", zap.Error(err))
		return
	}
	appLogger.Info("Server stopped")
}
