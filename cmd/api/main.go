package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/address-resolver/app/config"
	"github.com/address-resolver/app/controllers"
	"github.com/address-resolver/app/services"
	"github.com/address-resolver/internal/gazetteer"
	"github.com/address-resolver/internal/normalizer"
	"github.com/address-resolver/internal/resolver"
	"github.com/address-resolver/internal/suggest"
	"github.com/address-resolver/routes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// .env không bắt buộc, chỉ tiện cho môi trường dev
	_ = godotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		panic(err)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting Address Resolver Service...",
		zap.String("env", cfg.AppEnv),
		zap.String("gazetteer_source", cfg.GazetteerSource))

	gaz, cleanup, err := loadGazetteer(cfg, logger)
	if err != nil {
		logger.Fatal("Không load được gazetteer", zap.Error(err))
	}
	defer cleanup()

	rules, err := normalizer.DefaultRules()
	if err != nil {
		logger.Fatal("Không load được rules chuẩn hóa", zap.Error(err))
	}
	textNormalizer, err := normalizer.NewTextNormalizer(rules)
	if err != nil {
		logger.Fatal("Không tạo được normalizer", zap.Error(err))
	}

	addressResolver := resolver.New(gaz, logger)

	cacheService, err := buildCacheService(cfg, logger)
	if err != nil {
		logger.Fatal("Không tạo được cache service", zap.Error(err))
	}
	defer cacheService.Close()

	suggester := buildSuggester(cfg, gaz, logger)

	resolveService := services.NewResolveService(textNormalizer, addressResolver, gaz, cacheService, suggester, logger)
	addressController := controllers.NewAddressController(resolveService, cacheService, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, addressController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Không start được server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Lỗi shutdown server", zap.Error(err))
	}

	logger.Info("Server exited")
}

// initLogger chọn logger theo môi trường
func initLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// loadGazetteer load gazetteer từ file YAML hoặc MongoDB theo config.
// Hàm cleanup đóng kết nối Mongo (no-op với nguồn file).
func loadGazetteer(cfg *config.Config, logger *zap.Logger) (*gazetteer.Gazetteer, func(), error) {
	if cfg.GazetteerSource == config.GazetteerSourceFile {
		g, err := gazetteer.LoadFile(cfg.GazetteerPath)
		if err != nil {
			return nil, nil, err
		}
		p, d, w := g.Counts()
		logger.Info("Đã load gazetteer từ file",
			zap.String("path", cfg.GazetteerPath),
			zap.String("version", g.Version()),
			zap.Int("provinces", p),
			zap.Int("districts", d),
			zap.Int("wards", w))
		return g, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	loader := gazetteer.NewMongoLoader(client.Database(cfg.MongoDatabase), cfg.MongoCollection, logger)
	g, err := loader.Load(ctx)
	if err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	cleanup := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("Lỗi disconnect MongoDB", zap.Error(err))
		}
	}
	return g, cleanup, nil
}

// buildCacheService tạo cache backend theo config
func buildCacheService(cfg *config.Config, logger *zap.Logger) (services.ICacheService, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		return services.NewRedisCacheService(cfg.RedisURL, cfg.CacheTTL, logger)
	case config.CacheBackendHybrid:
		l1, err := services.NewLRUCacheService(cfg.CacheSize, logger)
		if err != nil {
			return nil, err
		}
		l2, err := services.NewRedisCacheService(cfg.RedisURL, cfg.CacheTTL, logger)
		if err != nil {
			return nil, err
		}
		return services.NewHybridCacheService(l1, l2, logger), nil
	default:
		return services.NewLRUCacheService(cfg.CacheSize, logger)
	}
}

// buildSuggester tạo backend gợi ý theo config
func buildSuggester(cfg *config.Config, gaz *gazetteer.Gazetteer, logger *zap.Logger) services.ISuggester {
	if cfg.SuggestBackend == config.SuggestBackendMeili {
		return suggest.NewMeiliSuggester(cfg.MeiliHost, cfg.MeiliAPIKey, cfg.MeiliIndex, gaz, logger)
	}
	return suggest.NewFuzzySuggester(gaz, logger)
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config/config.yaml"
}
