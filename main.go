package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/election-directory/app/config"
	"github.com/election-directory/app/controllers"
	"github.com/election-directory/app/services"
	"github.com/election-directory/internal/assemble"
	"github.com/election-directory/internal/dataset"
	"github.com/election-directory/internal/metrics"
	"github.com/election-directory/internal/search"
	"github.com/election-directory/routes"
)

func main() {
	// 1. Load configuration
	loadConfig()

	// 2. Khởi tạo logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Election Directory Service")

	// 3. Load cycles manifest
	manifestPath := getEnv("CYCLES_MANIFEST", "config/cycles.yaml")
	if err := config.Load(manifestPath); err != nil {
		logger.Fatal("Failed to load cycles manifest", zap.Error(err))
	}
	logger.Info("Cycles manifest loaded",
		zap.Int("cycles", len(config.C.Cycles)),
		zap.String("default", config.DefaultCycle().ID))

	// 4. Khởi tạo dataset loader (local tree hoặc HTTP)
	var fetcher dataset.Fetcher
	if config.C.Data.BaseURL != "" {
		fetcher = dataset.NewHTTPFetcher(config.C.Data.BaseURL, config.RequestTimeout())
		logger.Info("Dataset source: HTTP", zap.String("base_url", config.C.Data.BaseURL))
	} else {
		fetcher = dataset.NewFSFetcher(config.C.Data.Root)
		logger.Info("Dataset source: filesystem", zap.String("root", config.C.Data.Root))
	}
	loader := dataset.NewLoader(fetcher, logger)
	store := dataset.NewStore(loader, logger)

	// 5. Khởi tạo Meilisearch cho document search (tùy chọn)
	var documentSearcher *search.DocumentSearcher
	if meiliURL := viper.GetString("meilisearch.url"); meiliURL != "" {
		searchConfig := search.SearchConfig{
			Host:      meiliURL,
			APIKey:    viper.GetString("meilisearch.master_key"),
			IndexName: "election_documents",
			Timeout:   30 * time.Second,
		}
		var err error
		documentSearcher, err = search.NewDocumentSearcher(searchConfig, logger)
		if err != nil {
			logger.Warn("Meilisearch unavailable, document search falls back to linear scan", zap.Error(err))
			documentSearcher = nil
		}
	}

	// 6. Khởi tạo metrics
	m := metrics.New()

	// 7. Khởi tạo cache services (LRU L1 + Redis L2 nếu cấu hình)
	l1Size := getEnvInt("L1_CACHE_SIZE", 2048)
	lruCache, err := services.NewLRUCacheService(l1Size, m, logger)
	if err != nil {
		logger.Fatal("Failed to initialize LRU cache", zap.Error(err))
	}

	var cacheService services.ICacheService = lruCache
	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		ttl := time.Duration(config.C.Directory.DetailCacheTTL) * time.Second
		redisCache, err := services.NewRedisCacheService(redisURL, ttl, m, logger)
		if err != nil {
			logger.Warn("Redis unavailable, running with LRU cache only", zap.Error(err))
		} else {
			cacheService = services.NewHybridCacheService(lruCache, redisCache, logger)
		}
	}
	defer cacheService.Close()

	// 8. Khởi tạo services
	assembler := assemble.NewAssembler(logger)
	directoryService := services.NewDirectoryService(store, assembler, documentSearcher, logger)
	detailService := services.NewDetailService(store, assembler, cacheService, logger)
	suggestService := services.NewSuggestService(store, logger)
	overviewService := services.NewOverviewService(store, logger)
	adminService := services.NewAdminService(store, cacheService, detailService, documentSearcher, m, logger)
	defer adminService.Close()

	// 9. Khởi tạo controllers
	directoryController := controllers.NewDirectoryController(directoryService, suggestService, overviewService, logger)
	detailController := controllers.NewDetailController(detailService, logger)
	adminController := controllers.NewAdminController(adminService, logger)

	// 10. Khởi tạo Gin router
	if getEnv("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 11. Thiết lập routes
	routes.SetupAllRoutes(router, m, directoryController, detailController, adminController)

	// 12. Khởi động server
	port := getEnv("APP_PORT", "8080")
	logger.Info("Election Directory Service starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig load configuration từ file và env vars
func loadConfig() {
	// .env cho local development, không bắt buộc
	_ = godotenv.Load()

	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("meilisearch.url", "")
	viper.SetDefault("meilisearch.master_key", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger khởi tạo structured logger
func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	logger, err := config.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}

	return logger
}

// getEnv lấy environment variable với default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt lấy environment variable as int với default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
