package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"troubleshoot-titans/internal/ai"
	"troubleshoot-titans/internal/authutils"
	"troubleshoot-titans/internal/config"
	"troubleshoot-titans/internal/content"
	"troubleshoot-titans/internal/database"
	"troubleshoot-titans/internal/handler"
	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/logger"
	"troubleshoot-titans/internal/messaging"
	"troubleshoot-titans/internal/middleware"
	"troubleshoot-titans/internal/scenario"
	"troubleshoot-titans/internal/service"
	ws "troubleshoot-titans/internal/websocket"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

const serviceName = "troubleshoot-titans"

// completionReporter - репортер с ожиданием незавершенных отправок при остановке.
type completionReporter interface {
	interfaces.CompletionReporter
	Wait()
}

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		// В production .env может не использоваться
		fmt.Printf("Warning: could not load .env file: %v\n", err)
	}

	migrateCmd := flag.String("migrate", "", "up, down или version: выполнить команду миграций и выйти")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Service:     serviceName,
		Env:         cfg.Env,
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		Development: cfg.LogDevelopment,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)
	zlog := initZerolog(cfg)

	log.Info("Starting troubleshoot-titans server",
		zap.String("env", cfg.Env),
		zap.String("aiClient", cfg.AIClientType),
		zap.String("authProvider", cfg.AuthProvider),
		zap.String("profileStore", cfg.ProfileStore),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgPool, err := database.NewPool(ctx, database.PoolConfig{
		DSN:         cfg.GetDSN(),
		MaxConns:    cfg.DBMaxConns,
		IdleTimeout: cfg.DBIdleTimeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.String("dsn", cfg.SafeDSN()), zap.Error(err))
	}
	defer pgPool.Close()

	migrator := database.NewMigrator(pgPool, zlog)
	if *migrateCmd != "" {
		if err := runMigrateCommand(migrator, *migrateCmd, log); err != nil {
			log.Fatal("Migration command failed", zap.String("command", *migrateCmd), zap.Error(err))
		}
		return
	}
	if err := migrator.Up(); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	log.Info("Connected to Redis")

	verifier, profileRepo := setupAuthAndProfiles(ctx, cfg, pgPool, log)

	// --- Генерация контента ---
	aiClient, err := ai.NewAIClient(ai.ClientConfig{
		Type:    cfg.AIClientType,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
		APIKey:  cfg.AIAPIKey,
		Timeout: cfg.AITimeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to create AI client", zap.Error(err))
	}
	generator := ai.NewGenerator(aiClient, ai.NewTokenCounter(cfg.AIModel, log), ai.GeneratorConfig{
		MaxPromptTokens:     cfg.AIMaxPromptTokens,
		MaxCompletionTokens: cfg.AIMaxCompletionTokens,
		Temperature:         cfg.AITemperature,
	}, log)

	catalog, err := content.LoadCatalog()
	if err != nil {
		log.Fatal("Failed to load content catalog", zap.Error(err))
	}
	store := content.NewStore(catalog, database.NewPgContentRepository(pgPool, log), log)

	// --- Прогресс и события завершения ---
	hub := ws.NewConnectionManager(zlog)
	progress := service.NewProgressService(profileRepo, database.NewRedisLeaderboardRepository(redisClient, log), log)

	var reporter completionReporter
	var consumer *messaging.CompletionConsumer
	if cfg.RabbitMQURL != "" {
		mqConn, err := messaging.Connect(cfg.RabbitMQURL, 5, 3*time.Second, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConn.Close()

		publisher, err := messaging.NewCompletionPublisher(mqConn, cfg.CompletionQueue, log)
		if err != nil {
			log.Fatal("Failed to create completion publisher", zap.Error(err))
		}
		reporter = service.NewQueuedCompletionReporter(publisher, hub, log)
		consumer = messaging.NewCompletionConsumer(mqConn, cfg.CompletionQueue,
			messaging.NewCompletionProcessor(progress, hub, log), log)
	} else {
		log.Info("RABBITMQ_URL is not set, completions are recorded in-process")
		reporter = service.NewDirectCompletionReporter(progress, hub, log)
	}

	games := service.NewGameService(store, generator, reporter, hub, service.GameOptions{
		Timing: scenario.Timing{
			RevealDelay: cfg.Game.RevealDelay,
			RetryDelay:  cfg.Game.RetryDelay,
		},
		GamePoints: cfg.Game.GamePoints,
	}, log)
	h := handler.NewHandler(handler.Services{
		Scenarios: service.NewScenarioService(store, generator, log),
		Games:     games,
		Quizzes: service.NewQuizService(store, generator, reporter, service.QuizOptions{
			PassPercent: cfg.Game.QuizPassPercent,
			Points:      cfg.Game.QuizPoints,
		}, log),
		Profiles:    service.NewProfileService(profileRepo, log),
		Forum:       service.NewForumService(database.NewPgForumRepository(pgPool, log), log),
		Leaderboard: service.NewLeaderboardService(database.NewRedisLeaderboardRepository(redisClient, log), cfg.Game.LeaderboardSize),
		Minigames: service.NewMinigameService(catalog.Words(), service.MinigameOptions{
			ReflexMinDelay:      cfg.Game.ReflexMinDelay,
			ReflexMaxDelay:      cfg.Game.ReflexMaxDelay,
			ScrambleMaxAttempts: cfg.Game.ScrambleMaxAttempts,
			WordGuessMaxWrong:   cfg.Game.WordGuessMaxWrong,
		}, nil),
	}, verifier, cfg.AuthProvider, log)

	generateLimiter := handler.NewGenerateRateLimiter(rateli.RedisStore(&rateli.RedisOptions{
		RedisClient: redisClient,
		Rate:        time.Minute,
		Limit:       cfg.GenerateRatePerMinute,
	}))
	wsHandler := ws.NewHandler(hub, verifier, originChecker(cfg.AllowedOrigins), zlog)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if slices.Contains(cfg.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	h.RegisterRoutes(router, generateLimiter, wsHandler.ServeWS)

	if consumer != nil {
		go func() {
			log.Info("Starting completion consumer...")
			if err := consumer.Start(); err != nil {
				log.Error("Completion consumer stopped with error", zap.Error(err))
			} else {
				log.Info("Completion consumer stopped gracefully")
			}
		}()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownWait)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	games.Shutdown()
	reporter.Wait()
	if consumer != nil {
		consumer.Stop()
	}
	hub.CloseAll()

	log.Info("Server exiting")
}

// setupAuthAndProfiles выбирает верификатор токенов и хранилище профилей по конфигурации.
func setupAuthAndProfiles(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *zap.Logger) (authutils.TokenVerifier, interfaces.ProfileRepository) {
	var verifier authutils.TokenVerifier
	var profiles interfaces.ProfileRepository

	if cfg.AuthProvider == config.AuthProviderFirebase || cfg.ProfileStore == config.ProfileStoreFirestore {
		app, err := authutils.NewFirebaseApp(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseProjectID)
		if err != nil {
			log.Fatal("Failed to initialize Firebase", zap.Error(err))
		}
		if cfg.AuthProvider == config.AuthProviderFirebase {
			fv, err := authutils.NewFirebaseVerifier(ctx, app, log)
			if err != nil {
				log.Fatal("Failed to create Firebase verifier", zap.Error(err))
			}
			verifier = fv
		}
		if cfg.ProfileStore == config.ProfileStoreFirestore {
			fs, err := app.Firestore(ctx)
			if err != nil {
				log.Fatal("Failed to create Firestore client", zap.Error(err))
			}
			profiles = database.NewFirestoreProfileRepository(fs, log)
		}
	}

	if verifier == nil {
		jv, err := authutils.NewJWTVerifier(cfg.JWTSecret, log)
		if err != nil {
			log.Fatal("Failed to create JWT verifier", zap.Error(err))
		}
		verifier = jv
	}
	if profiles == nil {
		profiles = database.NewPgProfileRepository(pool, log)
	}
	return verifier, profiles
}

func runMigrateCommand(m *database.Migrator, command string, log *zap.Logger) error {
	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	}
	return fmt.Errorf("unknown migrate command %q", command)
}

// initZerolog - логгер для websocket хаба и миграций.
func initZerolog(cfg *config.Config) zerolog.Logger {
	var zl zerolog.Logger
	if cfg.Env != "production" && cfg.LogEncoding == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		zl = zerolog.New(output).With().Timestamp().Str("service", serviceName).Logger()
	} else {
		zl = zerolog.New(os.Stdout).With().Timestamp().Str("service", serviceName).Logger()
	}

	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		level = lvl
	}
	return zl.Level(level)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}
