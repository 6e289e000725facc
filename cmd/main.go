package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sbilibin2017/gw-wrap-credits/docs"
	"github.com/sbilibin2017/gw-wrap-credits/internal/handlers"
	"github.com/sbilibin2017/gw-wrap-credits/internal/jwt"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/notify"
	"github.com/sbilibin2017/gw-wrap-credits/internal/repositories"
	"github.com/sbilibin2017/gw-wrap-credits/internal/router"
	"github.com/sbilibin2017/gw-wrap-credits/internal/services"
	"github.com/sbilibin2017/gw-wrap-credits/internal/transactor"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Notification backends for task events.
const (
	notifyPostgres = "postgres"
	notifyRedis    = "redis"
)

// config holds every setting read by parseConfig.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	NotifyBackend string

	KafkaBrokers     []string
	KafkaLedgerTopic string

	JWTSecretKey string
	JWTExpSecond int

	SessionTTL          time.Duration
	SessionCookieName   string
	SessionCookieSecure bool

	StaleTaskAfter time.Duration
	SSEHeartbeat   time.Duration
	GenerationCost int64

	GRPCHealthPort string
	CORSOrigins    []string
}

// @title gw-wrap-credits API
// @version 1.0.0
// @description Credits, generation task tracking and refunds for the wrap generator
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, session and JWT configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getList := func(key string) []string {
		var out []string
		for _, item := range strings.Split(getEnv(key, ""), ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Task event notifications
	cfg.NotifyBackend = getEnv("NOTIFY_BACKEND", notifyPostgres)
	if cfg.NotifyBackend != notifyPostgres && cfg.NotifyBackend != notifyRedis {
		err = fmt.Errorf("NOTIFY_BACKEND: unknown backend %q", cfg.NotifyBackend)
		return
	}

	// Kafka config, publishing is disabled without brokers
	cfg.KafkaBrokers = getList("KAFKA_BROKERS")
	cfg.KafkaLedgerTopic = getEnv("KAFKA_LEDGER_TOPIC", "credit-ledger")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = getInt("JWT_EXP_SECOND", "60"); err != nil {
		return
	}

	// Session config
	ttlHours, err := getInt("SESSION_TTL_HOURS", "720")
	if err != nil {
		return
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour
	cfg.SessionCookieName = getEnv("SESSION_COOKIE_NAME", "session_token")
	if cfg.SessionCookieSecure, err = strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", "false")); err != nil {
		err = fmt.Errorf("SESSION_COOKIE_SECURE: %w", err)
		return
	}

	// Task lifecycle config
	staleSeconds, err := getInt("STALE_TASK_SECONDS", "600")
	if err != nil {
		return
	}
	cfg.StaleTaskAfter = time.Duration(staleSeconds) * time.Second
	heartbeatSeconds, err := getInt("SSE_HEARTBEAT_SECONDS", "15")
	if err != nil {
		return
	}
	cfg.SSEHeartbeat = time.Duration(heartbeatSeconds) * time.Second
	cost, err := getInt("GENERATION_COST", "10")
	if err != nil {
		return
	}
	if cost <= 0 {
		err = fmt.Errorf("GENERATION_COST: must be positive, got %d", cost)
		return
	}
	cfg.GenerationCost = int64(cost)

	// gRPC health and CORS
	cfg.GRPCHealthPort = getEnv("GRPC_HEALTH_PORT", "50051")
	cfg.CORSOrigins = getList("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}

// run initializes the logger, database, notifier, Kafka writer, and the HTTP and gRPC health servers.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := repositories.Migrate(ctx, db); err != nil {
		return fmt.Errorf("PostgreSQL migration failed: %w", err)
	}

	// Choose the task event backend
	var notifier notify.Notifier
	switch cfg.NotifyBackend {
	case notifyRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		notifier = notify.NewRedisNotifier(rdb)
	default:
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("PostgreSQL listener pool error: %w", err)
		}
		defer pool.Close()
		notifier = notify.NewPGNotifier(db, pool)
	}
	logger.Log.Infow("Task event backend selected", "backend", cfg.NotifyBackend)

	// Ledger events go to Kafka only when brokers are configured
	var ledgerWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaLedgerTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		ledgerWriter = w
	}

	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	txGetter := transactor.GetTxFromContext
	tx := transactor.New(db)
	userRepo := repositories.NewUserReadRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	creditWriteRepo := repositories.NewCreditWriteRepository(db, txGetter)
	creditReadRepo := repositories.NewCreditReadRepository(db, txGetter)
	ledgerRepo := repositories.NewLedgerRepository(db, txGetter)
	taskRepo := repositories.NewTaskRepository(db, txGetter)
	wrapRepo := repositories.NewWrapReadRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, cfg.SessionTTL)
	creditService := services.NewCreditService(tx, creditWriteRepo, creditReadRepo, ledgerRepo, ledgerWriter)
	taskService := services.NewTaskService(tx, taskRepo, creditWriteRepo, creditReadRepo, ledgerRepo, wrapRepo, notifier, ledgerWriter, cfg.StaleTaskAfter)
	tracker := services.NewTracker(taskRepo, notifier)

	// Setup router
	handler := router.New(router.Config{
		Cookie:         handlers.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.SessionCookieSecure},
		GenerationCost: cfg.GenerationCost,
		Heartbeat:      cfg.SSEHeartbeat,
		AllowedOrigins: cfg.CORSOrigins,
		SwaggerURL:     fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort),
	}, router.Deps{
		Auth:       authService,
		Credits:    creditService,
		Tasks:      taskService,
		Tracker:    tracker,
		Subscriber: notifier,
		Tokener:    tokens,
	})
	docs.SwaggerInfo.Host = net.JoinHostPort(cfg.AppHost, cfg.AppPort)

	healthServer := health.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Graceful shutdown
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	g, gctx := errgroup.WithContext(ctxShutdown)

	// Event streams stay open, so there is no write timeout. Request contexts
	// derive from gctx and end together with the streams on shutdown.
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.AppHost, cfg.AppPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		addr := net.JoinHostPort(cfg.AppHost, cfg.GRPCHealthPort)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("gRPC health listener failed: %w", err)
		}
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		logger.Log.Infof("gRPC health server listening on %s", addr)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("gRPC health server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutdown signal received, stopping servers...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorw("HTTP server shutdown error", "error", err)
		}
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Log.Info("Servers stopped gracefully")
	return nil
}
