package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"commanders-backend/internal/config"
	infraCache "commanders-backend/internal/infrastructure/cache"
	"commanders-backend/internal/infrastructure/database"
	"commanders-backend/internal/infrastructure/email"
	"commanders-backend/internal/infrastructure/storage"
	"commanders-backend/pkg/cache"
	"commanders-backend/pkg/jwt"

	"commanders-backend/internal/domains/auth"
	authHandler "commanders-backend/internal/domains/auth/handler"
	authService "commanders-backend/internal/domains/auth/service"
	"commanders-backend/internal/domains/card"
	cardHandler "commanders-backend/internal/domains/card/handler"
	cardRepo "commanders-backend/internal/domains/card/repository"
	cardService "commanders-backend/internal/domains/card/service"
	"commanders-backend/internal/domains/proposal"
	proposalHandler "commanders-backend/internal/domains/proposal/handler"
	proposalRepo "commanders-backend/internal/domains/proposal/repository"
	proposalService "commanders-backend/internal/domains/proposal/service"
	"commanders-backend/internal/domains/settings"
	settingsHandler "commanders-backend/internal/domains/settings/handler"
	settingsRepo "commanders-backend/internal/domains/settings/repository"
	settingsService "commanders-backend/internal/domains/settings/service"
)

// Container chứa toàn bộ dependency graph của application.
// Khởi tạo theo thứ tự: config → infrastructure → repositories →
// services → handlers. Sai thứ tự → nil pointer.
type Container struct {
	// Infrastructure (singleton, shared giữa các domain)
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Images      storage.ImageStorage
	Processor   *storage.ImageProcessor
	AsynqClient *asynq.Client
	Notifier    *email.Notifier

	// Repositories
	CardRepo     card.CardRepository
	ProposalRepo proposal.ProposalRepository
	SettingsRepo settings.SettingsRepository

	// Services
	CardService     card.CardService
	ProposalService proposal.ProposalService
	SettingsService settings.SettingsService
	AuthService     auth.AuthService

	// Handlers
	CardHandler     *cardHandler.CardHandler
	ProposalHandler *proposalHandler.ProposalHandler
	SettingsHandler *settingsHandler.SettingsHandler
	AuthHandler     *authHandler.AuthHandler
}

func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// Step 1: config
	log.Println("📋 Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: database
	log.Println("🗄️  Connecting to PostgreSQL...")
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// Step 3: redis cache
	log.Println("🔴 Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		// Redis failure không critical - gallery cache degrade về DB reads
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Step 4: image storage + processor
	log.Printf("🖼️  Initializing image storage (driver: %s)...", cfg.Storage.Driver)
	images, err := storage.NewImageStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to init image storage: %w", err)
	}
	c.Images = images
	c.Processor = storage.NewImageProcessor(cfg.Upload.MaxSizeBytes, cfg.Upload.MaxEdgePx)
	log.Println("✅ Image storage ready")

	// Step 5: asynq client + notifier (fire-and-forget email)
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	c.Notifier = email.NewNotifier(c.AsynqClient)

	// Step 6: repositories
	log.Println("📦 Initializing repositories...")
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// Step 7: services
	log.Println("⚙️  Initializing services...")
	c.initServices()
	log.Println("✅ Services initialized")

	// Step 8: handlers
	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CardRepo = cardRepo.NewPostgresRepository(pool)
	c.ProposalRepo = proposalRepo.NewPostgresRepository(pool)
	c.SettingsRepo = settingsRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.SettingsService = settingsService.NewSettingsService(c.SettingsRepo, c.Config.Admin.ContactEmail)

	c.CardService = cardService.NewCardService(c.CardRepo, c.Images, c.Processor, c.Cache)

	// Proposal service dùng cross-domain deps: card repo (derive Card khi
	// approve) và settings service (notification recipient)
	c.ProposalService = proposalService.NewProposalService(
		c.ProposalRepo,
		c.CardRepo,
		c.Images,
		c.Processor,
		c.Notifier,
		c.SettingsService,
		c.Cache,
	)

	c.AuthService = authService.NewAuthService(c.Config.Admin, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.CardHandler = cardHandler.NewCardHandler(c.CardService)
	c.ProposalHandler = proposalHandler.NewProposalHandler(c.ProposalService)
	c.SettingsHandler = settingsHandler.NewSettingsHandler(c.SettingsService)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
}

// Cleanup đóng các connection khi shutdown, ngược thứ tự init
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis client: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Cleanup completed")
}
