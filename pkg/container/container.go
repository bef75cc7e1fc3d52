package container

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"bloghub-backend/internal/config"
	authHandler "bloghub-backend/internal/domains/auth/handler"
	authRepo "bloghub-backend/internal/domains/auth/repository"
	authService "bloghub-backend/internal/domains/auth/service"
	"bloghub-backend/internal/domains/auth/session"
	blogHandler "bloghub-backend/internal/domains/blog/handler"
	"bloghub-backend/internal/domains/blog/job"
	blogRepo "bloghub-backend/internal/domains/blog/repository"
	blogService "bloghub-backend/internal/domains/blog/service"
	"bloghub-backend/internal/domains/media"
	mediaHandler "bloghub-backend/internal/domains/media/handler"
	infraCache "bloghub-backend/internal/infrastructure/cache"
	"bloghub-backend/internal/infrastructure/database"
	"bloghub-backend/internal/infrastructure/queue"
	"bloghub-backend/internal/infrastructure/storage"
	"bloghub-backend/internal/shared"
	"bloghub-backend/internal/shared/metrics"
	"bloghub-backend/pkg/cache"
	"bloghub-backend/pkg/jwt"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container là root của dependency graph. Hai driver:
//   - postgres: pgx + Redis + MinIO + asynq client
//   - memory:   in-process repos, cache, storage; purge chạy inline
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB // nil khi driver=memory
	Cache       cache.Cache
	Storage     storage.ObjectStorage
	MediaStore  *storage.MemoryStorage // chỉ set khi driver=memory, API serve /media/*key
	AsynqClient *asynq.Client          // nil khi driver=memory
	Enqueuer    queue.Enqueuer
	JWTManager  *jwt.Manager
	Metrics     *metrics.Metrics
	Sessions    *session.Manager

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	AuthRepo    authRepo.Repository
	BlogRepo    blogRepo.BlogRepository
	CommentRepo blogRepo.CommentRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	AuthService authService.Service
	BlogService blogService.Service
	Uploader    *media.Uploader

	// ========================================
	// HANDLER LAYER
	// ========================================
	AuthHandler      *authHandler.AuthHandler
	BlogHandler      *blogHandler.BlogHandler
	AdminBlogHandler *blogHandler.AdminBlogHandler
	UploadHandler    *mediaHandler.UploadHandler

	// Job handlers (worker + inline enqueuer)
	PurgeImagesHandler *job.PurgeImagesHandler

	healthChecks []HealthCheck
}

// HealthCheck is one named dependency probe reported by /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer build toàn bộ dependency graph theo thứ tự:
// infrastructure -> repositories -> services -> handlers.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("driver", cfg.Store.Driver).Msg("[CONTAINER] Initializing")

	c := &Container{
		Config:     cfg,
		JWTManager: jwt.NewManager(cfg.JWT.Secret),
		Metrics:    metrics.New(),
	}

	var err error
	switch cfg.Store.Driver {
	case DriverMemory:
		err = c.initMemoryInfrastructure()
	default:
		err = c.initPostgresInfrastructure(ctx)
	}
	if err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initServices()
	c.initHandlers()

	log.Info().Msg("[CONTAINER] Initialized")
	return c, nil
}

// ========================================
// INFRASTRUCTURE
// ========================================

func (c *Container) initPostgresInfrastructure(ctx context.Context) error {
	cfg := c.Config

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := database.Migrate(dbConfig); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Session store sống trên Redis nên Redis là critical
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	c.Enqueuer = queue.NewAsynqEnqueuer(c.AsynqClient)
	c.PurgeImagesHandler = job.NewPurgeImagesHandler(c.Storage)

	c.AuthRepo = authRepo.NewPostgresRepository(db.Pool)
	c.BlogRepo = blogRepo.NewPostgresBlogRepository(db.Pool)
	c.CommentRepo = blogRepo.NewPostgresCommentRepository(db.Pool)

	c.healthChecks = []HealthCheck{
		{Name: "database", Check: db.HealthCheck},
		{Name: "redis", Check: redisCache.Ping},
		{Name: "storage", Check: minioStorage.Ping},
	}
	return nil
}

func (c *Container) initMemoryInfrastructure() error {
	log.Warn().Msg("[CONTAINER] STORE_DRIVER=memory, data is lost on restart")

	memCache := infraCache.NewMemoryCache()
	c.Cache = memCache

	c.MediaStore = storage.NewMemoryStorage(memoryMediaBaseURL(c.Config))
	c.Storage = c.MediaStore

	c.PurgeImagesHandler = job.NewPurgeImagesHandler(c.Storage)
	c.Enqueuer = queue.NewInlineEnqueuer(c.PurgeImagesHandler)

	accounts := authRepo.NewMemoryRepository()
	c.AuthRepo = accounts

	blogs := blogRepo.NewMemoryStore(func(ctx context.Context, id uuid.UUID) (shared.AuthorInfo, error) {
		p, err := accounts.GetProfile(ctx, id)
		if err != nil {
			return shared.AuthorInfo{}, err
		}
		return p.Author(), nil
	})
	c.BlogRepo = blogs.Blogs()
	c.CommentRepo = blogs.Comments()

	c.healthChecks = []HealthCheck{
		{Name: "cache", Check: memCache.Ping},
	}
	return nil
}

// memoryMediaBaseURL: uploads được serve bởi chính API dưới /media
func memoryMediaBaseURL(cfg *config.Config) string {
	if cfg.Storage.PublicBaseURL != "" {
		return cfg.Storage.PublicBaseURL
	}
	return fmt.Sprintf("http://localhost:%s/media", cfg.App.Port)
}

// ========================================
// SERVICES & HANDLERS
// ========================================

func (c *Container) initServices() {
	cfg := c.Config

	ttl := time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute
	c.Sessions = session.NewManager(session.NewStore(c.Cache), ttl)

	c.AuthService = authService.NewAuthService(c.AuthRepo, c.Sessions, c.JWTManager, cfg.Auth.AdminEmails)

	slugs := blogService.NewSlugResolver(c.BlogRepo, cfg.Slug.MaxAttempts)
	c.BlogService = blogService.NewBlogService(c.BlogRepo, c.CommentRepo, slugs, c.Enqueuer, c.Metrics)

	c.Uploader = media.NewUploader(c.Storage, storage.NewImageProcessor(cfg.Upload.MaxWidth), cfg.Upload, c.Metrics)
}

func (c *Container) initHandlers() {
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService)
	c.AdminBlogHandler = blogHandler.NewAdminBlogHandler(c.BlogService)
	c.UploadHandler = mediaHandler.NewUploadHandler(c.Uploader, c.Config.Upload.MaxBytes)
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// Health runs every dependency probe and returns the failures by name.
func (c *Container) Health(ctx context.Context) map[string]string {
	failures := make(map[string]string)
	for _, hc := range c.healthChecks {
		if err := hc.Check(ctx); err != nil {
			failures[hc.Name] = err.Error()
		}
	}
	return failures
}

// Cleanup dọn dẹp resources khi shutdown. Safe với container build dở.
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] Cleaning up resources")

	if c.Sessions != nil {
		c.Sessions.Shutdown()
	}

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close asynq client")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] Failed to close Redis")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
}
