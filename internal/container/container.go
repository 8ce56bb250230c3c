package container

import (
	"sync"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mentorship-tracker/config"
	"github.com/oksasatya/go-mentorship-tracker/internal/domain/repository"
	"github.com/oksasatya/go-mentorship-tracker/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-mentorship-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-mentorship-tracker/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Clients left unset are optional: the router wires only what is present.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager
	hasher     *helpers.PasswordHasher

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client

	memOnce sync.Once
	memRepo *memory.UserRepository
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return logger
}
func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }
func SetRedis(r *redis.Client)  { redisClient = r }
func GetRedis() *redis.Client   { return redisClient }
func SetGCS(s *storage.Client)  { gcsClient = s }
func GetGCS() *storage.Client   { return gcsClient }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager == nil {
		c := GetConfig()
		jwtManager = helpers.NewJWTManager(c.JWTSecret, c.JWTExpire, c.JWTIssuer)
	}
	return jwtManager
}

func SetHasher(h *helpers.PasswordHasher) { hasher = h }
func GetHasher() *helpers.PasswordHasher {
	if hasher == nil {
		hasher = helpers.NewPasswordHasher(GetConfig().BcryptCost)
	}
	return hasher
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

// GetUserRepository returns the Postgres store when a pool is set and the
// process-wide in-memory store otherwise.
func GetUserRepository() repository.UserRepository {
	if pgPool != nil && GetConfig().StoreDriver != config.StoreMemory {
		return pginfra.NewUserRepository(pgPool)
	}
	memOnce.Do(func() { memRepo = memory.NewUserRepository() })
	return memRepo
}

// Reset clears every registered component.
func Reset() {
	cfg, logger, pgPool, redisClient, gcsClient = nil, nil, nil, nil, nil
	jwtManager, hasher, rabbitPub, esClient = nil, nil, nil, nil
	memOnce = sync.Once{}
	memRepo = nil
}
