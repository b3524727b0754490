package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cse-dept/cms-api/config"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage is the database handle injected into handlers and jobs
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck(ctx context.Context) error

	// GORM DB access
	GetDB() *gorm.DB
}

type GORMStore struct {
	db *gorm.DB
}

// PoolConfig bounds the underlying *sql.DB pool
type PoolConfig struct {
	MaxOpenConns   int
	AcquireTimeout time.Duration
	IdleTimeout    time.Duration
}

// StartGORM opens the database selected by DB_DRIVER and verifies it answers
func StartGORM(env *config.EnvironmentVariable) (*GORMStore, error) {
	dialector, err := Dialector(env)
	if err != nil {
		return nil, err
	}

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if env.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	store, err := Open(dialector, gormLogger, PoolConfig{
		MaxOpenConns:   env.DB_MAX_OPEN_CONNS,
		AcquireTimeout: env.DB_ACQUIRE_TIMEOUT,
		IdleTimeout:    env.DB_IDLE_TIMEOUT,
	})
	if err != nil {
		log.Printf("Unable to connect to %s with GORM: %v", env.DB_DRIVER, err)
		return nil, err
	}

	log.Printf("Successfully connected to %s database with GORM.", env.DB_DRIVER)
	return store, nil
}

// Dialector builds the GORM dialector for the configured driver
func Dialector(env *config.EnvironmentVariable) (gorm.Dialector, error) {
	switch env.DB_DRIVER {
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			env.DB_USER,
			env.DB_PASS,
			env.DB_HOST,
			env.DB_PORT,
			env.DB_NAME,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			env.DB_HOST,
			env.DB_USER,
			env.DB_PASS,
			env.DB_NAME,
			env.DB_PORT,
			env.DB_SSL_MODE,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		// DB_NAME is the file path; foreign keys must be on for cascades
		return sqlite.Open(env.DB_NAME + "?_pragma=foreign_keys(1)"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DB_DRIVER)
	}
}

// Open connects with the given dialector and applies the pool bounds
func Open(dialector gorm.Dialector, gormLogger logger.Interface, pool PoolConfig) (*GORMStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		TranslateError:         true, // unique/fk violations surface as gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated
	})
	if err != nil {
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
		sqlDB.SetMaxIdleConns(pool.MaxOpenConns)
	}
	if pool.IdleTimeout > 0 {
		sqlDB.SetConnMaxIdleTime(pool.IdleTimeout)
	}

	store := &GORMStore{db: db}

	timeout := pool.AcquireTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := store.HealthCheck(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return store, nil
}

// NewGORMStore wraps an already opened connection
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	return Up(s.db)
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM database connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in handlers
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
