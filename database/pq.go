package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
	"github.com/sahilchouksey/research-portal-api/config"
)

// Storage defines the lifecycle every database implementation satisfies.
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error
}

// PostgreSQLStore is the raw SQL access path used by the entity
// repositories and the analytics aggregations.
type PostgreSQLStore struct {
	db *sql.DB
}

func Start() (*PostgreSQLStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	sslMode := getEnv.DB_SSL_MODE
	if sslMode == "" {
		sslMode = "disable"
	}

	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=2",
		getEnv.DB_HOST,
		getEnv.DB_PORT,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		sslMode,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		log.Println("Unable to start PostgreSQL database:", err)
		return nil, err
	}

	// Connection pool settings; requests beyond the ceiling queue for a
	// free connection and fail their operation on timeout.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(30 * time.Second)

	log.Println("Successfully connected to PostgreSQL Database.")
	return &PostgreSQLStore{
		db: db,
	}, nil
}

// DB exposes the pooled handle to the entity handlers.
func (s *PostgreSQLStore) DB() *sql.DB {
	return s.db
}

func (s *PostgreSQLStore) Init() error {
	log.Println("Initializing PostgreSQL Database.")
	return s.Initialize()
}

func (s *PostgreSQLStore) Close() error {
	log.Println("Closing PostgreSQL Database.")
	return s.db.Close()
}

// HealthCheck verifies the database connection is alive
func (s *PostgreSQLStore) HealthCheck() error {
	return s.db.Ping()
}
