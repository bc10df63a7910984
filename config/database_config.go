package config

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"file-sharing-server/internal/util"
)

type Database struct {
	*sqlx.DB
}

func NewDatabaseConnection(dbDriver string, dbConnectionStr string) (*Database, error) {
	database, err := sqlx.Connect(dbDriver, dbConnectionStr)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка пинга БД: %w", err)
	}

	util.Logger().Info("Подключение к БД успешно выполнено")
	return &Database{
		database,
	}, nil
}

// BeginTX : возвращает транзакцию и функции отката и фиксации.
// Откат после фиксации безопасен и возвращает sql.ErrTxDone.
func (db *Database) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ошибка открытия транзакции: %w", err)
	}
	return tx, tx.Rollback, tx.Commit, nil
}

func (db *Database) Close() error {
	err := db.DB.Close()
	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения с БД: %w", err)
	}

	return nil
}

type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg *RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ошибка пинга Redis: %w", err)
	}

	util.Logger().Info("Подключение к Redis успешно выполнено", zap.String("addr", cfg.Addr))
	return &RedisClient{Client: client}, nil
}

func (r *RedisClient) Close() error {
	if err := r.Client.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия соединения с Redis: %w", err)
	}
	return nil
}
