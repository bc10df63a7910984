package ports

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Transactor : открывает транзакцию, возвращает исполнителя и функции rollback/commit
type Transactor interface {
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// Store : пул соединений, через который сервисы выполняют чтения и открывают транзакции
type Store interface {
	sqlx.ExtContext
	Transactor
}
