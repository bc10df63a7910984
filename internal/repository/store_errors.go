package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"file-sharing-server/internal/model"
	"file-sharing-server/internal/util"
)

const (
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
	pqSerializationFailure = "40001"
	pqInvalidTextRepr      = "22P02"
)

// storeError : приводит ошибку драйвера к таксономии model и логирует её
func storeError(message string, err error) error {
	var kind error
	var pqErr *pq.Error

	switch {
	case errors.Is(err, sql.ErrNoRows):
		kind = model.ErrNotFound
	case errors.As(err, &pqErr) && pqErr.Code == pqInvalidTextRepr:
		// строка, не являющаяся uuid, не может быть ключом ни одной записи
		kind = model.ErrNotFound
	case errors.As(err, &pqErr) && isConflictCode(pqErr.Code):
		kind = model.ErrConflict
	default:
		kind = model.ErrDependencyFailure
	}

	if kind == model.ErrNotFound {
		return fmt.Errorf("%s: %w: %w", message, kind, err)
	}
	return util.LogError(message, fmt.Errorf("%w: %w", kind, err))
}

// isConflictCode : нарушение уникальности, внешнего ключа или сериализации транзакций
func isConflictCode(code pq.ErrorCode) bool {
	return code == pqUniqueViolation || code == pqForeignKeyViolation || code == pqSerializationFailure
}

// malformedID : идентификатор, который не может храниться в колонке uuid
func malformedID(id string) bool {
	_, err := uuid.Parse(id)
	return err != nil
}
