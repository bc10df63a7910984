package service

import (
	"errors"

	"file-sharing-server/internal/model"
)

func isNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
