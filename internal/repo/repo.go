package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrAlreadyExists     = errors.New("already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrTokenRevoked      = errors.New("token expired or revoked")
)

type GormRepo struct {
	DB *gorm.DB
}
