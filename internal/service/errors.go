package service

import "errors"

// Ошибки уровня бизнес-логики. Хендлеры переводят их в HTTP-статусы;
// отсутствие записи распространяется как repo.ErrNotFound.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOwnerID     = errors.New("invalid owner id")
	ErrInvalidStatus      = errors.New("invalid request status")
	ErrRequestResolved    = errors.New("request already resolved")
)
