package model

import "errors"

// Единая классификация ошибок. Все слои заворачивают свои ошибки
// через fmt.Errorf("%w: ...") в один из этих sentinel-ов,
// а HTTP-слой по ним выбирает статус ответа.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)
