package inventory

import "errors"

var (
	// ErrCycleNotFound возвращается, когда велосипед не найден
	ErrCycleNotFound = errors.New("cycle not found")

	// ErrAccessoryNotFound возвращается, когда аксессуар не найден
	ErrAccessoryNotFound = errors.New("accessory not found")

	// ErrLocationNotFound возвращается, когда точка проката не найдена
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("inventory service: internal error")
)
