package search_cycles

import "errors"

var (
	// ErrLocationNotFound возвращается, когда точка проката не найдена
	ErrLocationNotFound = errors.New("search_cycles: location not found")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("search_cycles: invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("search_cycles: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("search_cycles: internal error")
)
