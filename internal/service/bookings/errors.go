package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrLocationNotFound возвращается, когда точка проката не найдена
	ErrLocationNotFound = errors.New("location not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrIllegalTransition возвращается при недопустимом переходе статуса.
	// Жизненный цикл движется только вперед: confirmed → active →
	// complete, либо confirmed → cancelled.
	ErrIllegalTransition = errors.New("illegal booking status transition")

	// ErrNotReschedulable возвращается при попытке изменить даты
	// бронирования, которое уже не в статусе confirmed
	ErrNotReschedulable = errors.New("booking dates can no longer be edited")

	// ErrDateConflict возвращается, когда новые даты пересекаются с
	// другим occupying-бронированием того же велосипеда
	ErrDateConflict = errors.New("requested dates conflict with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
