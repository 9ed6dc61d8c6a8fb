package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDateConflict возвращается, когда вставка или изменение дат
	// нарушает exclusion constraint по пересечению occupying-диапазонов
	ErrDateConflict = errors.New("booking.repository: overlapping occupying booking")

	// ErrStatusConflict возвращается, когда CAS-обновление статуса не
	// прошло: бронирование существует, но его текущий статус не равен ожидаемому
	ErrStatusConflict = errors.New("booking.repository: booking is not in the expected status")

	// ErrCompensationFailed возвращается, когда не удалось удалить
	// бронирование после сбоя вставки аксессуаров (вне транзакции)
	ErrCompensationFailed = errors.New("booking.repository: failed to compensate partially created booking")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
