package cycle

import "errors"

var (
	// ErrCycleNotFound возвращается, когда велосипед не найден
	ErrCycleNotFound = errors.New("cycle.repository: cycle not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cycle.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cycle.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cycle.repository: failed to scan row")
)
