package accessory

import "errors"

var (
	// ErrAccessoryNotFound возвращается, когда аксессуар не найден
	ErrAccessoryNotFound = errors.New("accessory.repository: accessory not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("accessory.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("accessory.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("accessory.repository: failed to scan row")
)
