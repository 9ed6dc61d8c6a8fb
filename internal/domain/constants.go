package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxCancellationReasonLength = 500
	MaxCycleNameLength          = 200
	MaxAccessoryNameLength      = 200
	MaxLocationNameLength       = 200
)

// OccupyingStatuses список статусов, при которых бронирование занимает
// велосипед на свой диапазон дат. Это единственное место, где этот
// набор определён: проверка доступности, поиск свободных велосипедов и
// exclusion constraint в схеме БД обязаны использовать ровно его.
// Завершённые (complete) бронирования велосипед не занимают.
var OccupyingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusActive,
}

// TerminalStatuses список конечных статусов бронирования
var TerminalStatuses = []BookingStatus{
	StatusComplete,
	StatusCancelled,
}

// AllStatuses список всех допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusConfirmed,
	StatusActive,
	StatusComplete,
	StatusCancelled,
}

// OccupyingStatusStrings возвращает occupying-статусы строками для SQL фильтров
func OccupyingStatusStrings() []string {
	out := make([]string, len(OccupyingStatuses))
	for i, s := range OccupyingStatuses {
		out[i] = string(s)
	}
	return out
}

// ParseBookingStatus валидирует строку и конвертирует её в BookingStatus
func ParseBookingStatus(status string) (BookingStatus, bool) {
	s := BookingStatus(status)
	for _, valid := range AllStatuses {
		if s == valid {
			return s, true
		}
	}
	return "", false
}
