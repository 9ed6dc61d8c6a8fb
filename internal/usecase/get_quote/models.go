package get_quote

import "time"

// Request модель запроса на расчёт стоимости аренды
type Request struct {
	CycleID      int64     // ID велосипеда
	StartTime    time.Time // Начало аренды
	EndTime      time.Time // Конец аренды
	AccessoryIDs []int64   // ID аксессуаров (опционально)
}

// AccessoryQuote аксессуар в составе расчёта
type AccessoryQuote struct {
	AccessoryID int64
	Name        string
	Price       float64
}

// Response модель ответа с расчётом стоимости.
// Расчёт ни к чему не обязывает: цены фиксируются только при создании
// бронирования.
type Response struct {
	CycleID     int64
	CycleName   string
	Days        int
	PricePerDay float64
	CyclePrice  float64 // Days * PricePerDay
	Accessories []AccessoryQuote
	TotalPrice  float64
}
