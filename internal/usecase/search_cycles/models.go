package search_cycles

import "time"

// Request модель запроса на поиск свободных велосипедов
type Request struct {
	LocationID int64     // ID точки проката
	StartTime  time.Time // Начало желаемого периода аренды
	EndTime    time.Time // Конец желаемого периода аренды
	Category   *string   // Фильтр по категории (опционально)
}

// CycleItem свободный велосипед в результатах поиска
type CycleItem struct {
	ID          int64
	Name        string
	Category    string
	PricePerDay float64
	TotalPrice  float64 // стоимость аренды на запрошенный период, без аксессуаров
	ImageURL    *string
}

// Response модель ответа со списком свободных велосипедов
type Response struct {
	LocationID int64
	StartTime  time.Time
	EndTime    time.Time
	Cycles     []CycleItem
}
