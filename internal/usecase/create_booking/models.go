package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID       uuid.UUID // ID пользователя
	CycleID      int64     // ID велосипеда
	StartTime    time.Time // Начало аренды (включительно)
	EndTime      time.Time // Конец аренды (исключительно)
	AccessoryIDs []int64   // ID аксессуаров (опционально)
}

// AccessoryItem аксессуар в составе созданного бронирования
type AccessoryItem struct {
	AccessoryID    int64
	Name           string
	PriceAtBooking float64
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	CycleID    int64
	UserID     uuid.UUID
	LocationID int64
	StartTime  time.Time
	EndTime    time.Time
	Status     string

	// Денормализованные данные
	CycleName   string
	PricePerDay float64
	TotalPrice  float64

	Accessories []AccessoryItem

	CreatedAt time.Time
	UpdatedAt time.Time
}
