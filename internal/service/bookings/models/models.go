package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/cycleaway/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID  uuid.UUID
	IsStaff bool
	Reason  string
}

// RescheduleBookingRequest запрос на изменение дат бронирования
type RescheduleBookingRequest struct {
	StartTime time.Time
	EndTime   time.Time
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID      uuid.UUID
	RequestedBy uuid.UUID
	IsStaff     bool
	Status      *string
}

// GetLocationBookingsRequest запрос на получение бронирований точки проката
type GetLocationBookingsRequest struct {
	LocationID      int64
	From            *time.Time
	To              *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetLocationBookingsRequest) ToDomainFilter() (domain.LocationBookingsFilter, error) {
	filter := domain.LocationBookingsFilter{
		LocationID:      r.LocationID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingAccessoryResponse аксессуар, прикреплённый к бронированию
type BookingAccessoryResponse struct {
	AccessoryID    int64   `json:"accessoryId"`
	Name           string  `json:"name"`
	PriceAtBooking float64 `json:"priceAtBooking"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64     `json:"id"`
	CycleID    int64     `json:"cycleId"`
	UserID     uuid.UUID `json:"userId"`
	LocationID int64     `json:"locationId"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`

	// Денормализованные данные
	CycleName   string  `json:"cycleName"`
	PricePerDay float64 `json:"pricePerDay"`
	TotalPrice  float64 `json:"totalPrice"`

	Accessories []BookingAccessoryResponse `json:"accessories"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CycleID:            b.CycleID,
		UserID:             b.UserID,
		LocationID:         b.LocationID,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             string(b.Status),
		CycleName:          b.CycleName,
		PricePerDay:        b.PricePerDay,
		TotalPrice:         b.TotalPrice,
		Accessories:        make([]BookingAccessoryResponse, 0, len(b.Accessories)),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	for _, a := range b.Accessories {
		resp.Accessories = append(resp.Accessories, BookingAccessoryResponse{
			AccessoryID:    a.AccessoryID,
			Name:           a.Name,
			PriceAtBooking: a.PriceAtBooking,
		})
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
