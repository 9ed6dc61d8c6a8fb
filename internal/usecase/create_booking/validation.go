package create_booking

import (
	"fmt"
	"time"

	"github.com/cycleaway/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == nilUUID {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.CycleID <= 0 {
		return fmt.Errorf("%w: cycleID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	for _, id := range req.AccessoryIDs {
		if id <= 0 {
			return fmt.Errorf("%w: accessoryID must be positive", ErrInvalidInput)
		}
	}

	if hasDuplicates(req.AccessoryIDs) {
		return fmt.Errorf("%w: duplicate accessoryIDs", ErrInvalidInput)
	}

	return nil
}

// validateNotInPast проверяет, что аренда не начинается в прошлом.
// Сравниваем по дням, а не по моменту: бронирование "с сегодняшнего дня"
// допустимо в любое время суток.
func validateNotInPast(start, now time.Time) error {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if startDay.Before(nowDay) {
		return ErrDateInPast
	}
	return nil
}

// resolveAccessories сопоставляет запрошенные ID с загруженными
// аксессуарами. Репозиторий может вернуть меньше, чем запрошено -
// отсутствие хотя бы одного аксессуара является ошибкой.
func resolveAccessories(requested []int64, loaded []*domain.Accessory) ([]*domain.Accessory, error) {
	byID := make(map[int64]*domain.Accessory, len(loaded))
	for _, a := range loaded {
		byID[a.ID] = a
	}

	resolved := make([]*domain.Accessory, 0, len(requested))
	for _, id := range requested {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrAccessoryNotFound, id)
		}
		resolved = append(resolved, a)
	}

	return resolved, nil
}

func hasDuplicates(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
