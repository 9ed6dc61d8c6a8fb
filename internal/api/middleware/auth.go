package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/cycleaway/booking-service/internal/api/handlers"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	staffKey  contextKey = "isStaff"

	// HeaderUserID заголовок с ID пользователя, проставляется API gateway
	HeaderUserID = "X-User-ID"
	// HeaderStaff заголовок, помечающий запрос персонала
	HeaderStaff = "X-Staff"
)

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный формат X-User-ID, ожидается UUID"
	msgStaffOnly     = "операция доступна только персоналу"
)

// Auth извлекает идентификатор пользователя из заголовка X-User-ID и
// флаг персонала из X-Staff. Аутентификацию как таковую выполняет
// вышестоящий gateway, сервис доверяет заголовкам.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := uuid.Parse(rawID)
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		isStaff, _ := strconv.ParseBool(r.Header.Get(HeaderStaff))

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, staffKey, isStaff)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff пропускает только запросы персонала. Вешается после Auth.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			handlers.RespondForbidden(w, msgStaffOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// IsStaff возвращает true, если запрос пришёл от персонала
func IsStaff(ctx context.Context) bool {
	staff, ok := ctx.Value(staffKey).(bool)
	return ok && staff
}
