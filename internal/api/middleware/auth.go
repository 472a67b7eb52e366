package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-RoomAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomAllocationService/internal/domain"
)

// Заголовки, которые проставляет шлюз после аутентификации
const (
	HeaderUserID         = "X-User-ID"
	HeaderUserName       = "X-User-Name"
	HeaderUserDepartment = "X-User-Department"
)

const msgMissingUserID = "отсутствует заголовок X-User-ID"

type contextKey string

const (
	userIDKey     contextKey = "user_id"
	userNameKey   contextKey = "user_name"
	departmentKey contextKey = "user_department"
)

// Auth требует X-User-ID и кладет данные автора запроса в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		if name := strings.TrimSpace(r.Header.Get(HeaderUserName)); name != "" {
			ctx = context.WithValue(ctx, userNameKey, name)
		}
		if dept := strings.TrimSpace(r.Header.Get(HeaderUserDepartment)); dept != "" {
			ctx = context.WithValue(ctx, departmentKey, dept)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает UID автора запроса из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetRequester возвращает автора запроса, имя может быть пустым
func GetRequester(ctx context.Context) (domain.Requester, bool) {
	userID, ok := GetUserID(ctx)
	if !ok {
		return domain.Requester{}, false
	}
	name, _ := ctx.Value(userNameKey).(string)
	return domain.Requester{UID: userID, Name: name}, true
}

// GetDepartment возвращает кафедру из заголовка, если она передана
func GetDepartment(ctx context.Context) string {
	dept, _ := ctx.Value(departmentKey).(string)
	return dept
}
