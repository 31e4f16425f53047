package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	// HeaderUserID идентификатор пользователя, проставляется gateway после аутентификации
	HeaderUserID = "X-User-ID"

	// HeaderUserRole роль пользователя (client, provider, admin), проставляется gateway
	HeaderUserRole = "X-User-Role"
)

type ctxKey int

const actorKey ctxKey = iota

const (
	msgUnauthenticated = "требуется аутентификация"
	msgUnknownRole     = "неизвестная роль пользователя"
)

// Auth requires the identity headers set by the auth gateway.
// Session issuance itself is an external collaborator; this service only
// trusts the already-authenticated identity.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}

		// Отсутствие роли трактуем как обычного клиента
		role := domain.Role(r.Header.Get(HeaderUserRole))
		if role == "" {
			role = domain.RoleClient
		}
		if !domain.ValidRole(role) {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnknownRole)
			return
		}

		actor := domain.Actor{ID: userID, Role: role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

// GetActor извлекает актора запроса из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	return actor.ID, ok
}
