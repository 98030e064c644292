package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const authCookieName = "auth_token"

type contextKey string

const userIDKey contextKey = "user_id"

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// SetLoginCookie подписывает идентификатор аккаунта и ставит cookie сессии.
func SetLoginCookie(w http.ResponseWriter, userID, secret string) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
		UserID: userID,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
	})
	return nil
}

// WithAuth разбирает cookie сессии и кладёт идентификатор аккаунта в
// контекст. Отсутствие или невалидность cookie не отклоняет запрос:
// анонимный доступ — штатный режим (получатели файлов не имеют аккаунта);
// хендлеры сами решают, нужен ли им идентификатор.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(authCookieName)
			if err == nil {
				cl := &claims{}
				token, err := jwt.ParseWithClaims(c.Value, cl, func(t *jwt.Token) (interface{}, error) {
					return []byte(secret), nil
				})
				if err == nil && token.Valid && cl.UserID != "" {
					r = r.WithContext(context.WithValue(r.Context(), userIDKey, cl.UserID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserIDFromContext возвращает идентификатор аккаунта, положенный WithAuth.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}
