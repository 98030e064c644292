package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShare_Resolve(t *testing.T) {
	router, _ := newTestRouter(t)

	account := registerAccount(t, router, "owner@example.com")
	ownerID := account["id"].(string)
	key := account["shareKey"].(string)
	saveFile(t, router, ownerID, "report.pdf")

	t.Run("known key", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/shared-files/"+key, nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Owner struct {
				ID       string `json:"id"`
				Username string `json:"username"`
			} `json:"owner"`
			Files []struct {
				Name string `json:"name"`
			} `json:"files"`
		}
		decodeBody(t, rr, &body)
		assert.Equal(t, ownerID, body.Owner.ID)
		assert.Equal(t, "owner", body.Owner.Username)
		assert.Len(t, body.Files, 1)
		assert.Equal(t, "report.pdf", body.Files[0].Name)
	})

	t.Run("lowercase key normalized", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/shared-files/"+strings.ToLower(key), nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown key", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/shared-files/DEADBEEF", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("stale key after login", func(t *testing.T) {
		// логин ротирует соль: старый ключ перестаёт разрешаться
		loginRR := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{"email": "owner@example.com", "password": "pw"})
		assert.Equal(t, http.StatusOK, loginRR.Code)
		var fresh map[string]any
		decodeBody(t, loginRR, &fresh)

		rr := doJSON(t, router, http.MethodGet, "/api/shared-files/"+key, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)

		rr = doJSON(t, router, http.MethodGet, "/api/shared-files/"+fresh["shareKey"].(string), nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
