package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifications_FromAccessRequest(t *testing.T) {
	router, _ := newTestRouter(t)
	account := registerAccount(t, router, "notify@example.com")
	ownerID := account["id"].(string)
	fileID := saveFile(t, router, ownerID, "contract.pdf")

	rr := doJSON(t, router, http.MethodPost, "/api/access-requests", map[string]string{
		"fileId": fileID, "requesterKey": "AB12CD34",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var notifications []map[string]any

	t.Run("created alongside request", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/notifications/"+ownerID, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		decodeBody(t, rr, &notifications)
		assert.Len(t, notifications, 1)
		assert.Equal(t, "Decryption Request", notifications[0]["title"])
		assert.Equal(t, "alert", notifications[0]["type"])
		assert.Equal(t, false, notifications[0]["isRead"])
		assert.Contains(t, notifications[0]["message"], "AB12CD34")
		assert.Contains(t, notifications[0]["message"], "contract.pdf")
	})

	t.Run("mark read", func(t *testing.T) {
		id := notifications[0]["id"].(string)
		rr := doJSON(t, router, http.MethodPatch, "/api/notifications/"+id, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		var n map[string]any
		decodeBody(t, rr, &n)
		assert.Equal(t, true, n["isRead"])
	})

	t.Run("mark read unknown id", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPatch, "/api/notifications/ghost", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("empty list for other user", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/notifications/someone-else", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}
