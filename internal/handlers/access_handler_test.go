package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccess_Workflow(t *testing.T) {
	router, _ := newTestRouter(t)
	account := registerAccount(t, router, "workflow@example.com")
	ownerID := account["id"].(string)
	fileID := saveFile(t, router, ownerID, "secret.docx")

	var requestID string

	t.Run("create with undefined owner", func(t *testing.T) {
		// клиент не знает владельца и шлёт сентинел — владелец берётся из файла
		rr := doJSON(t, router, http.MethodPost, "/api/access-requests", map[string]string{
			"fileId": fileID, "ownerId": "undefined", "requesterKey": "AB12CD34",
		})
		assert.Equal(t, http.StatusCreated, rr.Code)

		var req map[string]any
		decodeBody(t, rr, &req)
		assert.Equal(t, "pending", req["status"])
		assert.Equal(t, ownerID, req["ownerId"])
		assert.Equal(t, "secret.docx", req["fileName"])
		requestID = req["id"].(string)
	})

	t.Run("pending listing", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/access-requests/"+ownerID, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		var list []map[string]any
		decodeBody(t, rr, &list)
		assert.Len(t, list, 1)
		assert.Equal(t, "secret.docx", list[0]["fileName"])
	})

	t.Run("approval gate closed before decision", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/check-approval", map[string]string{
			"fileId": fileID, "requesterKey": "AB12CD34",
		})
		assert.Equal(t, http.StatusOK, rr.Code)
		var body map[string]bool
		decodeBody(t, rr, &body)
		assert.False(t, body["approved"])
	})

	t.Run("approve", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPatch, "/api/access-requests/"+requestID, map[string]string{"status": "approved"})
		assert.Equal(t, http.StatusOK, rr.Code)
		var req map[string]any
		decodeBody(t, rr, &req)
		assert.Equal(t, "approved", req["status"])
	})

	t.Run("approval gate open after decision", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/check-approval", map[string]string{
			"fileId": fileID, "requesterKey": "AB12CD34",
		})
		var body map[string]bool
		decodeBody(t, rr, &body)
		assert.True(t, body["approved"])

		// другой ключ к тому же файлу не проходит
		rr = doJSON(t, router, http.MethodPost, "/api/check-approval", map[string]string{
			"fileId": fileID, "requesterKey": "FFFFFFFF",
		})
		decodeBody(t, rr, &body)
		assert.False(t, body["approved"])
	})

	t.Run("terminal status is final", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPatch, "/api/access-requests/"+requestID, map[string]string{"status": "denied"})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("resolved request leaves pending list", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/access-requests/"+ownerID, nil)
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}

func TestAccess_CreateErrors(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("unknown file", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/access-requests", map[string]string{
			"fileId": "11111111-2222-4333-8444-555555555555", "ownerId": "undefined", "requesterKey": "AB12CD34",
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("missing requester key", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/access-requests", map[string]string{"fileId": "x"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAccess_UpdateStatusErrors(t *testing.T) {
	router, _ := newTestRouter(t)
	account := registerAccount(t, router, "errors@example.com")
	fileID := saveFile(t, router, account["id"].(string), "f.txt")

	rr := doJSON(t, router, http.MethodPost, "/api/access-requests", map[string]string{
		"fileId": fileID, "requesterKey": "AB12CD34",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)
	var req map[string]any
	decodeBody(t, rr, &req)

	t.Run("invalid status", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPatch, "/api/access-requests/"+req["id"].(string), map[string]string{"status": "pending"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown request", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPatch, "/api/access-requests/ghost", map[string]string{"status": "approved"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
