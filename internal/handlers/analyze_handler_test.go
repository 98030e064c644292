package handlers_test

import (
	"CloudVault/internal/groq"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	router, classifier := newTestRouter(t)

	t.Run("ok", func(t *testing.T) {
		classifier.result = groq.Classification{Verdict: "Benign document.", Category: "Legal", RiskLevel: "Low"}
		classifier.err = nil

		rr := doJSON(t, router, http.MethodPost, "/api/analyze", map[string]string{"fileName": "nda.pdf", "fileType": "application/pdf"})
		assert.Equal(t, http.StatusOK, rr.Code)

		var body groq.Classification
		decodeBody(t, rr, &body)
		assert.Equal(t, "Legal", body.Category)
	})

	t.Run("classifier down degrades to default", func(t *testing.T) {
		classifier.err = errors.New("upstream timeout")

		rr := doJSON(t, router, http.MethodPost, "/api/analyze", map[string]string{"fileName": "nda.pdf", "fileType": "application/pdf"})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		// тело несёт безопасный дефолт, клиент продолжает загрузку с ним
		var body groq.Classification
		decodeBody(t, rr, &body)
		assert.Equal(t, groq.DefaultClassification(), body)
	})

	t.Run("missing file name", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/analyze", map[string]string{"fileType": "application/pdf"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
