package handlers

import (
	"CloudVault/internal/groq"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Classifier — внешний анализатор файлов; интерфейс нужен для подмены в
// тестах.
type Classifier interface {
	Analyze(ctx context.Context, fileName, fileType string) (groq.Classification, error)
}

// AnalyzeHandler проксирует классификацию файла внешнему сервису.
type AnalyzeHandler struct {
	classifier Classifier
	logger     *zap.SugaredLogger
}

func NewAnalyzeHandler(classifier Classifier, logger *zap.SugaredLogger) *AnalyzeHandler {
	return &AnalyzeHandler{classifier: classifier, logger: logger}
}

type analyzeBody struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// Analyze возвращает вердикт классификатора. Сбой анализатора не блокирует
// загрузку: ответ 500 несёт безопасную дефолтную классификацию, и клиент
// продолжает с ней.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.FileName == "" {
		writeError(w, http.StatusBadRequest, "fileName is required")
		return
	}

	result, err := h.classifier.Analyze(r.Context(), body.FileName, body.FileType)
	if err != nil {
		h.logger.Warnw("file classification failed", "file", body.FileName, "error", err)
		writeJSON(w, http.StatusInternalServerError, groq.DefaultClassification())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
