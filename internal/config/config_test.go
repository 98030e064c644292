package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// NewConfig можно вызвать только один раз на процесс (flag.Parse),
// поэтому все проверки дефолтов собраны в одном тесте.
func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "localhost:5000", cfg.BaseURL)
	assert.Equal(t, "dev-secret-key", cfg.AuthSecret)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.GroqModel)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.NotEmpty(t, cfg.FallbackDBPath)
}
