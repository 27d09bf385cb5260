package logging_test

import (
	"log/slog"
	"testing"

	"github.com/lmittmann/tint"
	"github.com/stretchr/testify/assert"

	"github.com/GOMI-PAYMENTS-INC/credot-api/pkg/logging"
)

func TestSetup_ProductionUsesJSONHandler(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")

	logger := logging.Setup()

	_, ok := logger.Handler().(*slog.JSONHandler)
	assert.True(t, ok, "expected a JSON handler in production")
}

func TestSetup_DevelopmentUsesTintHandler(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "")

	logger := logging.Setup()

	_, ok := logger.Handler().(*slog.JSONHandler)
	assert.False(t, ok, "expected the tint handler outside production")
	assert.IsType(t, tint.NewHandler(nil, nil), logger.Handler())
}
