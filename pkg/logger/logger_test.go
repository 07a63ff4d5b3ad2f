package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/branch-analytics/pkg/logger"
)

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("descartado por nivel")
	l.Component("risk").Warn().Int64("branch_id", 9).Msg("sucursal omitida")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "una sola línea JSON")
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "risk", entry["component"])
	assert.Equal(t, float64(9), entry["branch_id"])
	assert.Equal(t, "sucursal omitida", entry["message"])
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "verbose", Output: &buf})

	l.Debug().Msg("no")
	l.Info().Msg("si")
	assert.Contains(t, buf.String(), `"message":"si"`)
	assert.NotContains(t, buf.String(), `"message":"no"`)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Component("x").Error().Msg("nada") })
}
