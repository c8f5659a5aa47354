package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	zl := New(Config{Env: "production", Level: "info", Out: &buf})

	zl.Debug().Msg("hidden")
	zl.Info().Str("k", "v").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "v", line["k"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)

	h := RequestLogger(zl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/calculate", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http_request", line["message"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/api/calculate", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.EqualValues(t, len("short and stout"), line["bytes"])
}

func TestGoosePrintf(t *testing.T) {
	var buf bytes.Buffer
	Goose{Log: zerolog.New(&buf)}.Printf("OK   %s", "00001_create_quotes.sql")

	assert.Contains(t, buf.String(), "00001_create_quotes.sql")
	assert.Contains(t, buf.String(), `"component":"migrations"`)
}
