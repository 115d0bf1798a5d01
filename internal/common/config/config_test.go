package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ESTIMATOR_CONFIG", "")
	t.Setenv("ROLL_WIDTH", "")
	t.Setenv("PIXELS_TO_METRES", "")
	t.Setenv("HISTORY_DEPTH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3.66, cfg.RollWidth)
	assert.Equal(t, 0.01, cfg.PixelsToMetres)
	assert.Equal(t, 10, cfg.HistoryDepth)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estimator.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roll_width: 4\nhistory_depth: 5\nanalyzer_url: http://file\n"), 0o644))

	t.Setenv("ESTIMATOR_CONFIG", path)
	t.Setenv("ANALYZER_URL", "http://env")
	t.Setenv("HISTORY_DEPTH", "not-a-number")
	t.Setenv("ROLL_WIDTH", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.RollWidth)
	assert.Equal(t, 5, cfg.HistoryDepth, "unparsable env keeps the file value")
	assert.Equal(t, "http://env", cfg.AnalyzerURL)
	assert.Equal(t, "3000", cfg.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("ESTIMATOR_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("ESTIMATOR_CONFIG", "")
	t.Setenv("CORS_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}
