package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{"BMI_DB", "BMI_TABLES_DIR", "BMI_MALE_TABLE", "BMI_FEMALE_TABLE", "BMI_LOG_LEVEL", "BMI_LOG_FORMAT"}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg := Load()
	assert.Equal(t, "./tables", cfg.TablesDir)
	assert.Equal(t, "percentiles_imc_niños.csv", cfg.MaleFile)
	assert.Equal(t, "percentiles_imc_niñas.csv", cfg.FemaleFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, strings.HasSuffix(cfg.DBPath, "history.db") || cfg.DBPath == "historial_imc.db", cfg.DBPath)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("BMI_DB", "/tmp/x.db")
	t.Setenv("BMI_TABLES_DIR", "/srv/who")
	t.Setenv("BMI_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "/srv/who", cfg.TablesDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("BMI_TABLES_DIR=/from/dotenv\nBMI_LOG_FORMAT=json\n"), 0o644))
	t.Setenv("BMI_LOG_FORMAT", "console")
	// godotenv only fills variables that are absent, not empty.
	os.Unsetenv("BMI_TABLES_DIR")
	t.Cleanup(func() { os.Unsetenv("BMI_TABLES_DIR") })

	cfg := Load()
	assert.Equal(t, "/from/dotenv", cfg.TablesDir)
	assert.Equal(t, "console", cfg.LogFormat, "environment wins over .env")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
