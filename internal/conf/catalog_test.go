package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cronpost/cronpost-go/internal/biz/domain"
)

func TestLoadCatalogConfigMissingFileFallsBack(t *testing.T) {
	cfg, err := LoadCatalogConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	cat := cfg.ToCatalog()
	assert.Equal(t, domain.DefaultCatalog.EveryDay, cat.EveryDay)
	assert.Equal(t, domain.DefaultCatalog.WeekdayNames, cat.WeekdayNames)
}

func TestCatalogOverridesMergeOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
schedule:
  every_day: "cada dia"
warnings:
  non_leap_year: "se omite en anos no bisiestos"
errors:
  INVALID_PIN: "PIN incorrecto"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadCatalogConfig(path)
	require.NoError(t, err)

	cat := cfg.ToCatalog()
	assert.Equal(t, "cada dia", cat.EveryDay)
	// Untranslated strings keep the built-in text.
	assert.Equal(t, domain.DefaultCatalog.EveryNDays, cat.EveryNDays)
	assert.Equal(t, "se omite en anos no bisiestos", cat.WarningNonLeapYear)

	errs := cfg.ToErrorCatalog()
	assert.Equal(t, "PIN incorrecto", errs["INVALID_PIN"])
	assert.Equal(t, domain.DefaultErrorCatalog["SCHEDULE_INVALID"], errs["SCHEDULE_INVALID"])
}

func TestConfigValidateRequiresToken(t *testing.T) {
	cfg := &Config{API: APIConfig{BaseURL: "https://api.cronpost.com"}}
	err := cfg.Validate()
	require.Error(t, err)

	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "CRONPOST_API_TOKEN", cerr.Field)

	cfg.API.Token = "tok"
	assert.NoError(t, cfg.Validate())
}
