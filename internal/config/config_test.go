package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastelceo-blip/coupon-settlement-system/internal/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 5000, config.UnitPrice)
	assert.Equal(t, "국민은행 이용현 781601-00-231766", config.BankAccount)
	assert.Contains(t, config.WeddingExclusions, "STK110GA")
	assert.Contains(t, config.BirthdayExclusions, "EVENTKN")
	assert.Equal(t, "김이박최정강조윤장임", config.StrippablePrefixes)
	assert.Equal(t, "./input", config.InputDir)
	assert.Equal(t, "정산내역_{month}.txt", config.OutputNameFormat)
	assert.Empty(t, config.DatabaseDSN)
}

func TestLoad_OverridesKeepRemainingDefaults(t *testing.T) {
	path := writeConfig(t, `
unit_price: 7000
input_dir: /data/in
database_dsn: mysql://settle:pw@localhost/ledger
`)

	config, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 7000, config.UnitPrice)
	assert.Equal(t, "/data/in", config.InputDir)
	assert.Equal(t, "mysql://settle:pw@localhost/ledger", config.DatabaseDSN)

	// Untouched options still get their defaults.
	assert.Equal(t, "./output", config.OutputDir)
	assert.NotEmpty(t, config.BirthdayExclusions)
}

func TestLoad_ExclusionOverrideReplacesList(t *testing.T) {
	path := writeConfig(t, `
birthday_exclusions:
  - ONLYONE
`)

	config, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"ONLYONE"}, config.BirthdayExclusions)
}

func TestLoad_InvalidUnitPrice(t *testing.T) {
	path := writeConfig(t, "unit_price: -100\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.ErrorContains(t, err, "unit_price")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "unit_price: [not a number\n")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestExclusionsFor(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.WeddingExclusions, config.ExclusionsFor(types.SchemaWedding))
	assert.Equal(t, config.BirthdayExclusions, config.ExclusionsFor(types.SchemaFirstBirthday))
	assert.Equal(t, config.BirthdayExclusions, config.ExclusionsFor(types.SchemaUnknown))
}
