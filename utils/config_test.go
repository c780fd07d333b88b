package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpacahq/bizcal/utils"
	"github.com/alpacahq/bizcal/utils/log"
)

var now = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	c, err := utils.ParseConfig(nil, now)
	require.NoError(t, err)
	assert.Equal(t, &utils.Config{
		Calendar:      "target",
		StartYear:     2016,
		EndYear:       2036,
		SettlementLag: 2,
		LogLevel:      log.INFO,
		Store:         utils.StoreSetting{Driver: "memory"},
	}, c)
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	data := []byte(`
calendar: UK
start_year: 2000
end_year: 2030
settlement_lag: 1
log_level: debug
store:
  driver: sqlite
  dsn: /var/lib/bizcal/bizcal.db
`)
	c, err := utils.ParseConfig(data, now)
	require.NoError(t, err)
	assert.Equal(t, "uk", c.Calendar)
	assert.Equal(t, 2000, c.StartYear)
	assert.Equal(t, 2030, c.EndYear)
	assert.Equal(t, 1, c.SettlementLag)
	assert.Equal(t, log.DEBUG, c.LogLevel)
	assert.Equal(t, utils.StoreSetting{Driver: "sqlite", DSN: "/var/lib/bizcal/bizcal.db"}, c.Store)
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"broken yaml":          "calendar: [",
		"start after end":      "start_year: 2030\nend_year: 2020",
		"negative lag":         "settlement_lag: -1",
		"unknown log level":    "log_level: chatty",
		"unknown store driver": "store:\n  driver: postgres",
		"sqlite without dsn":   "store:\n  driver: sqlite",
	}
	for name, data := range tests {
		_, err := utils.ParseConfig([]byte(data), now)
		assert.Error(t, err, name)
	}
}
