package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv задаёт обязательные переменные, без которых Load падает.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:test-token")
	t.Setenv("DB_PASSWORD", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBHost)
	assert.Equal(t, "easygo_bot", cfg.DBName)
	assert.Equal(t, "info", cfg.AppLogLevel)
	assert.Equal(t, 64, cfg.BotMaxInflight)
	assert.Equal(t, 200, cfg.HistoryFetchLimit)
	assert.Equal(t, "Лист1", cfg.WorksheetName)
	assert.Empty(t, cfg.AllowedChatIDs)
	assert.False(t, cfg.AssistantEnabled())
	assert.False(t, cfg.SheetsEnabled())
}

func TestLoadAllowedChatIDs(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_CHAT_IDS", "-1001234567890, 42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []int64{-1001234567890, 42}, cfg.AllowedChatIDs)
}

func TestLoadBadAllowedChatIDs(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_CHAT_IDS", "abc")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := &Config{
		DBUser:     "easygo_user",
		DBPassword: "pw",
		DBHost:     "localhost",
		DBPort:     5432,
		DBName:     "easygo_bot",
		DBSSLMode:  "disable",
	}
	assert.Equal(t,
		"postgres://easygo_user:pw@localhost:5432/easygo_bot?sslmode=disable",
		cfg.DatabaseDSN())
}

func TestValidate(t *testing.T) {
	setRequiredEnv(t)

	t.Run("нулевой inflight", func(t *testing.T) {
		t.Setenv("BOT_MAX_INFLIGHT", "0")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("min_conns больше max_conns", func(t *testing.T) {
		t.Setenv("DB_MIN_CONNS", "50")
		t.Setenv("DB_MAX_CONNS", "10")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("таблица без файла ключа", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEET_ID", "sheet-id")
		t.Setenv("GOOGLE_CREDENTIALS_PATH", "")
		_, err := Load()
		assert.Error(t, err)
	})
}
