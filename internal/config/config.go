// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	// Чаты, из которых бот принимает отчёты (группа и/или канал марафона).
	// Пустой список — ограничение отключено.
	AllowedChatIDsRaw string  `envconfig:"ALLOWED_CHAT_IDS"`
	AllowedChatIDs    []int64 `ignored:"true"` // заполним вручную из AllowedChatIDsRaw
	// Куда публиковать вечерние итоги с медалями. 0 — не публиковать.
	ReportChannelID int64 `envconfig:"REPORT_CHANNEL_ID"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"easygo_user"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"easygo_bot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`
	AppTimezone string `envconfig:"APP_TIMEZONE" default:"Europe/Moscow"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно. Иначе "go на каждый апдейт" = утечка памяти при флуде.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Google Sheets ---
	// Зеркало отчётов в общей таблице. Пустой GOOGLE_SHEET_ID — зеркало отключено.
	GoogleSheetID         string `envconfig:"GOOGLE_SHEET_ID"`
	GoogleCredentialsPath string `envconfig:"GOOGLE_CREDENTIALS_PATH" default:"credentials.json"`
	WorksheetName         string `envconfig:"WORKSHEET_NAME" default:"Лист1"`

	// --- Gemini ---
	// Пустой GEMINI_API_KEY — ассистент отключён, бот работает только с отчётами.
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	// --- История сообщений ---
	// Окно контекста для ассистента: сколько храним и сколько отдаём за раз.
	HistoryRetention  time.Duration `envconfig:"HISTORY_RETENTION" default:"24h"`
	HistoryFetchLimit int           `envconfig:"HISTORY_FETCH_LIMIT" default:"200"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// AssistantEnabled сообщает, настроен ли ИИ-ассистент.
func (c *Config) AssistantEnabled() bool {
	return c.GeminiAPIKey != ""
}

// SheetsEnabled сообщает, настроено ли зеркало в Google Sheets.
func (c *Config) SheetsEnabled() bool {
	return c.GoogleSheetID != ""
}

func (c *Config) Validate() error {
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.HistoryFetchLimit <= 0 {
		return fmt.Errorf("HISTORY_FETCH_LIMIT должен быть > 0")
	}
	if c.HistoryRetention <= 0 {
		return fmt.Errorf("HISTORY_RETENTION должен быть > 0")
	}
	if c.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS должен быть > 0")
	}
	if c.SheetsEnabled() && c.GoogleCredentialsPath == "" {
		return fmt.Errorf("задан GOOGLE_SHEET_ID, но пуст GOOGLE_CREDENTIALS_PATH")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	// .env нужен только при локальном запуске; в Docker переменные
	// приходят из окружения, и отсутствие файла — не ошибка.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AllowedChatIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ALLOWED_CHAT_IDS parse: %w", err)
	}
	cfg.AllowedChatIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
