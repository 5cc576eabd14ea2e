package config

import (
	"fmt"
	"os"
	"time"

	"github.com/badoux/checkmail"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

var (
	DB        *gorm.DB
	AppConfig Config
)

type Config struct {
	Environment string `json:"environment"`
	AppTitle    string `json:"app_title"`
	ServerPort  string `json:"server_port"`
	DBPath      string `json:"db_path"`

	SMTPHost string `json:"smtp_host"`
	SMTPPort int    `json:"smtp_port"`
	SMTPUser string `json:"smtp_user"`
	SMTPPass string `json:"-"`

	OpenAIAPIKey  string        `json:"-"`
	OpenAIBaseURL string        `json:"openai_base_url"`
	OpenAIModel   string        `json:"openai_model"`
	OpenAITimeout time.Duration `json:"openai_timeout"`
}

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
}

func LoadConfig() error {
	AppConfig = Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		AppTitle:    getEnv("APP_TITLE", "Simply Agentic AI Hands"),
		ServerPort:  getEnv("SERVER_PORT", "5000"),
		DBPath:      getEnv("DB_PATH", "outreach.db"),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvAsInt("SMTP_PORT", 587),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("MODEL", "gpt-4o-mini"),
		OpenAITimeout: getEnvAsDuration("OPENAI_TIMEOUT", 120*time.Second),
	}

	// Validate required configurations
	if AppConfig.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if AppConfig.SMTPUser != "" {
		if err := checkmail.ValidateFormat(AppConfig.SMTPUser); err != nil {
			return fmt.Errorf("SMTP_USER is not a valid email address: %w", err)
		}
	}

	logConfig()
	return nil
}

func ConnectDB() error {
	logrus.Info("Attempting to open database...")

	var err error
	DB, err = gorm.Open(sqlite.Open(AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	logrus.Info("🔄 Starting database migration...")
	if err := migrateDB(DB); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	logrus.Info("✅ Database ready")
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

func logConfig() {
	logrus.WithFields(logrus.Fields{
		"environment": AppConfig.Environment,
		"server_port": AppConfig.ServerPort,
		"db_path":     AppConfig.DBPath,
		"smtp_host":   AppConfig.SMTPHost,
		"smtp_port":   AppConfig.SMTPPort,
		"model":       AppConfig.OpenAIModel,
	}).Info("🔧 Loaded configuration")
}

func migrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Setting{},
		&models.Template{},
		&models.SendRecord{},
	)
}
