package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	UploadDir   string
	MediaApiURL string // external content store; empty means local disk
	MediaApiKey string

	// Forum input thresholds (validation floors, tunable per deployment)
	ForumTitleMinLen int
	ForumPostMinLen  int
	ForumReplyMinLen int

	LoginHistoryDays int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		UploadDir:   getEnv("UPLOAD_DIR", "./public/uploads"),
		MediaApiURL: getEnv("MEDIA_API_URL", ""),
		MediaApiKey: getEnv("MEDIA_API_KEY", ""),

		ForumTitleMinLen: getEnvInt("FORUM_TITLE_MIN_LEN", 5),
		ForumPostMinLen:  getEnvInt("FORUM_POST_MIN_LEN", 10),
		ForumReplyMinLen: getEnvInt("FORUM_REPLY_MIN_LEN", 3),

		LoginHistoryDays: getEnvInt("LOGIN_HISTORY_DAYS", 90),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
