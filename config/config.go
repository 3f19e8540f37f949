package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Gemini completion endpoint.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Google Sheets booking store.
	GoogleSheetID         string `mapstructure:"GOOGLE_SHEET_ID"`
	GoogleSheetRange      string `mapstructure:"GOOGLE_SHEET_RANGE"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`

	// Local directories for uploads and training text.
	UploadDir   string `mapstructure:"UPLOAD_DIR"`
	TrainingDir string `mapstructure:"TRAINING_DIR"`

	// Reply streaming parameters.
	StreamChunkSize int `mapstructure:"STREAM_CHUNK_SIZE"`
	StreamDelayMs   int `mapstructure:"STREAM_DELAY_MS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8765")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GOOGLE_SHEET_ID", "")
	viper.SetDefault("GOOGLE_SHEET_RANGE", "Sheet1!A:F")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("TRAINING_DIR", "training")
	viper.SetDefault("STREAM_CHUNK_SIZE", 20)
	viper.SetDefault("STREAM_DELAY_MS", 50)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
