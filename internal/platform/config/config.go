package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// Serial device ports. Empty means the device is not attached and its
	// endpoints report DISCONNECTED.
	ScalePort string
	ScaleBaud int
	RFIDPort  string
	RFIDBaud  int

	MinTagLength    int
	DeviceIdleTimer time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("SCALE_PORT", "")
	viper.SetDefault("SCALE_BAUD", 9600)
	viper.SetDefault("RFID_PORT", "")
	viper.SetDefault("RFID_BAUD", 115200)
	viper.SetDefault("MIN_TAG_LENGTH", 6)
	viper.SetDefault("DEVICE_IDLE_TIMEOUT", "30s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.ScalePort = viper.GetString("SCALE_PORT")
	cfg.ScaleBaud = viper.GetInt("SCALE_BAUD")
	cfg.RFIDPort = viper.GetString("RFID_PORT")
	cfg.RFIDBaud = viper.GetInt("RFID_BAUD")
	cfg.MinTagLength = viper.GetInt("MIN_TAG_LENGTH")

	idleStr := viper.GetString("DEVICE_IDLE_TIMEOUT")
	idle, err := time.ParseDuration(idleStr)
	if err != nil {
		idle = 30 * time.Second
		if idleStr != "" {
			log.Printf("Warning: Invalid value for DEVICE_IDLE_TIMEOUT ('%s'). Defaulting to %s.\n", idleStr, idle.String())
		}
	}
	cfg.DeviceIdleTimer = idle

	return cfg, nil
}
