package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Uploads  UploadsConfig
	Settings SettingsConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type UploadsConfig struct {
	S3Region   string
	S3Bucket   string
	CDNBaseURL string
	LocalDir   string
}

type SettingsConfig struct {
	FilePath string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// IsDevelopment reports whether the server runs outside production.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

func Load() *Config {
	// .env is optional; real deployments pass plain environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("UPLOADS_S3_REGION", "eu-central-1")
	viper.SetDefault("UPLOADS_LOCAL_DIR", "./uploads")
	viper.SetDefault("SETTINGS_FILE", "./data/settings.json")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{})

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Uploads: UploadsConfig{
			S3Region:   viper.GetString("UPLOADS_S3_REGION"),
			S3Bucket:   viper.GetString("UPLOADS_S3_BUCKET"),
			CDNBaseURL: viper.GetString("UPLOADS_CDN_BASE_URL"),
			LocalDir:   viper.GetString("UPLOADS_LOCAL_DIR"),
		},
		Settings: SettingsConfig{
			FilePath: viper.GetString("SETTINGS_FILE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
}
