// Package config loads viewmarks.cfg.json through viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the name of the config file looked up in the config dir.
const FileName = "viewmarks.cfg.json"

// CameraConfig holds camera movement and shortcut slot settings
type CameraConfig struct {
	MoveDuration time.Duration `json:"moveDuration" mapstructure:"moveDuration"`
	MaxSlots     int           `json:"maxSlots" mapstructure:"maxSlots"`
}

// SQLiteConfig holds sqlite storage backend settings
type SQLiteConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// DBConfig holds postgres connection settings
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// StorageConfig holds save-document storage settings
type StorageConfig struct {
	Type     string       `json:"type" mapstructure:"type"`
	SQLite   SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
	Postgres DBConfig     `json:"db" mapstructure:"db"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./viewmarkslogs")

	viper.SetDefault("camera.moveDuration", "500ms")
	viper.SetDefault("shortcuts.maxSlots", 10)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.sqlite.path", "./viewmarks.db")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "viewmarks")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "viewmarks")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetCameraConfig returns the camera and shortcut settings.
func GetCameraConfig() CameraConfig {
	return CameraConfig{
		MoveDuration: viper.GetDuration("camera.moveDuration"),
		MaxSlots:     viper.GetInt("shortcuts.maxSlots"),
	}
}

// GetStorageConfig returns the storage backend settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		SQLite: SQLiteConfig{
			Path: viper.GetString("storage.sqlite.path"),
		},
		Postgres: DBConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetString("db.port"),
			Username: viper.GetString("db.username"),
			Password: viper.GetString("db.password"),
			Database: viper.GetString("db.database"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}
