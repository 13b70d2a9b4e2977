package config

import (
	"log"
	"os"
)

type Config struct {
	Addr       string
	StaticDir  string
	LogFile    string
	Difficulty string
}

func LoadConfig() *Config {
	return &Config{
		Addr:       getEnv("ADDR", ":8080"),
		StaticDir:  getEnv("STATIC_DIR", "web"),
		LogFile:    getEnv("LOG_FILE", "skyflap.log"),
		Difficulty: getEnv("DIFFICULTY", "hard"),
	}
}

// getEnv reads an environment variable and returns its value or a default value
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
		log.Printf("Environment variable %s not set, using default value: %s", key, defaultValue)
	}
	return value
}
