package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	Database    DatabaseConfig

	// WorkingHours is the fixed set of permissible appointment start times
	// per day, as "HH:MM" strings in ascending order.
	WorkingHours []string

	// Treatments is the fixed catalog of bookable treatment names.
	Treatments []string

	// AllowedDurations is the set of bookable appointment lengths in minutes.
	AllowedDurations []int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

const (
	defaultWorkingHours = "08:00,10:00,12:00,14:00,16:00,18:00,20:00"
	defaultTreatments   = "Swedish Massage,Deep Tissue Massage,Hot Stone Massage,Facial,Body Scrub,Aromatherapy,Manicure,Pedicure"
	defaultDurations    = "30,60,90,120"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "spasync"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	workingHours := splitList(getEnv("WORKING_HOURS", defaultWorkingHours))
	if len(workingHours) == 0 {
		return nil, fmt.Errorf("WORKING_HOURS must contain at least one HH:MM entry")
	}

	treatments := splitList(getEnv("TREATMENTS", defaultTreatments))
	if len(treatments) == 0 {
		return nil, fmt.Errorf("TREATMENTS must contain at least one treatment name")
	}

	durations, err := parseDurations(getEnv("ALLOWED_DURATIONS", defaultDurations))
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOWED_DURATIONS: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:             getEnv("PORT", "3001"),
		Origin:           getEnv("ORIGIN", "http://localhost:3000"),
		Environment:      getEnv("APP_ENV", "development"),
		Database:         dbConfig,
		WorkingHours:     workingHours,
		Treatments:       treatments,
		AllowedDurations: durations,
	}, nil
}

// splitList splits a comma-separated env value, trimming blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseDurations parses a comma-separated list of positive minute counts.
func parseDurations(value string) ([]int, error) {
	parts := splitList(value)
	if len(parts) == 0 {
		return nil, fmt.Errorf("must contain at least one duration")
	}
	durations := make([]int, 0, len(parts))
	for _, part := range parts {
		minutes, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number: %w", part, err)
		}
		if minutes <= 0 {
			return nil, fmt.Errorf("duration %d must be positive", minutes)
		}
		durations = append(durations, minutes)
	}
	return durations, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
