package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from .env unless GO_ENV says we are deployed
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV       string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	PORT         int
	// Which CatalogReader implementation to run: "gorm" or "pq"
	CATALOG_DRIVER string
	// Redis Configuration
	REDIS_URL      string
	REDIS_PASSWORD string
	// Admin key guarding cache-bust and other operator endpoints
	ADMIN_API_KEY string
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	catalogDriver := os.Getenv("CATALOG_DRIVER")
	if catalogDriver == "" {
		catalogDriver = "gorm"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:         os.Getenv("GO_ENV"),
		DB_USER_NAME:   os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:    os.Getenv("DB_PASSWORD"),
		DB_NAME:        os.Getenv("DB_NAME"),
		DB_HOST:        dbHost,
		DB_PORT:        dbPort,
		DB_SSL_MODE:    os.Getenv("DB_SSL_MODE"),
		PORT:           port,
		CATALOG_DRIVER: catalogDriver,
		// Redis
		REDIS_URL:      os.Getenv("REDIS_URL"),
		REDIS_PASSWORD: os.Getenv("REDIS_PASSWORD"),
		// Admin
		ADMIN_API_KEY: os.Getenv("ADMIN_API_KEY"),
	}

	return envVariables, nil
}

// EngineSettings tunes the matching engine. Every knob has a default so a
// bare environment still produces a working engine.
type EngineSettings struct {
	// Scoring weights; renormalized at scoring time when a signal is absent
	WeightInterest float64
	WeightRating   float64
	WeightFee      float64
	// "ignore" drops unknown stream/interest identifiers, "reject" fails the query
	UnknownCriteriaPolicy string
	// "include" lets colleges without fee records pass the fee ceiling,
	// "exclude" filters them out
	UnpricedCollegePolicy string
	// Neutral fee-proximity score for colleges with no fee data
	UnpricedFeeScore  float64
	ReferenceCacheTTL time.Duration
	DefaultPageSize   int
	MaxPageSize       int
}

// EngineDefaults returns the documented default engine configuration
func EngineDefaults() EngineSettings {
	return EngineSettings{
		WeightInterest:        0.5,
		WeightRating:          0.3,
		WeightFee:             0.2,
		UnknownCriteriaPolicy: "ignore",
		UnpricedCollegePolicy: "include",
		UnpricedFeeScore:      0.5,
		ReferenceCacheTTL:     5 * time.Minute,
		DefaultPageSize:       20,
		MaxPageSize:           100,
	}
}

// GetEngineSettings builds EngineSettings from the environment, falling
// back to defaults for anything unset or unparsable
func GetEngineSettings() EngineSettings {
	s := EngineDefaults()

	if v, err := strconv.ParseFloat(os.Getenv("ENGINE_WEIGHT_INTEREST"), 64); err == nil {
		s.WeightInterest = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("ENGINE_WEIGHT_RATING"), 64); err == nil {
		s.WeightRating = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("ENGINE_WEIGHT_FEE"), 64); err == nil {
		s.WeightFee = v
	}

	if v := os.Getenv("UNKNOWN_CRITERIA_POLICY"); v == "ignore" || v == "reject" {
		s.UnknownCriteriaPolicy = v
	}
	if v := os.Getenv("UNPRICED_COLLEGE_POLICY"); v == "include" || v == "exclude" {
		s.UnpricedCollegePolicy = v
	}

	if v, err := time.ParseDuration(os.Getenv("REFERENCE_CACHE_TTL")); err == nil && v > 0 {
		s.ReferenceCacheTTL = v
	}
	if v, err := strconv.Atoi(os.Getenv("DEFAULT_PAGE_SIZE")); err == nil && v > 0 {
		s.DefaultPageSize = v
	}
	if v, err := strconv.Atoi(os.Getenv("MAX_PAGE_SIZE")); err == nil && v > 0 {
		s.MaxPageSize = v
	}
	if s.DefaultPageSize > s.MaxPageSize {
		s.DefaultPageSize = s.MaxPageSize
	}

	return s
}
