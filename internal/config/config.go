package config

import "os"

// Table names as created by schema.sql.
const (
	AccountTable          = "Account"
	ProfileTable          = "Profile"
	PlayerBioTable        = "PlayerBio"
	SeasonTable           = "Season"
	AdvancedStatTypeTable = "AdvancedStatType"
	PlayerStatFactTable   = "PlayerAdvancedStatFact"
	InjuryReportTable     = "InjuryReport"
	CityTable             = "City"
	CityDemographicsTable = "CityDemographics"
	PredictionTable       = "Prediction"
)

type Config struct {
	Env string

	// Database
	DatabasePath string
	SchemaPath   string

	// Datasets
	DatasetsDir  string
	StatsFile    string
	InjuriesFile string
	HousingFile  string

	// Analytics
	DefaultStat string
}

// Load reads configuration from environment variables. Every setting has
// a default, so a bare run works with no environment at all.
func Load() *Config {
	return &Config{
		Env: getEnv("ENV", "development"),

		DatabasePath: getEnv("DATABASE_PATH", "nba_stats_hub.db"),
		SchemaPath:   getEnv("SCHEMA_PATH", "schema.sql"),

		DatasetsDir:  getEnv("DATASETS_DIR", "datasets"),
		StatsFile:    getEnv("STATS_FILE", "advanced.csv"),
		InjuriesFile: getEnv("INJURIES_FILE", "injuries_2010-2020.csv"),
		HousingFile:  getEnv("HOUSING_FILE", "American_Housing_Data_20231209.csv"),

		DefaultStat: getEnv("DEFAULT_STAT", "orb_percent"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
