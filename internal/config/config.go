package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/dvloznov/statement-cleaner/internal/normalize"
	"github.com/dvloznov/statement-cleaner/internal/reconcile"
)

type Config struct {
	Logger   LoggerConfig
	Cleaning CleaningConfig
	Export   ExportConfig
}

type LoggerConfig struct {
	Level string
}

type CleaningConfig struct {
	// DayFirst controls how ambiguous numeric dates like "05/03/2024"
	// are read in the free-form parse stage.
	DayFirst bool
	// SimilarityThreshold is the fuzzy category match cutoff (0-1).
	SimilarityThreshold float64
	// AnomalyStdDevs is the k in the mean + k*stddev anomaly threshold.
	AnomalyStdDevs float64
	// SampleRows is how many cleaned rows to print after a run.
	SampleRows int
}

type ExportConfig struct {
	// Bucket, when set, is the GCS bucket the output files are uploaded
	// to after a successful run.
	Bucket string
}

// Load reads configuration from an optional .env file and the process
// environment, with defaults for everything.
func Load() *Config {
	// .env is optional; environment variables alone are fine.
	_ = godotenv.Load()

	return &Config{
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Cleaning: CleaningConfig{
			DayFirst:            getEnvBool("CLEAN_DAY_FIRST", false),
			SimilarityThreshold: getEnvFloat("CLEAN_SIMILARITY_THRESHOLD", normalize.DefaultSimilarityThreshold),
			AnomalyStdDevs:      getEnvFloat("CLEAN_ANOMALY_STDDEVS", reconcile.DefaultAnomalyStdDevs),
			SampleRows:          getEnvInt("CLEAN_SAMPLE_ROWS", 5),
		},
		Export: ExportConfig{
			Bucket: getEnv("EXPORT_GCS_BUCKET", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvFloat(key string, defaultValue float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
