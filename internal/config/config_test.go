package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Logger.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logger.Level)
	}
	if cfg.Cleaning.DayFirst {
		t.Error("day-first should default to false")
	}
	if cfg.Cleaning.SimilarityThreshold != 0.8 {
		t.Errorf("similarity threshold = %v, want 0.8", cfg.Cleaning.SimilarityThreshold)
	}
	if cfg.Cleaning.AnomalyStdDevs != 3 {
		t.Errorf("anomaly stddevs = %v, want 3", cfg.Cleaning.AnomalyStdDevs)
	}
	if cfg.Export.Bucket != "" {
		t.Errorf("export bucket = %q, want empty", cfg.Export.Bucket)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CLEAN_DAY_FIRST", "true")
	t.Setenv("CLEAN_SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("CLEAN_ANOMALY_STDDEVS", "2.5")
	t.Setenv("EXPORT_GCS_BUCKET", "cleaned-statements")

	cfg := Load()

	if cfg.Logger.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logger.Level)
	}
	if !cfg.Cleaning.DayFirst {
		t.Error("day-first override not applied")
	}
	if cfg.Cleaning.SimilarityThreshold != 0.9 {
		t.Errorf("similarity threshold = %v, want 0.9", cfg.Cleaning.SimilarityThreshold)
	}
	if cfg.Cleaning.AnomalyStdDevs != 2.5 {
		t.Errorf("anomaly stddevs = %v, want 2.5", cfg.Cleaning.AnomalyStdDevs)
	}
	if cfg.Export.Bucket != "cleaned-statements" {
		t.Errorf("export bucket = %q", cfg.Export.Bucket)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("CLEAN_DAY_FIRST", "sometimes")
	t.Setenv("CLEAN_SIMILARITY_THRESHOLD", "high")

	cfg := Load()

	if cfg.Cleaning.DayFirst {
		t.Error("unparsable bool should fall back to default")
	}
	if cfg.Cleaning.SimilarityThreshold != 0.8 {
		t.Errorf("unparsable float should fall back, got %v", cfg.Cleaning.SimilarityThreshold)
	}
}
