package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.DailyActivityPath == "" || s.SleepPath == "" || s.HourlyStepsPath == "" || s.HourlyCaloriesPath == "" {
		t.Fatalf("defaults missing: %+v", s)
	}
	if s.OutputDir != "out" {
		t.Fatalf("output_dir = %q, want out", s.OutputDir)
	}
	if s.ChartWidthIn <= 0 || s.ChartHeightIn <= 0 {
		t.Fatalf("chart defaults not set: %+v", s)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Settings{
		DailyActivityPath:  "a.csv",
		SleepPath:          "b.csv",
		HourlyStepsPath:    "c.csv",
		HourlyCaloriesPath: "d.csv",
		OutputDir:          "reports",
		ChartWidthIn:       12,
		ChartHeightIn:      7,
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.SleepPath != "b.csv" || got.OutputDir != "reports" || got.ChartWidthIn != 12 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
