package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings is the global fitloom configuration: where the four raw extracts
// live, where outputs go, and how charts are sized.
type Settings struct {
	DailyActivityPath  string  `mapstructure:"daily_activity_path" yaml:"daily_activity_path"`
	SleepPath          string  `mapstructure:"sleep_path" yaml:"sleep_path"`
	HourlyStepsPath    string  `mapstructure:"hourly_steps_path" yaml:"hourly_steps_path"`
	HourlyCaloriesPath string  `mapstructure:"hourly_calories_path" yaml:"hourly_calories_path"`
	OutputDir          string  `mapstructure:"output_dir" yaml:"output_dir"`
	ChartWidthIn       float64 `mapstructure:"chart_width_in" yaml:"chart_width_in"`
	ChartHeightIn      float64 `mapstructure:"chart_height_in" yaml:"chart_height_in"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.fitloom/config.yaml, creating the directory if
// necessary.
func Save(s *Settings, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".fitloom")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("FITLOOM")
	v.AutomaticEnv()

	// Defaults assume the extracts sit in ./data and outputs land in ./out.
	v.SetDefault("daily_activity_path", filepath.Join("data", "dailyActivity_merged.csv"))
	v.SetDefault("sleep_path", filepath.Join("data", "sleepDay_merged.csv"))
	v.SetDefault("hourly_steps_path", filepath.Join("data", "hourlySteps_merged.csv"))
	v.SetDefault("hourly_calories_path", filepath.Join("data", "hourlyCalories_merged.csv"))
	v.SetDefault("output_dir", "out")
	v.SetDefault("chart_width_in", 10.0)
	v.SetDefault("chart_height_in", 6.0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".fitloom"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &s, nil
}
