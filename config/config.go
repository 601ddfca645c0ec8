package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // computed after load, not read from file
	} `yaml:"server"`
	Data struct {
		Dir               string `yaml:"dir"`                // directory holding the rule YAML files
		CoursesFile       string `yaml:"courses_file"`       // course catalog
		RelevanceFile     string `yaml:"relevance_file"`     // AHP relevance rules
		PrerequisitesFile string `yaml:"prerequisites_file"` // prerequisite chains
	} `yaml:"data"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`
	AHP struct {
		WFoundation float64 `yaml:"w_foundation"` // default weight for foundation quality
		WCompetency float64 `yaml:"w_competency"` // default weight for competency quality
		WDensity    float64 `yaml:"w_density"`    // default weight for elective density
	} `yaml:"ahp"`
	Upload struct {
		MaxSizeMB int `yaml:"max_size_mb"` // multipart upload limit
	} `yaml:"upload"`
	Scheduler struct {
		ReloadEnabled     bool `yaml:"reload_enabled"`      // periodically re-read rule files
		ReloadIntervalSec int  `yaml:"reload_interval_sec"` // seconds between reloads
		CheckIntervalSec  int  `yaml:"check_interval_sec"`  // scheduler tick interval (seconds)
	} `yaml:"scheduler"`
}

func Load() *Config {
	// Load .env first; missing file is fine, system env still applies.
	_ = godotenv.Load()

	var cfg Config

	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			return loadFromEnv()
		}
		log.Println("Loading configuration from config.yaml")
		cfg.applyEnvOverrides()
		cfg.applyDefaults()
		return &cfg
	}

	// No config.yaml, environment variables only.
	return loadFromEnv()
}

func loadFromEnv() *Config {
	var cfg Config

	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	log.Println("Configuration loaded from environment, some settings may use defaults")
	return &cfg
}

// applyEnvOverrides lets deployment environments relocate the data
// directory without editing config.yaml.
func (cfg *Config) applyEnvOverrides() {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.CoursesFile == "" {
		cfg.Data.CoursesFile = "courses.yaml"
	}
	if cfg.Data.RelevanceFile == "" {
		cfg.Data.RelevanceFile = "relevance_rules.yaml"
	}
	if cfg.Data.PrerequisitesFile == "" {
		cfg.Data.PrerequisitesFile = "prerequisites.yaml"
	}

	// Default AHP weights: the eigenvector of the campus pairwise matrix.
	if cfg.AHP.WFoundation == 0 && cfg.AHP.WCompetency == 0 && cfg.AHP.WDensity == 0 {
		cfg.AHP.WFoundation = 0.3
		cfg.AHP.WCompetency = 0.5
		cfg.AHP.WDensity = 0.2
	}

	if cfg.Upload.MaxSizeMB <= 0 {
		cfg.Upload.MaxSizeMB = 10
	}
	if cfg.Scheduler.ReloadIntervalSec <= 0 {
		cfg.Scheduler.ReloadIntervalSec = 300
	}
	if cfg.Scheduler.CheckIntervalSec <= 0 {
		cfg.Scheduler.CheckIntervalSec = 60
	}
}

// CoursesPath returns the path of the course catalog file.
func (cfg *Config) CoursesPath() string {
	return filepath.Join(cfg.Data.Dir, cfg.Data.CoursesFile)
}

// RelevancePath returns the path of the relevance rule file.
func (cfg *Config) RelevancePath() string {
	return filepath.Join(cfg.Data.Dir, cfg.Data.RelevanceFile)
}

// PrerequisitesPath returns the path of the prerequisite rule file.
func (cfg *Config) PrerequisitesPath() string {
	return filepath.Join(cfg.Data.Dir, cfg.Data.PrerequisitesFile)
}
