package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Default lending parameters applied by InitConfig
// when the configuration sources leave them unset.
const (
	DefaultLoanDurationDays    = 14
	DefaultOverdueScanInterval = 1 * time.Hour
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string        `yaml:"git_commit" envconfig:"LMS_GIT_COMMIT"`
	GitTag             string        `yaml:"git_tag" envconfig:"LMS_GIT_TAG"`
	BuildTime          string        `yaml:"build_time" envconfig:"LMS_BUILD_TIME"`
	IsProduction       bool          `yaml:"is_production" envconfig:"LMS_IS_PRODUCTION"`
	LogLevel           zapcore.Level `yaml:"log_level" envconfig:"LMS_LOG_LEVEL"`
	LogFolder          string        `yaml:"log_folder" envconfig:"LMS_LOG_FOLDER"`
	LogMaxSize         int           `yaml:"log_max_size" envconfig:"LMS_LOG_MAX_SIZE"`
	OpsEndpointsEnable bool          `yaml:"ops_endpoints_enable" envconfig:"LMS_OPS_ENDPOINTS_ENABLE"`
	ProfilerEnable     bool          `yaml:"profiler_enable" envconfig:"LMS_PROFILER_ENABLE"`
	Server             ServerConfig  `yaml:"server"`
	Lending            LendingConfig `yaml:"lending"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"LMS_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"LMS_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"LMS_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"LMS_SERVER_WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"LMS_SERVER_REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"LMS_SERVER_SHUTDOWN_TIMEOUT"`
}

// LendingConfig groups the lending engine settings. The loan duration is a
// single process-wide value with no runtime reconfiguration endpoint.
type LendingConfig struct {
	LoanDurationDays    int           `yaml:"loan_duration_days" envconfig:"LMS_LENDING_LOAN_DURATION_DAYS"`
	OverdueScanInterval time.Duration `yaml:"overdue_scan_interval" envconfig:"LMS_LENDING_OVERDUE_SCAN_INTERVAL"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if config.Lending.LoanDurationDays < 0 {
		return errors.New("loan duration in days cannot be negative")
	}

	if config.Lending.LoanDurationDays == 0 {
		config.Lending.LoanDurationDays = DefaultLoanDurationDays
	}

	if config.Lending.OverdueScanInterval <= 0 {
		config.Lending.OverdueScanInterval = DefaultOverdueScanInterval
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Overlay the environment file when present.
	if err = godotenv.Load("./config.env"); err != nil && !os.IsNotExist(err) {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `LMS`.
	err = LoadConfigEnvs("LMS", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
