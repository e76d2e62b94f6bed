package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Employer Employer      `json:"employer"`
	Pandoc   PandocConfig  `json:"pandoc,omitempty"`
	Defaults DefaultConfig `json:"defaults"`
}

// Employer identifies the present employer printed into each CV's
// employment block.
type Employer struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Telephone string `json:"telephone,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Fax       string `json:"fax,omitempty"`
	Email     string `json:"email,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
}

// PandocConfig holds pandoc-related configuration.
type PandocConfig struct {
	ReferenceDoc string `json:"reference_doc,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir    string `json:"output_dir"`
	RosterPath   string `json:"roster_path,omitempty"`
	ProjectsPath string `json:"projects_path,omitempty"`
}

// Load reads configuration from file with environment variable overrides.
// A .env file in the working directory is honored first.
func Load(configPath string) (cfg Config, err error) {
	_ = godotenv.Load()

	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".personnel-cv", "config.json")
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'personnel-cv init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// Override with environment variables if set
	if roster := os.Getenv("PERSONNEL_CV_ROSTER"); roster != "" {
		cfg.Defaults.RosterPath = roster
	}
	if projects := os.Getenv("PERSONNEL_CV_PROJECTS"); projects != "" {
		cfg.Defaults.ProjectsPath = projects
	}
	if outDir := os.Getenv("PERSONNEL_CV_OUTPUT_DIR"); outDir != "" {
		cfg.Defaults.OutputDir = outDir
	}

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.Employer.Name == "" {
		err = errors.New("employer.name is required in config")
		return err
	}

	if c.Pandoc.ReferenceDoc != "" {
		_, err = os.Stat(c.Pandoc.ReferenceDoc)
		if os.IsNotExist(err) {
			err = errors.Errorf("pandoc reference doc not found: %s", c.Pandoc.ReferenceDoc)
			return err
		}
		err = nil
	}

	// Set default output_dir if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./cv-output"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".personnel-cv", "config.json")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		Employer: Employer{
			Name:      "Your Company Pvt. Ltd.",
			Address:   "Registered office address",
			Telephone: "000 0000 0000",
			Contact:   "+00 00000 00000",
			Email:     "info@example.com",
			Mobile:    "+00 00000 00000",
		},
		Defaults: DefaultConfig{
			OutputDir:    "./cv-output",
			RosterPath:   "input/personnel.csv",
			ProjectsPath: "input/projects.csv",
		},
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
