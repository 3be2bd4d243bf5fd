package factors

import (
	"fmt"
	"os"
	"path/filepath"

	"ecolens/carbon-csv/internal/logging"

	"gopkg.in/yaml.v3"
)

// Store loads the emission factors table from a YAML file.
type Store struct {
	File   string
	logger logging.Logger
}

// NewStore creates a Store for the given factors file.
func NewStore(file string, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{File: file, logger: logger}
}

// FindFile resolves the factors file in standard locations: the path as
// given, ./config/, ./database/, then ~/.config/carbon-csv/.
func (s *Store) FindFile() (string, error) {
	if filepath.IsAbs(s.File) {
		if _, err := os.Stat(s.File); err == nil {
			return s.File, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		s.File,
		filepath.Join("config", s.File),
		filepath.Join("database", s.File),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "carbon-csv", s.File)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// Load reads, parses and validates the factors table. Validation failures are
// fatal ConfigurationErrors naming the missing key.
func (s *Store) Load() (*Table, error) {
	path, err := s.FindFile()
	if err != nil {
		return nil, fmt.Errorf("emission factors file not found: %s", s.File)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read emission factors file %s: %w", path, err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("could not parse emission factors file %s: %w", path, err)
	}

	if err := table.Validate(path); err != nil {
		return nil, err
	}

	s.logger.Info("Loaded emission factors",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "version", Value: table.Version})

	return &table, nil
}
