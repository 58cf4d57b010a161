// Package store loads and saves user-configured dashboard data, currently
// the custom finance widget definitions.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"hogarboard/internal/config"
	"hogarboard/internal/finance"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Use the centralized logger from config package
var log = config.Logger

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// widgetsFile is the on-disk shape of the widget definitions file.
type widgetsFile struct {
	Widgets []finance.WidgetDef `yaml:"widgets"`
}

// WidgetStore manages loading and saving of custom widget definitions.
type WidgetStore struct {
	WidgetsFile string
}

// NewWidgetStore creates a store for the given widgets file. An empty name
// defaults to "widgets.yaml".
func NewWidgetStore(widgetsFile string) *WidgetStore {
	if widgetsFile == "" {
		widgetsFile = "widgets.yaml"
	}
	return &WidgetStore{WidgetsFile: widgetsFile}
}

// FindConfigFile looks for a configuration file in standard locations:
// the path itself, ./config/, and ~/.config/hogarboard/.
func (s *WidgetStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "hogarboard", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadWidgets loads widget definitions from the YAML file. A missing file is
// not an error; it yields an empty slice so the dashboard renders without
// custom widgets.
func (s *WidgetStore) LoadWidgets() ([]finance.WidgetDef, error) {
	filePath, err := s.FindConfigFile(s.WidgetsFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Widgets file not found: %s", s.WidgetsFile)
			return []finance.WidgetDef{}, nil
		}
		return nil, fmt.Errorf("error resolving widgets file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading widgets file: %w", err)
	}

	// Preferred shape: a top-level "widgets" key.
	var file widgetsFile
	if err := yaml.Unmarshal(data, &file); err == nil && len(file.Widgets) > 0 {
		log.Debugf("Loaded %d widgets from %s", len(file.Widgets), filePath)
		return file.Widgets, nil
	}

	// Fallback: a bare list for hand-written files.
	var defs []finance.WidgetDef
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("error parsing widgets file: %w", err)
	}
	log.Debugf("Loaded %d widgets from %s using direct list", len(defs), filePath)
	return defs, nil
}

// SaveWidgets writes widget definitions back to the YAML file, creating the
// directory when needed.
func (s *WidgetStore) SaveWidgets(defs []finance.WidgetDef) error {
	data, err := yaml.Marshal(widgetsFile{Widgets: defs})
	if err != nil {
		return fmt.Errorf("error marshaling widgets: %w", err)
	}

	dir := filepath.Dir(s.WidgetsFile)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	if err := os.WriteFile(s.WidgetsFile, data, 0600); err != nil {
		return fmt.Errorf("error writing widgets file: %w", err)
	}

	log.Debugf("Saved %d widgets to %s", len(defs), s.WidgetsFile)
	return nil
}
