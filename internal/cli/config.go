package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL      string
	ConnectionID   string
	ConnectionFile string
	Output         string
	Verbose        bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:      getEnvOrDefault("WORDPARTY_SERVER", "http://localhost:8080"),
		ConnectionID:   os.Getenv("WORDPARTY_CONNECTION"),
		ConnectionFile: getEnvOrDefault("WORDPARTY_CONNECTION_FILE", defaultConnectionFile()),
		Output:         "text",
		Verbose:        false,
	}
}

// LoadConnection loads the connection ID from file if not already set
func (c *Config) LoadConnection() error {
	if c.ConnectionID != "" {
		return nil
	}

	data, err := os.ReadFile(c.ConnectionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No connection file is fine
		}
		return err
	}

	c.ConnectionID = string(data)
	return nil
}

// SaveConnection saves the connection ID to the connection file
func (c *Config) SaveConnection(connID string) error {
	c.ConnectionID = connID

	dir := filepath.Dir(c.ConnectionFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.ConnectionFile, []byte(connID), 0600)
}

func defaultConnectionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordparty/connection"
	}
	return filepath.Join(home, ".wordparty", "connection")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
