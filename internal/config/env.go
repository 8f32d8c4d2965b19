// Package config assembles the immutable runtime profile from environment
// variables and the settings store.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Env holds host process settings sourced from environment variables.
type Env struct {
	Addr            string `env:"GESTUREFLOW_ADDR"              envDefault:":8080"`
	DataDir         string `env:"GESTUREFLOW_DATA_DIR"`
	PluginDir       string `env:"GESTUREFLOW_PLUGIN_DIR"`
	StaticDir       string `env:"GESTUREFLOW_WEB_DIR"           envDefault:"web"`
	CameraID        int    `env:"GESTUREFLOW_CAMERA_ID"         envDefault:"0"`
	SerialPort      string `env:"GESTUREFLOW_SERIAL_PORT"`
	SerialBaud      int    `env:"GESTUREFLOW_SERIAL_BAUD"       envDefault:"9600"`
	PluginTimeoutMs int    `env:"GESTUREFLOW_PLUGIN_TIMEOUT_MS" envDefault:"5000"`
}

// ParseEnv loads host configuration from environment variables. DataDir
// defaults to ~/.gestureflow and PluginDir to its plugins subdirectory.
// SerialPort may be a device path, "auto" for detection, or empty to run
// without a transport.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}

	if e.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Env{}, fmt.Errorf("resolve home dir: %w", err)
		}
		e.DataDir = filepath.Join(home, ".gestureflow")
	}
	if e.PluginDir == "" {
		e.PluginDir = filepath.Join(e.DataDir, "plugins")
	}

	return e, nil
}

// DBPath returns the SQLite database path inside the data directory.
func (e Env) DBPath() string {
	return filepath.Join(e.DataDir, "gestureflow.db")
}
