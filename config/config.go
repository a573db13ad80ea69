// Package config loads and validates mvbdecode's TOML configuration: the
// line polarity convention, nominal sample rate, and known capture device
// entries used by the devices CLI command. It is ambient
// plumbing only: the decoding core packages (sample, physical, telegram,
// crc, pairing, aggregator) take explicit constructor parameters and never
// read this package's state, preserving the parser-purity design note.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

//go:embed mvbdecode.toml
var defaultConfigData []byte

// Global state resolved from the selected polarity profile.
var (
	PolarityName string
	SampleRate   int
	MaxRecords   int
	Devices      []Device
)

// Config is the entire TOML configuration structure.
type Config struct {
	Default string    `toml:"default"`
	Profile []Profile `toml:"profile"`
	Device  []Device  `toml:"device"`
}

// Profile is one named capture configuration: polarity convention, nominal
// sample rate, and default max record count.
type Profile struct {
	Name       string `toml:"name"`
	Polarity   string `toml:"polarity"` // "inverted" or "direct"
	SampleRate int    `toml:"sample_rate"`
	MaxRecords int    `toml:"max_records"` // 0 means unbounded
}

// Device is one known capture device entry for the devices command: a USB bulk analyzer (VendorID/ProductID/Endpoint) or a serial
// adapter (VendorID/ProductID as hex strings, BaudRate), distinguished by
// Transport.
type Device struct {
	Name      string `toml:"name"`
	Transport string `toml:"transport"` // "usb" or "serial"
	VendorID  string `toml:"vendor_id"`
	ProductID string `toml:"product_id"`
	Endpoint  int    `toml:"endpoint"`
	BaudRate  int    `toml:"baud_rate"`
}

func configPath() (string, error) {
	var configDir string
	var err error

	switch runtime.GOOS {
	case "windows":
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "mvbdecode")
	default:
		configDir, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home directory: %w", err)
		}
	}

	return filepath.Join(configDir, ".mvbdecode"), nil
}

// Initialize loads and validates the configuration file, creating it from
// the embedded default on first run.
func Initialize() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		configDir := filepath.Dir(path)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
		}
		if err := os.WriteFile(path, defaultConfigData, 0644); err != nil {
			return fmt.Errorf("failed to create default config file at %s: %w", path, err)
		}
	}

	var conf Config
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return fmt.Errorf("failed to parse TOML config at %s: %w", path, err)
	}

	if conf.Default == "" {
		return errors.New("`default` key is missing or empty in config")
	}

	var profile *Profile
	for i := range conf.Profile {
		if conf.Profile[i].Name == conf.Default {
			profile = &conf.Profile[i]
			break
		}
	}
	if profile == nil {
		return fmt.Errorf("default profile %q not found in profile array", conf.Default)
	}

	if profile.Polarity != "inverted" && profile.Polarity != "direct" {
		return fmt.Errorf("profile %q has invalid polarity %q (want \"inverted\" or \"direct\")", conf.Default, profile.Polarity)
	}
	if profile.SampleRate <= 0 {
		return fmt.Errorf("profile %q has invalid sample_rate: %d (must be positive)", conf.Default, profile.SampleRate)
	}

	PolarityName = profile.Polarity
	SampleRate = profile.SampleRate
	MaxRecords = profile.MaxRecords
	Devices = append([]Device(nil), conf.Device...)

	return nil
}
