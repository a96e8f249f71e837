// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the trust path validator settings shared by the CLI
// and the MCP server from a JSON or YAML file, with defaults and environment
// overrides applied.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/x509-trust-path-validator/src/internal/helper/gc"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigFile names the config file when no path is given explicitly.
	EnvConfigFile = "TRUSTPATH_CONFIG_FILE"
	// EnvStorePassword supplies the trust store password when the file leaves it empty.
	EnvStorePassword = "TRUSTPATH_STORE_PASSWORD"

	defaultFormat         = "text"
	defaultTimeoutSeconds = 10
	defaultPort           = 443
)

// ErrInvalidConfig wraps every struct validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// StoreConfig locates a keystore.
type StoreConfig struct {
	// Paths: files or directories, loaded in order
	Paths []string `json:"paths,omitempty" yaml:"paths,omitempty" validate:"dive,required,path_exists"`
	// Password: PKCS12 password
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// Config represents the validator configuration.
//
// Supported file extensions: .json, .yaml, .yml (anything else is read as JSON).
type Config struct {
	TrustStore  StoreConfig `json:"trustStore" yaml:"trustStore"`
	SignerStore StoreConfig `json:"signerStore" yaml:"signerStore"`

	Validation struct {
		// MaxDepth: recursion cap, 0 means the pool size
		MaxDepth int `json:"maxDepth" yaml:"maxDepth" validate:"min=0,max=64"`
	} `json:"validation" yaml:"validation"`

	Output struct {
		Format string `json:"format" yaml:"format" validate:"oneof=text tree table json pem"`
	} `json:"output" yaml:"output"`

	Remote struct {
		TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds" validate:"min=1,max=300"`
		Port           int `json:"port" yaml:"port" validate:"min=1,max=65535"`
	} `json:"remote" yaml:"remote"`
}

// Default returns a Config holding only default values.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = defaultFormat
	}
	if c.Remote.TimeoutSeconds <= 0 {
		c.Remote.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Remote.Port == 0 {
		c.Remote.Port = defaultPort
	}
}

// RemoteTimeout returns the TLS dial timeout.
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}

// Load reads configuration from path, or from the file named by
// TRUSTPATH_CONFIG_FILE when path is empty, or returns defaults when neither
// is set.
//
// Priority:
//  1. Default values
//  2. Config file values
//  3. TRUSTPATH_STORE_PASSWORD when the trust store password is still empty
//
// The result is validated before it is returned.
func Load(path string) (*Config, error) {
	c := &Config{}

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	if path != "" {
		data, err := gc.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshal(path, data, c); err != nil {
			return nil, err
		}
	}

	c.applyDefaults()

	if c.TrustStore.Password == "" {
		c.TrustStore.Password = os.Getenv(EnvStorePassword)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func unmarshal(path string, data []byte, c *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("path_exists", validatePathExists)
	return v
}

// path_exists accepts a file or directory that can be stat'ed.
func validatePathExists(fl validator.FieldLevel) bool {
	_, err := os.Stat(fl.Field().String())
	return err == nil
}

// Validate checks field ranges, the output format and that every configured
// store path exists. Callers that override fields after [Load] should call
// it again.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
