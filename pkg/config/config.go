// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultFileName is looked up beside the executable when no path is given.
	DefaultFileName = "appsettings.yaml"
	// ConfigPathEnv overrides the settings file location.
	ConfigPathEnv = "STUCK_NOTIFIER_CONFIG"

	envPrefix      = "STUCK_NOTIFIER_"
	defaultTimeout = 30 * time.Second
	smtpsPort      = 465
)

// ErrIncompleteSettings is returned by Validate when a value required for
// sending mail is missing.
var ErrIncompleteSettings = errors.New("incomplete mail settings")

// Settings is the appSettings section of the settings file.
type Settings struct {
	MailHostname string `yaml:"mailHostname"`
	MailPort     int    `yaml:"mailPort"`
	MailUsername string `yaml:"mailUsername"`
	MailPassword string `yaml:"mailPassword"`
	// ProjectName tells the operator which installation reported the stuck folder.
	ProjectName string `yaml:"projectName"`

	// InsecureSkipVerify disables certificate verification of the mail server.
	InsecureSkipVerify bool `yaml:"insecureSkipVerify,omitempty"`
	// ImplicitTLS forces (true) or disables (false) SMTPS. When unset, SMTPS is
	// used on port 465 and STARTTLS everywhere else.
	ImplicitTLS *bool `yaml:"implicitTLS,omitempty"`
	// Timeout bounds dialing and talking to the mail server, e.g. "30s".
	Timeout string `yaml:"timeout,omitempty"`
}

type file struct {
	AppSettings Settings `yaml:"appSettings"`
}

// DefaultPath returns the settings file used when no --config flag is given.
func DefaultPath() string {
	if env := os.Getenv(ConfigPathEnv); env != "" {
		return env
	}
	exe, err := os.Executable()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(filepath.Dir(exe), DefaultFileName)
}

// Load reads the appSettings section from path and applies the environment
// overlay on top. A missing file is not an error; the returned settings then
// only carry what the environment provides.
func Load(path string) (Settings, error) {
	if path == "" {
		path = DefaultPath()
	}

	var f file
	content, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// optional
	case err != nil:
		return Settings{}, fmt.Errorf("trying to open settings file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(content, &f); err != nil {
			return Settings{}, fmt.Errorf("error unmarshaling YAML %s: %w", path, err)
		}
	}

	s := f.AppSettings
	if err := s.applyEnv(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	s.MailHostname = getEnvString(envPrefix+"MAIL_HOSTNAME", s.MailHostname)
	s.MailUsername = getEnvString(envPrefix+"MAIL_USERNAME", s.MailUsername)
	s.MailPassword = getEnvString(envPrefix+"MAIL_PASSWORD", s.MailPassword)
	s.ProjectName = getEnvString(envPrefix+"PROJECT_NAME", s.ProjectName)
	s.Timeout = getEnvString(envPrefix+"MAIL_TIMEOUT", s.Timeout)

	if v, ok := os.LookupEnv(envPrefix + "MAIL_PORT"); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sMAIL_PORT %q: %w", envPrefix, v, err)
		}
		s.MailPort = port
	}
	return nil
}

// Validate reports every key that must be set before mail can be sent.
func (s Settings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.MailHostname) == "" {
		missing = append(missing, "mailHostname")
	}
	if s.MailPort <= 0 || s.MailPort > 65535 {
		missing = append(missing, "mailPort")
	}
	if strings.TrimSpace(s.MailUsername) == "" {
		missing = append(missing, "mailUsername")
	}
	if s.MailPassword == "" {
		missing = append(missing, "mailPassword")
	}
	if strings.TrimSpace(s.ProjectName) == "" {
		missing = append(missing, "projectName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteSettings, strings.Join(missing, ", "))
	}
	if _, err := s.MailTimeout(); err != nil {
		return err
	}
	return nil
}

// MailTimeout parses Timeout, falling back to 30s when it is empty.
func (s Settings) MailTimeout() (time.Duration, error) {
	if s.Timeout == "" {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return defaultTimeout, fmt.Errorf("invalid timeout %q: %w", s.Timeout, err)
	}
	if d <= 0 {
		return defaultTimeout, fmt.Errorf("invalid timeout %q: must be positive", s.Timeout)
	}
	return d, nil
}

// UseImplicitTLS reports whether the connection is TLS from the first byte.
func (s Settings) UseImplicitTLS() bool {
	if s.ImplicitTLS != nil {
		return *s.ImplicitTLS
	}
	return s.MailPort == smtpsPort
}

// Print logs the effective settings with the password redacted.
func (s Settings) Print(log *zap.SugaredLogger) {
	password := ""
	if s.MailPassword != "" {
		password = "<redacted>"
	}
	log.Debugw("Mail settings",
		"mail_hostname", s.MailHostname,
		"mail_port", s.MailPort,
		"mail_username", s.MailUsername,
		"mail_password", password,
		"project_name", s.ProjectName,
		"implicit_tls", s.UseImplicitTLS(),
		"insecure_skip_verify", s.InsecureSkipVerify,
		"timeout", s.Timeout,
	)
}

// getEnvString returns the value of an environment variable, or the provided default if not set.
func getEnvString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}
