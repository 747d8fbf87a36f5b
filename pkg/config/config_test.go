// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/telekom/stuck-notifier/pkg/config"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expected    config.Settings
		expectError bool
	}{
		{
			name: "full section",
			content: `
appSettings:
  mailHostname: smtp.example.com
  mailPort: 587
  mailUsername: ops@example.com
  mailPassword: secret
  projectName: Invoices
`,
			expected: config.Settings{
				MailHostname: "smtp.example.com",
				MailPort:     587,
				MailUsername: "ops@example.com",
				MailPassword: "secret",
				ProjectName:  "Invoices",
			},
		},
		{
			name: "partial section keeps missing keys empty",
			content: `
appSettings:
  mailHostname: smtp.example.com
`,
			expected: config.Settings{MailHostname: "smtp.example.com"},
		},
		{
			name:     "unrelated sections are ignored",
			content:  "logging:\n  level: debug\n",
			expected: config.Settings{},
		},
		{
			name:        "invalid yaml",
			content:     "appSettings: [unterminated",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := config.Load(writeSettings(t, tt.content))
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, settings)
		})
	}
}

func TestLoadMissingFileIsTolerated(t *testing.T) {
	settings, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Settings{}, settings)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeSettings(t, `
appSettings:
  mailHostname: smtp.example.com
  mailPort: 587
  projectName: FromFile
`)
	t.Setenv("STUCK_NOTIFIER_PROJECT_NAME", "FromEnv")
	t.Setenv("STUCK_NOTIFIER_MAIL_PORT", "465")
	t.Setenv("STUCK_NOTIFIER_MAIL_PASSWORD", "env-secret")

	settings, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", settings.MailHostname)
	assert.Equal(t, "FromEnv", settings.ProjectName)
	assert.Equal(t, 465, settings.MailPort)
	assert.Equal(t, "env-secret", settings.MailPassword)
}

func TestLoadInvalidPortEnv(t *testing.T) {
	t.Setenv("STUCK_NOTIFIER_MAIL_PORT", "smtp")

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_PORT")
}

func TestDefaultPathFromEnv(t *testing.T) {
	t.Setenv(config.ConfigPathEnv, "/etc/stuck-notifier/appsettings.yaml")
	assert.Equal(t, "/etc/stuck-notifier/appsettings.yaml", config.DefaultPath())
}

func TestDefaultPathBesideExecutable(t *testing.T) {
	t.Setenv(config.ConfigPathEnv, "")
	assert.Equal(t, config.DefaultFileName, filepath.Base(config.DefaultPath()))
}

func validSettings() config.Settings {
	return config.Settings{
		MailHostname: "smtp.example.com",
		MailPort:     587,
		MailUsername: "ops@example.com",
		MailPassword: "secret",
		ProjectName:  "Invoices",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Settings)
		missing []string
	}{
		{name: "complete", mutate: func(*config.Settings) {}},
		{name: "no host", mutate: func(s *config.Settings) { s.MailHostname = " " }, missing: []string{"mailHostname"}},
		{name: "no port", mutate: func(s *config.Settings) { s.MailPort = 0 }, missing: []string{"mailPort"}},
		{name: "port out of range", mutate: func(s *config.Settings) { s.MailPort = 70000 }, missing: []string{"mailPort"}},
		{name: "no username", mutate: func(s *config.Settings) { s.MailUsername = "" }, missing: []string{"mailUsername"}},
		{name: "no password", mutate: func(s *config.Settings) { s.MailPassword = "" }, missing: []string{"mailPassword"}},
		{name: "no project", mutate: func(s *config.Settings) { s.ProjectName = "" }, missing: []string{"projectName"}},
		{
			name:    "empty settings",
			mutate:  func(s *config.Settings) { *s = config.Settings{} },
			missing: []string{"mailHostname", "mailPort", "mailUsername", "mailPassword", "projectName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)
			err := s.Validate()
			if len(tt.missing) == 0 {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, config.ErrIncompleteSettings)
			for _, key := range tt.missing {
				assert.Contains(t, err.Error(), key)
			}
		})
	}
}

func TestValidateRejectsBadTimeout(t *testing.T) {
	s := validSettings()
	s.Timeout = "soon"
	err := s.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrIncompleteSettings)
}

func TestMailTimeout(t *testing.T) {
	s := validSettings()
	d, err := s.MailTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	s.Timeout = "5s"
	d, err = s.MailTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	s.Timeout = "-1s"
	_, err = s.MailTimeout()
	require.Error(t, err)
}

func TestUseImplicitTLS(t *testing.T) {
	s := validSettings()
	assert.False(t, s.UseImplicitTLS())

	s.MailPort = 465
	assert.True(t, s.UseImplicitTLS())

	off := false
	s.ImplicitTLS = &off
	assert.False(t, s.UseImplicitTLS())

	on := true
	s.MailPort = 2525
	s.ImplicitTLS = &on
	assert.True(t, s.UseImplicitTLS())
}

func TestPrintRedactsPassword(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	validSettings().Print(zap.New(core).Sugar())

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "<redacted>", fields["mail_password"])
	assert.Equal(t, "Invoices", fields["project_name"])
}

func TestLoadDotEnv(t *testing.T) {
	const key = "STUCK_NOTIFIER_DOTENV_TEST"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0o600))

	require.NoError(t, config.LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv(key))
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	require.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
