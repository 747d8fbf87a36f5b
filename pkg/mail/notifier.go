// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/telekom/stuck-notifier/pkg/config"
	"github.com/telekom/stuck-notifier/pkg/folder"
)

// NotificationIDHeader carries the ID that is also logged for the notification.
const NotificationIDHeader = "X-Stuck-Notifier-ID"

// Notifier mails a stuck folder report to the configured account. Sender and
// recipient are both the mail username.
type Notifier struct {
	settings config.Settings
	sender   Sender
	log      *zap.SugaredLogger

	newID    func() string
	hostname func() (string, error)
}

var _ folder.Notifier = (*Notifier)(nil)

// NewNotifier returns a Notifier. When sender is nil one is built from
// settings on the first notification, after the settings were validated.
func NewNotifier(settings config.Settings, sender Sender, log *zap.SugaredLogger) *Notifier {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Notifier{
		settings: settings,
		sender:   sender,
		log:      log.Named("notifier"),
		newID:    uuid.NewString,
		hostname: os.Hostname,
	}
}

// Notify sends one notification for report.
func (n *Notifier) Notify(ctx context.Context, report folder.Report) error {
	if err := n.settings.Validate(); err != nil {
		return err
	}
	if n.sender == nil {
		s, err := NewSender(n.settings, n.log)
		if err != nil {
			return err
		}
		n.sender = s
	}

	host, err := n.hostname()
	if err != nil {
		host = "unknown"
	}
	id := n.newID()

	body, err := RenderStuckFolder(StuckFolderMailParams{
		ID:           id,
		Project:      n.settings.ProjectName,
		Host:         host,
		Path:         report.Path,
		ResolvedPath: report.ResolvedPath,
		EntryCount:   report.EntryCount,
		Entries:      report.Entries,
		CheckedAt:    report.CheckedAt,
	})
	if err != nil {
		return fmt.Errorf("render notification: %w", err)
	}

	n.log.Infow("Notifying about stuck folder",
		"id", id,
		"path", report.Path,
		"project", n.settings.ProjectName,
		"entries", report.EntryCount)

	return n.sender.Send(ctx, Message{
		From:    n.settings.MailUsername,
		To:      []string{n.settings.MailUsername},
		Subject: StuckFolderSubject(n.settings.ProjectName),
		Body:    body,
		Headers: map[string]string{NotificationIDHeader: id},
	})
}
