// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
// SPDX-License-Identifier: Apache-2.0

package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/telekom/stuck-notifier/pkg/config"
	"github.com/telekom/stuck-notifier/pkg/metrics"
)

var (
	// ErrDelivery wraps every failure to hand a message to the mail server.
	ErrDelivery = errors.New("mail delivery failed")
	// ErrTLSRequired is returned when the server cannot encrypt the session.
	ErrTLSRequired = errors.New("mail server does not support TLS")
)

// Message is a plain text mail.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
	// Headers are added verbatim, e.g. correlation IDs.
	Headers map[string]string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
	GetHost() string
	GetPort() int
}

type sender struct {
	host        string
	port        int
	username    string
	password    string
	implicitTLS bool
	tlsConfig   *tls.Config
	timeout     time.Duration
	log         *zap.SugaredLogger
}

// NewSender returns a Sender for the mail server in settings. Settings are
// expected to be validated already; only the timeout is parsed here.
func NewSender(settings config.Settings, log *zap.SugaredLogger) (Sender, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	timeout, err := settings.MailTimeout()
	if err != nil {
		return nil, err
	}
	log = log.Named("mail")
	log.Debugw("Initializing mail sender",
		"host", settings.MailHostname,
		"port", settings.MailPort,
		"user", settings.MailUsername,
		"implicitTLS", settings.UseImplicitTLS())
	if settings.InsecureSkipVerify {
		log.Warn("InsecureSkipVerify is enabled for mail TLS connection")
	}

	return &sender{
		host:        settings.MailHostname,
		port:        settings.MailPort,
		username:    settings.MailUsername,
		password:    settings.MailPassword,
		implicitTLS: settings.UseImplicitTLS(),
		tlsConfig: &tls.Config{
			ServerName:         settings.MailHostname,
			InsecureSkipVerify: settings.InsecureSkipVerify, //nolint:gosec // opt-in for test relays
			MinVersion:         tls.VersionTLS12,
		},
		timeout: timeout,
		log:     log,
	}, nil
}

// Send delivers msg once. There is no retry; the caller decides what a
// failure means.
func (s *sender) Send(ctx context.Context, msg Message) error {
	s.log.Infow("Sending mail", "to", msg.To, "subject", msg.Subject)

	// gomail.Send flattens errors into strings, keep the original for errors.Is.
	var deliverErr error
	err := gomail.Send(gomail.SendFunc(func(from string, to []string, wt io.WriterTo) error {
		deliverErr = s.deliver(ctx, from, to, wt)
		return deliverErr
	}), newMessage(msg))
	if deliverErr != nil {
		err = deliverErr
	}
	if err != nil {
		metrics.MailSendFailure.WithLabelValues(s.host).Inc()
		s.log.Errorw("Failed to send mail", "to", msg.To, "error", err)
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	metrics.MailSendSuccess.WithLabelValues(s.host).Inc()
	s.log.Infow("Mail sent successfully", "to", msg.To)
	return nil
}

func (s *sender) GetHost() string {
	return s.host
}

func (s *sender) GetPort() int {
	return s.port
}

func newMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	for k, v := range msg.Headers {
		m.SetHeader(k, v)
	}
	m.SetDateHeader("Date", time.Now())
	m.SetBody("text/plain", msg.Body)
	return m
}
