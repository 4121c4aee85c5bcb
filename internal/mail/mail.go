// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mail delivers the rendered digest over SMTP.
package mail

import (
	"fmt"
	"io"
	"math"
	"net/smtp"
	"strings"
	"time"

	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// sendMail is swapped out by tests to avoid a real SMTP session.
var sendMail = smtp.SendMail

// backoffBase controls the base duration for retry backoff. Tests override
// this to avoid real sleeps.
var backoffBase = 2 * time.Second

const maxAttempts = 3

// Sender delivers HTML digests via an SMTP server with STARTTLS and PLAIN
// auth.
type Sender struct {
	cfg types.MailConfig
}

// NewSender validates the delivery configuration and returns a Sender.
func NewSender(cfg types.MailConfig) (*Sender, error) {
	if cfg.Sender == "" {
		return nil, fmt.Errorf("sender address is required")
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("sender password is required")
	}
	if len(cfg.Recipients) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	if cfg.SMTPHost == "" {
		cfg.SMTPHost = "smtp.gmail.com"
	}
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}
	return &Sender{cfg: cfg}, nil
}

// Send builds an RFC 5322 message around the HTML body and delivers it,
// retrying transient failures with exponential backoff (2s, 4s). The
// returned error reports the final failure; the caller logs it and carries
// on.
func (s *Sender) Send(subject, htmlBody string, w io.Writer) error {
	msg := s.buildMessage(subject, htmlBody)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Sender, s.cfg.Password, s.cfg.SMTPHost)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			fmt.Fprintf(w, "retrying email send in %v (attempt %d/%d)\n", backoff, attempt+1, maxAttempts)
			time.Sleep(backoff)
		}

		if err := sendMail(addr, auth, s.cfg.Sender, s.cfg.Recipients, msg); err != nil {
			lastErr = err
			fmt.Fprintf(w, "warning: email send failed: %v\n", err)
			continue
		}
		return nil
	}

	return fmt.Errorf("sending email after %d attempts: %w", maxAttempts, lastErr)
}

// buildMessage assembles the RFC 5322 message. Headers and body are
// separated by a blank CRLF line.
func (s *Sender) buildMessage(subject, htmlBody string) []byte {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.Sender))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(s.cfg.Recipients, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	return []byte(msg.String())
}

// ParseRecipients splits a comma-separated recipient list into trimmed
// addresses.
func ParseRecipients(s string) []string {
	var out []string
	for _, addr := range strings.Split(s, ",") {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
