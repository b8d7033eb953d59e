package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/core"
	"github.com/elmehdi/phishmail/internal/trust"
)

// SMTPFilter is a content-filter frontend: it accepts messages over SMTP,
// scores them through the analyzer, stamps the verdict headers and relays
// the message onward
type SMTPFilter struct {
	service         *core.AnalyzerService
	trusted         *trust.Checker
	logger          *zap.Logger
	listenAddr      string
	server          *smtp.Server
	blockFraudulent bool
	statusHeader    string
	scoreHeader     string
	reportHeader    string
	relayAddr       string
	relayPort       int
	relayEnabled    bool
}

// NewSMTPFilter creates a new SMTP content filter
func NewSMTPFilter(
	service *core.AnalyzerService,
	trusted *trust.Checker,
	logger *zap.Logger,
	listenAddr string,
	blockFraudulent bool,
	statusHeader string,
	scoreHeader string,
	reportHeader string,
	relayAddr string,
	relayPort int,
	relayEnabled bool,
) *SMTPFilter {
	return &SMTPFilter{
		service:         service,
		trusted:         trusted,
		logger:          logger,
		listenAddr:      listenAddr,
		blockFraudulent: blockFraudulent,
		statusHeader:    statusHeader,
		scoreHeader:     scoreHeader,
		reportHeader:    reportHeader,
		relayAddr:       relayAddr,
		relayPort:       relayPort,
		relayEnabled:    relayEnabled,
	}
}

// Start starts the SMTP filter service
func (f *SMTPFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP filter starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP filter service
func (f *SMTPFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessEmail analyzes one email through the core pipeline
func (f *SMTPFilter) ProcessEmail(ctx context.Context, email *core.Email) (*core.AnalysisResult, error) {
	return f.service.AnalyzeEmail(ctx, email)
}

// relay forwards the processed message to the configured next hop
func (f *SMTPFilter) relay(sender string, recipients []string, emailData []byte) error {
	relayAddr := fmt.Sprintf("%s:%d", f.relayAddr, f.relayPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", relayAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
		} else {
			recipientOK = true
		}
	}
	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err = wc.Write(emailData); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *SMTPFilter
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		filter:     b.filter,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *SMTPFilter
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// Logout releases session resources when the client disconnects
func (s *smtpSession) Logout() error {
	return nil
}

// AuthPlain handles PLAIN authentication (not needed for our filter)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data scores the message and forwards it with verdict headers
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.filter.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	email := emailFromMessage(msg, s.sender, s.recipients)

	if s.filter.trusted.IsTrusted(email.From) {
		s.filter.logger.Info("Skipping analysis for trusted sender",
			zap.String("sender", email.From))
		return s.forward(rawData, nil, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, analysisErr := s.filter.service.AnalyzeEmail(ctx, email)
	if analysisErr != nil {
		s.filter.logger.Error("Failed to analyze email",
			zap.Error(analysisErr),
			zap.String("sender", email.From))
		// Deliver unscored rather than bounce on an internal failure
		return s.forward(rawData, nil, analysisErr)
	}

	if result.Bundle.Verdict == core.VerdictFraudulent && s.filter.blockFraudulent {
		s.filter.logger.Info("Rejecting fraudulent email",
			zap.String("from", email.From),
			zap.Float64("score", result.Bundle.FinalScore))
		return fmt.Errorf("550 Rejected as phishing (score: %.2f)", result.Bundle.FinalScore)
	}

	return s.forward(rawData, result, nil)
}

// forward stamps the verdict headers in front of the original message and
// relays it when relaying is enabled
func (s *smtpSession) forward(rawData []byte, result *core.AnalysisResult, analysisErr error) error {
	var modified bytes.Buffer

	if result != nil {
		fmt.Fprintf(&modified, "%s: %s\r\n", s.filter.statusHeader, result.Bundle.Verdict)
		fmt.Fprintf(&modified, "%s: %.4f\r\n", s.filter.scoreHeader, result.Bundle.FinalScore)
		fmt.Fprintf(&modified, "%s: urls=%d suspicious=%d\r\n", s.filter.reportHeader,
			result.URLStats.Count, result.URLStats.PhishingCount)
	}
	if analysisErr != nil {
		fmt.Fprintf(&modified, "X-Phishing-Analysis-Error: %s\r\n", analysisErr.Error())
	}
	modified.Write(rawData)

	if !s.filter.relayEnabled {
		s.filter.logger.Debug("Relay disabled, dropping processed message",
			zap.String("sender", s.sender))
		return nil
	}
	if err := s.filter.relay(s.sender, s.recipients, modified.Bytes()); err != nil {
		s.filter.logger.Error("Failed to relay email",
			zap.Error(err),
			zap.String("sender", s.sender))
		return err
	}
	return nil
}

// emailFromMessage builds the core email from a parsed message
func emailFromMessage(msg *mail.Message, sender string, recipients []string) *core.Email {
	email := &core.Email{
		Headers: make(map[string][]string),
		From:    sender,
		To:      recipients,
	}

	for key, values := range msg.Header {
		email.Headers[key] = values
		if strings.EqualFold(key, "Subject") && len(values) > 0 {
			if decoded, err := decodeEncodedHeader(values[0]); err == nil {
				email.Subject = decoded
			} else {
				email.Subject = values[0]
			}
		}
	}

	if text, err := extractTextFromMessage(msg); err == nil {
		email.Body = text
	}

	return email
}
