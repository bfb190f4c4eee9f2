package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/firmantawakal/simak-tracer-study/internals/configs"
)

//go:generate mockgen -source=client.go -destination=mock_mailer.go -package=mailer

// Message adalah satu email HTML ke satu penerima.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// Mailer mengirim satu pesan. Implementasi wajib aman dipanggil bersamaan.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

var ErrNotConfigured = errors.New("mailer: SMTP belum dikonfigurasi")

// SMTPClient membuka koneksi SMTP baru per pesan.
type SMTPClient struct {
	cfg     configs.MailConfig
	timeout time.Duration
}

func NewSMTPClient(cfg configs.MailConfig) *SMTPClient {
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &SMTPClient{cfg: cfg, timeout: timeout}
}

func (c *SMTPClient) Send(ctx context.Context, msg Message) error {
	if c.cfg.Host == "" {
		return ErrNotConfigured
	}

	m := mail.NewMsg()
	if err := m.FromFormat(c.cfg.FromName, c.cfg.FromEmail); err != nil {
		return fmt.Errorf("set pengirim: %w", err)
	}
	if msg.ToName != "" {
		if err := m.AddToFormat(msg.ToName, msg.To); err != nil {
			return fmt.Errorf("set penerima: %w", err)
		}
	} else if err := m.To(msg.To); err != nil {
		return fmt.Errorf("set penerima: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(c.cfg.Host, c.options()...)
	if err != nil {
		return fmt.Errorf("buat client SMTP (host=%s port=%d): %w", c.cfg.Host, c.cfg.Port, err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("kirim email (host=%s port=%d): %w", c.cfg.Host, c.cfg.Port, err)
	}

	log.Printf("[MAIL] terkirim ke %s", msg.To)
	return nil
}

func (c *SMTPClient) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(c.cfg.Port),
		mail.WithTimeout(c.timeout),
		mail.WithTLSConfig(&tls.Config{ServerName: c.cfg.Host, MinVersion: tls.VersionTLS12}),
	}
	if c.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if c.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.cfg.User),
			mail.WithPassword(c.cfg.Password),
		)
	}
	return opts
}
