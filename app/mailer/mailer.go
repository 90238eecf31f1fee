// Package mailer delivers outgoing email through a configurable backend.
package mailer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Backend names accepted by New.
const (
	BackendSMTP    = "smtp"
	BackendConsole = "console"
	BackendMemory  = "memory"
)

var (
	ErrNoRecipients   = errors.New("message has no recipients")
	ErrUnknownBackend = errors.New("unknown mail backend")
)

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Mailer sends a single message.
type Mailer interface {
	Send(msg Message) error
}

// SMTPOptions configures the SMTP backend.
type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
}

// New returns the mailer for backend. Console output goes to w.
func New(backend string, opts SMTPOptions, w io.Writer) (Mailer, error) {
	switch backend {
	case BackendSMTP:
		return NewSMTPMailer(opts), nil
	case BackendConsole, "":
		return NewConsoleMailer(w), nil
	case BackendMemory:
		return &Outbox{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// SMTPMailer delivers messages to an SMTP relay.
type SMTPMailer struct {
	addr string
	auth smtp.Auth

	// sendMail is smtp.SendMail, replaced in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns an SMTP mailer. PLAIN auth is used when a username is set.
func NewSMTPMailer(opts SMTPOptions) *SMTPMailer {
	m := &SMTPMailer{
		addr:     net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		sendMail: smtp.SendMail,
	}
	if opts.Username != "" {
		m.auth = smtp.PlainAuth("", opts.Username, opts.Password, opts.Host)
	}
	return m
}

func (m *SMTPMailer) Send(msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	if err := m.sendMail(m.addr, m.auth, msg.From, msg.To, buildMessage(msg, time.Now())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// ConsoleMailer writes messages to a writer instead of sending them.
type ConsoleMailer struct {
	w  io.Writer
	mu sync.Mutex
}

// NewConsoleMailer writes to w, or to the standard logger when w is nil.
func NewConsoleMailer(w io.Writer) *ConsoleMailer {
	if w == nil {
		w = log.Writer()
	}
	return &ConsoleMailer{w: w}
}

func (m *ConsoleMailer) Send(msg Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	raw := strings.ReplaceAll(string(buildMessage(msg, time.Now())), "\r\n", "\n")
	_, err := fmt.Fprintf(m.w, "%s\n%s\n", raw, strings.Repeat("-", 72))
	return err
}

// Outbox keeps sent messages in memory.
type Outbox struct {
	mu       sync.Mutex
	messages []Message

	// Err, when set, fails every Send.
	Err error
}

func (o *Outbox) Send(msg Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.Err != nil {
		return o.Err
	}
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	o.messages = append(o.messages, msg)
	return nil
}

// Messages returns a copy of everything sent so far.
func (o *Outbox) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.messages...)
}

// buildMessage renders msg as an RFC 5322 message with CRLF line endings.
func buildMessage(msg Message, date time.Time) []byte {
	var b strings.Builder
	header := func(k, v string) {
		b.WriteString(k + ": " + v + "\r\n")
	}
	header("From", msg.From)
	header("To", strings.Join(msg.To, ", "))
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", date.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=utf-8")
	header("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")

	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
