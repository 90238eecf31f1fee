package mailer

import (
	"bytes"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMessage = Message{
	From:    "blog@example.com",
	To:      []string{"friend@example.com"},
	Subject: "Ann recommends you read Hello",
	Body:    "Read Hello at http://example.com/2024/1/2/hello/\n\nAnn's comments: nice",
}

func TestBuildMessage(t *testing.T) {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	raw := string(buildMessage(testMessage, date))

	assert.Contains(t, raw, "From: blog@example.com\r\n")
	assert.Contains(t, raw, "To: friend@example.com\r\n")
	assert.Contains(t, raw, "Subject: Ann recommends you read Hello\r\n")
	assert.Contains(t, raw, "Date: Tue, 02 Jan 2024 03:04:05 +0000\r\n")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=utf-8\r\n")

	parts := strings.SplitN(raw, "\r\n\r\n", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "Read Hello at http://example.com/2024/1/2/hello/\r\n\r\nAnn's comments: nice", parts[1])
}

func TestBuildMessageEncodesSubject(t *testing.T) {
	msg := testMessage
	msg.Subject = "Zoë recommends you read Café"
	raw := string(buildMessage(msg, time.Now()))
	assert.Contains(t, raw, "Subject: =?utf-8?q?")
	assert.NotContains(t, raw, "Café")
}

func TestSMTPMailer(t *testing.T) {
	t.Run("sends through relay", func(t *testing.T) {
		m := NewSMTPMailer(SMTPOptions{Host: "mail.example.com", Port: 587, Username: "u", Password: "p"})
		var gotAddr, gotFrom string
		var gotTo []string
		var gotAuth smtp.Auth
		m.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotAuth, gotFrom, gotTo = addr, a, from, to
			return nil
		}

		require.NoError(t, m.Send(testMessage))
		assert.Equal(t, "mail.example.com:587", gotAddr)
		assert.NotNil(t, gotAuth)
		assert.Equal(t, "blog@example.com", gotFrom)
		assert.Equal(t, []string{"friend@example.com"}, gotTo)
	})

	t.Run("no auth without username", func(t *testing.T) {
		m := NewSMTPMailer(SMTPOptions{Host: "localhost", Port: 25})
		assert.Nil(t, m.auth)
	})

	t.Run("relay failure", func(t *testing.T) {
		m := NewSMTPMailer(SMTPOptions{Host: "localhost", Port: 25})
		m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
			return errors.New("connection refused")
		}
		err := m.Send(testMessage)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("no recipients", func(t *testing.T) {
		m := NewSMTPMailer(SMTPOptions{Host: "localhost", Port: 25})
		assert.ErrorIs(t, m.Send(Message{From: "a@example.com"}), ErrNoRecipients)
	})
}

func TestConsoleMailer(t *testing.T) {
	var buf bytes.Buffer
	m := NewConsoleMailer(&buf)

	require.NoError(t, m.Send(testMessage))
	out := buf.String()
	assert.Contains(t, out, "Subject: Ann recommends you read Hello\n")
	assert.Contains(t, out, "Ann's comments: nice")
	assert.NotContains(t, out, "\r")
}

func TestOutbox(t *testing.T) {
	o := &Outbox{}
	require.NoError(t, o.Send(testMessage))
	require.Len(t, o.Messages(), 1)
	assert.Equal(t, testMessage, o.Messages()[0])

	o.Err = errors.New("down")
	assert.Error(t, o.Send(testMessage))
	assert.Len(t, o.Messages(), 1)
}

func TestNew(t *testing.T) {
	m, err := New(BackendSMTP, SMTPOptions{Host: "localhost", Port: 25}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SMTPMailer{}, m)

	m, err = New(BackendConsole, SMTPOptions{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleMailer{}, m)

	m, err = New(BackendMemory, SMTPOptions{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Outbox{}, m)

	_, err = New("carrier-pigeon", SMTPOptions{}, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
