package email

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendManagerWelcome(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
	)
	svc := NewEmailService(EmailConfig{
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		FromName:    "Tailor Shop",
		FromEmail:   "noreply@example.com",
		FrontendURL: "https://app.example.com/",
	}).WithSender(func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, string(msg)
		return nil
	})

	err := svc.SendManagerWelcome(ManagerWelcome{
		ManagerName: "Amina <b>",
		Email:       "amina@example.com",
		ShopName:    "Westlands",
		Password:    "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"amina@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: You now manage Westlands - Tailor Shop\r\n")
	assert.Contains(t, gotMsg, "Amina &lt;b&gt;")
	assert.Contains(t, gotMsg, "https://app.example.com/login")
	assert.Contains(t, gotMsg, "s3cret-pass")
}

func TestSendManagerWelcomeErrors(t *testing.T) {
	err := NewEmailService(EmailConfig{}).SendManagerWelcome(ManagerWelcome{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	boom := errors.New("boom")
	svc := NewEmailService(EmailConfig{SMTPHost: "localhost", SMTPPort: 25}).
		WithSender(func(string, smtp.Auth, string, []string, []byte) error { return boom })
	err = svc.SendManagerWelcome(ManagerWelcome{Email: "a@b.c", ShopName: "X"})
	assert.ErrorIs(t, err, boom)
}

func TestHeaderSafe(t *testing.T) {
	assert.Equal(t, "a@b.cBcc: x@y.z", headerSafe("a@b.c\r\nBcc: x@y.z"))
}
