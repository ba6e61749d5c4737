package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetupservice/internal/domain"
)

type recordingMailer struct {
	to, subject, html, text string
	calls                   int
	err                     error
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.calls++
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return m.err
}

type stubRenderer struct {
	name string
	err  error
}

func (r *stubRenderer) Render(name string, data any) (string, string, string, error) {
	r.name = name
	if r.err != nil {
		return "", "", "", r.err
	}
	d := data.(*domain.RSVPConfirmationEmailData)
	return "You're going to " + d.Title, "<p>" + d.UserName + "</p>", d.UserName, nil
}

func TestEmailService_SendRSVPConfirmation(t *testing.T) {
	data := &domain.RSVPConfirmationEmailData{Email: "ann@example.com", UserName: "Ann", Title: "Go Night"}

	t.Run("renders and sends", func(t *testing.T) {
		mailer := &recordingMailer{}
		renderer := &stubRenderer{}
		svc := NewEmailService(mailer, renderer, testLogger)

		require.NoError(t, svc.SendRSVPConfirmation(context.Background(), data))
		assert.Equal(t, "rsvp_confirmation", renderer.name)
		assert.Equal(t, "ann@example.com", mailer.to)
		assert.Equal(t, "You're going to Go Night", mailer.subject)
		assert.Equal(t, "<p>Ann</p>", mailer.html)
	})

	t.Run("render failure skips send", func(t *testing.T) {
		mailer := &recordingMailer{}
		svc := NewEmailService(mailer, &stubRenderer{err: errors.New("bad template")}, testLogger)

		err := svc.SendRSVPConfirmation(context.Background(), data)
		require.ErrorContains(t, err, "bad template")
		assert.Zero(t, mailer.calls)
	})

	t.Run("mailer failure is returned", func(t *testing.T) {
		mailer := &recordingMailer{err: errors.New("throttled")}
		svc := NewEmailService(mailer, &stubRenderer{}, testLogger)

		err := svc.SendRSVPConfirmation(context.Background(), data)
		require.ErrorContains(t, err, "throttled")
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&recordingMailer{}, &stubRenderer{}, testLogger)
		require.Error(t, svc.SendRSVPConfirmation(context.Background(), nil))
	})
}
