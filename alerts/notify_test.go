package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rustyeddy/traidal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	sent []journal.TradingAlert
	err  error
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) Send(_ context.Context, a journal.TradingAlert) error {
	r.sent = append(r.sent, a)
	return r.err
}

func TestServiceFansOut(t *testing.T) {
	t.Parallel()

	ok := &recorder{}
	failing := &recorder{err: errors.New("boom")}
	svc := NewService(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), ok)
	svc.Add(failing)

	a := alert("a", journal.AlertMaxDrawdown, journal.SeverityCritical, now)
	err := svc.Send(context.Background(), a)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "recorder: boom")
	assert.Len(t, ok.sent, 1)
	assert.Len(t, failing.sent, 1)
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	a := alert("a", journal.AlertMaxDrawdown, journal.SeverityCritical, now)
	a.Message = "drawdown critical"
	require.NoError(t, n.Send(context.Background(), a))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `msg="drawdown critical"`)
	assert.Contains(t, out, "account=acc-1")
}

func TestWebhookNotifier(t *testing.T) {
	t.Parallel()

	var got journal.TradingAlert
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	n, err := NewWebhookNotifier(srv.URL, 0)
	require.NoError(t, err)

	a := alert("a", journal.AlertDailyDrawdown, journal.SeverityDanger, now)
	require.NoError(t, n.Send(context.Background(), a))
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, journal.SeverityDanger, got.Severity)
}

func TestWebhookNotifierErrors(t *testing.T) {
	t.Parallel()

	_, err := NewWebhookNotifier("", 0)
	require.Error(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	n, err := NewWebhookNotifier(srv.URL, 0)
	require.NoError(t, err)
	err = n.Send(context.Background(), alert("a", journal.AlertMaxDrawdown, journal.SeverityWarning, now))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
