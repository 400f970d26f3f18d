package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"alpha_radar/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTelegramNotifier_SendPostsMarkdown(t *testing.T) {
	var got sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.URL+"/", "123:abc", "-100500", time.Second, zap.NewNop())
	require.NoError(t, n.Send(context.Background(), "*hello*"))

	assert.Equal(t, "-100500", got.ChatID)
	assert.Equal(t, "*hello*", got.Text)
	assert.Equal(t, "Markdown", got.ParseMode)
	assert.False(t, got.DisableWebPagePreview)
}

func TestTelegramNotifier_NotConfigured(t *testing.T) {
	n := NewTelegramNotifier("", "", "chat", 0, zap.NewNop())

	err := n.Send(context.Background(), "x")
	var derr *entity.DeliveryError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "telegram", derr.Channel)
	assert.ErrorIs(t, err, entity.ErrNotConfigured)
}

func TestTelegramNotifier_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.URL, "bad", "chat", time.Second, zap.NewNop())
	err := n.Send(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestTelegramNotifier_RejectedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"Bad Request: can't parse entities"}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier(server.URL, "t", "chat", time.Second, zap.NewNop())
	err := n.Send(context.Background(), "*broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't parse entities")
}

func TestTelegramNotifier_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	n := NewTelegramNotifier(url, "t", "chat", 200*time.Millisecond, zap.NewNop())
	var derr *entity.DeliveryError
	assert.True(t, errors.As(n.Send(context.Background(), "x"), &derr))
}
