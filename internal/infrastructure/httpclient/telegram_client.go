package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alpha_radar/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultTelegramBaseURL = "https://api.telegram.org"
	telegramChannel        = "telegram"
)

// sendMessageRequest is the Bot API sendMessage body.
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// TelegramNotifier posts Markdown messages to one chat. It never retries.
type TelegramNotifier struct {
	client  *fasthttp.Client
	baseURL string
	token   string
	chatID  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewTelegramNotifier creates a notifier. Empty token or chat id are reported on Send.
func NewTelegramNotifier(baseURL, token, chatID string, timeout time.Duration, logger *zap.Logger) *TelegramNotifier {
	if baseURL == "" {
		baseURL = DefaultTelegramBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TelegramNotifier{
		client:  &fasthttp.Client{Name: "alpha-radar"},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		chatID:  chatID,
		timeout: timeout,
		logger:  logger.Named("TelegramNotifier"),
	}
}

// Send implements port.Notifier. Failures are *entity.DeliveryError.
func (n *TelegramNotifier) Send(ctx context.Context, text string) error {
	if n.token == "" || n.chatID == "" {
		n.logger.Error("TELEGRAM_BOT_TOKEN or TELEGRAM_CHAT_ID is not set")
		return &entity.DeliveryError{Channel: telegramChannel, Err: entity.ErrNotConfigured}
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return &entity.DeliveryError{Channel: telegramChannel, Err: fmt.Errorf("marshal payload: %w", err)}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		err = n.client.DoDeadline(req, resp, deadline)
	} else {
		err = n.client.DoTimeout(req, resp, n.timeout)
	}
	if err != nil {
		// The URL carries the bot token, so it is never logged.
		n.logger.Error("Failed to execute request to Telegram", zap.Error(err))
		return &entity.DeliveryError{Channel: telegramChannel, Err: fmt.Errorf("send request: %w", err)}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		respBody := resp.Body()
		if len(respBody) > 1024 {
			respBody = respBody[:1024]
		}
		n.logger.Error("Telegram API request failed",
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", respBody))
		return &entity.DeliveryError{
			Channel: telegramChannel,
			Err:     fmt.Errorf("unexpected status %d: %s", resp.StatusCode(), string(respBody)),
		}
	}

	var decoded sendMessageResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err == nil && !decoded.OK {
		return &entity.DeliveryError{Channel: telegramChannel, Err: fmt.Errorf("telegram rejected message: %s", decoded.Description)}
	}

	n.logger.Debug("Message delivered to Telegram", zap.String("chatID", n.chatID))
	return nil
}
