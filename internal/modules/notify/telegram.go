package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TelegramSender posts messages through the Bot API sendMessage method.
type TelegramSender struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewTelegramSender(baseURL, token string, timeout time.Duration) *TelegramSender {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TelegramSender{baseURL: baseURL, token: token, client: &http.Client{Timeout: timeout}}
}

type sendMessageRequest struct {
	ChatID    ChatID    `json:"chat_id"`
	Text      string    `json:"text"`
	ParseMode ParseMode `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}

func (t *TelegramSender) Send(ctx context.Context, chatID ChatID, text string, mode ParseMode) error {
	if t.token == "" {
		return fmt.Errorf("%w: bot token not configured", ErrDelivery)
	}
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text, ParseMode: mode})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	var out apiResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode != http.StatusOK || !out.OK {
		desc := out.Description
		if desc == "" {
			desc = resp.Status
		}
		return fmt.Errorf("%w: telegram api error: %s", ErrDelivery, desc)
	}
	return nil
}
