package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrDelivery wraps every failure to hand a message to the provider.
var ErrDelivery = errors.New("notification delivery failed")

// ParseMode tells the provider how to interpret markup in the text.
type ParseMode string

const (
	ParseModeHTML     ParseMode = "HTML"
	ParseModeMarkdown ParseMode = "MarkdownV2"
	ParseModeNone     ParseMode = ""
)

// ChatID addresses a chat: a numeric user/group id or an @channel username.
type ChatID string

// UserChat returns the ChatID of a private chat with a Telegram user.
func UserChat(id int64) ChatID { return ChatID(strconv.FormatInt(id, 10)) }

// UnmarshalJSON accepts both JSON numbers and strings.
func (c *ChatID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = ChatID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = ChatID(n.String())
	return nil
}

// Sender delivers a text message to a chat.
type Sender interface {
	Send(ctx context.Context, chatID ChatID, text string, mode ParseMode) error
}
