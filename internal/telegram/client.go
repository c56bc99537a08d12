package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIBase is the production Bot API prefix; the token is appended to it.
const APIBase = "https://api.telegram.org/bot"

// maxMessageLen stays under the Bot API's 4096-character sendMessage ceiling.
const maxMessageLen = 3900

// Client is a minimal Telegram Bot API client.
type Client struct {
	apiBase    string
	httpClient *http.Client
}

// NewClient creates a client for the given bot API base URL
// (e.g. "https://api.telegram.org/bot<token>").
func NewClient(apiBase string, requestTimeout time.Duration) *Client {
	return &Client{
		apiBase: apiBase,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// apiResponse is the generic Bot API response wrapper.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description,omitempty"`
}

// SendMessage sends a text message to the given chat, optionally carrying an
// inline keyboard.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markup *InlineKeyboardMarkup) error {
	payload := struct {
		ChatID      int64                 `json:"chat_id"`
		Text        string                `json:"text"`
		ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	}{
		ChatID:      chatID,
		Text:        truncate(text, maxMessageLen),
		ReplyMarkup: markup,
	}

	return c.post(ctx, "sendMessage", payload, nil)
}

// AnswerCallbackQuery acknowledges a pressed inline button so the client
// stops showing its progress indicator.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	if callbackID == "" {
		return nil
	}
	payload := struct {
		CallbackQueryID string `json:"callback_query_id"`
	}{CallbackQueryID: callbackID}

	return c.post(ctx, "answerCallbackQuery", payload, nil)
}

// SetWebhook registers the public URL Telegram should push updates to.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	payload := struct {
		URL string `json:"url"`
	}{URL: url}

	return c.post(ctx, "setWebhook", payload, nil)
}

// GetUpdates long-polls the Bot API for pending updates starting at offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	payload := struct {
		Offset  int64 `json:"offset"`
		Timeout int   `json:"timeout"`
	}{Offset: offset, Timeout: timeoutSec}

	var updates []Update
	if err := c.post(ctx, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

func (c *Client) post(ctx context.Context, method string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram %s: encode payload: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram %s: build request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("telegram %s: read response: %w", method, err)
	}

	var wrapped apiResponse
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return fmt.Errorf("telegram %s: parse response: %w", method, err)
	}
	if !wrapped.OK {
		return fmt.Errorf("telegram %s rejected: %s", method, wrapped.Description)
	}

	if result != nil && len(wrapped.Result) > 0 {
		if err := json.Unmarshal(wrapped.Result, result); err != nil {
			return fmt.Errorf("telegram %s: parse result: %w", method, err)
		}
	}
	return nil
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
