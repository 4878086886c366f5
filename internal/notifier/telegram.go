package notifier

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Sender interface {
	Send(ctx context.Context, chatID, text string) error
}

// TelegramSender kirim pesan lewat Bot API. Gak ada client lib yang dipakai,
// endpoint-nya cuma satu form POST.
type TelegramSender struct {
	Token  string
	Client *http.Client
}

func NewTelegramSender(token string) *TelegramSender {
	return &TelegramSender{
		Token:  token,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (t *TelegramSender) Send(ctx context.Context, chatID, text string) error {
	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram send: status %d", resp.StatusCode)
	}
	return nil
}
