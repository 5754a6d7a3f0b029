package telegrambotmessagesender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"remindbot/internal/core/domain/bot"
	"time"
)

type telegramMessage struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

type TelegramBotMessageSender struct {
	httpClient http.Client
	baseURL    url.URL
	token      string
}

func New(baseURL url.URL, token string, timeout time.Duration) *TelegramBotMessageSender {
	return &TelegramBotMessageSender{
		baseURL:    baseURL,
		token:      token,
		httpClient: http.Client{Timeout: timeout},
	}
}

func (s *TelegramBotMessageSender) SendMessage(ctx context.Context, m bot.Message) error {
	url := s.baseURL.JoinPath(fmt.Sprintf("bot%s", s.token), "sendMessage")
	var body bytes.Buffer
	encoder := json.NewEncoder(&body)
	err := encoder.Encode(telegramMessage{ChatID: m.ChatID, Text: m.Text})
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url.String(), &body)
	if err != nil {
		return err
	}
	request.Header.Add("content-type", "application/json")
	resp, err := s.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return fmt.Errorf("got unsuccessfull response from Telegram: %s", string(body))
	}
	return nil
}
