// Package alert models back-in-stock email subscriptions.
package alert

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"

	"github.com/kailas-cloud/livesearch/internal/domain"
)

// Subscription asks to be notified when a product is back in stock.
type Subscription struct {
	Email     string `json:"email"`
	Agree     bool   `json:"agree"`
	ProductID int    `json:"productId"`
}

// New validates a subscription. The consent flag is forwarded as given.
func New(email string, agree bool, productID int) (Subscription, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Subscription{}, fmt.Errorf("%w: email is required", domain.ErrInvalidRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Subscription{}, fmt.Errorf("%w: invalid email: %w", domain.ErrInvalidRequest, err)
	}
	if productID <= 0 {
		return Subscription{}, fmt.Errorf("%w: product id must be positive", domain.ErrInvalidRequest)
	}
	return Subscription{Email: email, Agree: agree, ProductID: productID}, nil
}

// ResponseMessage extracts data.AmxnotifStockSubscribe.response_message.
// ok is false when the member is absent.
func ResponseMessage(data json.RawMessage) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	var envelope struct {
		Subscribe *struct {
			ResponseMessage *string `json:"response_message"`
		} `json:"AmxnotifStockSubscribe"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", false
	}
	if envelope.Subscribe == nil || envelope.Subscribe.ResponseMessage == nil {
		return "", false
	}
	return *envelope.Subscribe.ResponseMessage, true
}
