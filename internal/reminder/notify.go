package reminder

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoSubscriber is returned by a Sink that has nobody to deliver to yet.
var ErrNoSubscriber = errors.New("no subscribed chat")

// ButtonAction is an inline action attached to a notification. Exactly one of
// URL or CallbackData is set.
type ButtonAction struct {
	Label        string
	URL          string
	CallbackData string
}

// Notification is a message the reminder trigger asks a Sink to deliver.
type Notification struct {
	Text    string
	Actions []ButtonAction
}

// Sink delivers notifications. Send is never called with state locked.
type Sink interface {
	Send(ctx context.Context, n Notification) error
}

// DeliveryError wraps a transport failure. It never affects reminder state
// and is not retried.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver notification: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// NewReminderNotification builds the monthly reminder: text, an optional link
// button and the "already done" button.
func NewReminderNotification(text, linkLabel, linkURL, doneLabel string) Notification {
	n := Notification{Text: text}
	if linkURL != "" {
		n.Actions = append(n.Actions, ButtonAction{Label: linkLabel, URL: linkURL})
	}
	if doneLabel != "" {
		n.Actions = append(n.Actions, ButtonAction{Label: doneLabel, CallbackData: CallbackDone})
	}
	return n
}
