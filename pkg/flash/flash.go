// Package flash carries user-facing alerts produced by mutations to whoever
// is showing them: an in-memory queue for polling clients and the websocket
// hub for connected ones.
package flash

import (
	"github.com/google/uuid"
)

type AlertType string

const (
	AlertSuccess AlertType = "SUCCESS"
	AlertWarn    AlertType = "WARN"
	AlertError   AlertType = "ERROR"
)

// Alert is a single flash message
type Alert struct {
	Id   string    `json:"id"`
	Type AlertType `json:"type"`
	Text string    `json:"text"`
}

func NewAlert(alertType AlertType, text string) Alert {
	return Alert{
		Id:   uuid.NewString(),
		Type: alertType,
		Text: text,
	}
}

func Success(text string) Alert { return NewAlert(AlertSuccess, text) }
func Warn(text string) Alert    { return NewAlert(AlertWarn, text) }
func Error(text string) Alert   { return NewAlert(AlertError, text) }

// Messenger accepts alerts for a user and withdraws them again
type Messenger interface {
	AddMessage(userID uuid.UUID, alert Alert)
	RemoveMessage(userID uuid.UUID, alertID string)
}

// Drain hands every alert of a mutation payload to the messenger, in order
func Drain(m Messenger, userID uuid.UUID, alerts []Alert) {
	if m == nil {
		return
	}
	for _, alert := range alerts {
		m.AddMessage(userID, alert)
	}
}

// Fanout forwards to several messengers. Nil entries are skipped.
type Fanout []Messenger

func (f Fanout) AddMessage(userID uuid.UUID, alert Alert) {
	for _, m := range f {
		if m != nil {
			m.AddMessage(userID, alert)
		}
	}
}

func (f Fanout) RemoveMessage(userID uuid.UUID, alertID string) {
	for _, m := range f {
		if m != nil {
			m.RemoveMessage(userID, alertID)
		}
	}
}
