// Package amqp carries goal refresh notifications over RabbitMQ.
package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MessageVersion is the refresh message schema this build reads and writes.
// Messages without a version are treated as version 1.
const MessageVersion = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported refresh message version")
	ErrMissingSource      = errors.New("refresh message has no source")
)

// RefreshMessage tells running dashboards that the goal source changed and
// cached goal lists must be dropped.
type RefreshMessage struct {
	Version   int       `json:"version"`
	Source    string    `json:"source"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRefreshMessage creates a refresh message stamped with the current time
func NewRefreshMessage(source, reason string) *RefreshMessage {
	return &RefreshMessage{
		Version:   MessageVersion,
		Source:    source,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	}
}

// Validate checks the fields a consumer relies on.
func (m *RefreshMessage) Validate() error {
	if m.Version != 0 && m.Version != MessageVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, m.Version)
	}
	if strings.TrimSpace(m.Source) == "" {
		return ErrMissingSource
	}
	return nil
}

// ToJSON validates and encodes the message.
func (m *RefreshMessage) ToJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// RefreshMessageFromJSON decodes and validates a message body.
func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode refresh message: %w", err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if msg.Version == 0 {
		msg.Version = MessageVersion
	}
	return &msg, nil
}
