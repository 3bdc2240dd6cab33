package websocket

import "time"

// Envelope: конверт сообщения. По Type фронтенд понимает, что лежит в Payload.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
