// Package transport defines the envelopes the maintenance core hands to whatever
// channel carries messages to clients.
package transport

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Envelope is an opaque tagged message delivered to a client. ID is unique
// per envelope so clients can drop duplicate deliveries.
type Envelope struct {
	ID      string `json:"id"`
	Tag     string `json:"tag"`
	Payload any    `json:"payload"`
}

// FileTransfer carries a whole file. Data is base64 encoded on the JSON wire.
type FileTransfer struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// NewFileTransfer wraps a file's name and bytes in an envelope tagged tag.
func NewFileTransfer(tag, filename string, data []byte) Envelope {
	return Envelope{ID: uuid.NewString(), Tag: tag, Payload: FileTransfer{Filename: filename, Data: data}}
}

// Sender hands an envelope to the transport.
type Sender interface {
	Send(ctx context.Context, env Envelope) error
}

// SenderFunc adapts an ordinary function to the Sender interface.
type SenderFunc func(ctx context.Context, env Envelope) error

func (f SenderFunc) Send(ctx context.Context, env Envelope) error {
	return f(ctx, env)
}

// LogSender only records that an envelope would have been sent. It is used
// when no push channel is configured.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, env Envelope) error {
	if ft, ok := env.Payload.(FileTransfer); ok {
		log.Printf("No transport configured; dropping %s envelope %s for %s (%d bytes)", env.Tag, env.ID, ft.Filename, len(ft.Data))
		return nil
	}
	log.Printf("No transport configured; dropping %s envelope", env.Tag)
	return nil
}
