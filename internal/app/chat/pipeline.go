/*
Package chat contains the core logic for presence tracking and real-time message delivery.

This file defines the message delivery Pipeline: validate the outgoing payload,
persist it durably with a server-assigned timestamp, then attempt a best-effort
live push to the recipient. The durable write is the authority for "message sent";
the live push is never allowed to fail the operation.
*/
package chat

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"connectify/internal/app/store"
	"connectify/internal/pkg/errs"
	"connectify/internal/pkg/logx"
)

// MaxTextChars is the maximum allowed length of message text, in runes.
const MaxTextChars = 5000

// MessageStore is the persistence surface the pipeline depends on.
type MessageStore interface {
	GetUserByID(ctx context.Context, id string) (store.User, error)
	CreateMessage(ctx context.Context, params store.CreateMessageParams) (store.Message, error)
	Conversation(ctx context.Context, userA, userB string) ([]store.Message, error)
}

// SendPayload is the client-supplied content of an outgoing message. Image and
// video carry URLs of already-uploaded media; the upload itself goes directly
// to the storage bucket via presigned URLs.
type SendPayload struct {
	Text     string `json:"text"`
	ImageURL string `json:"image"`
	VideoURL string `json:"video"`
}

func (p SendPayload) isEmpty() bool {
	return p.Text == "" && p.ImageURL == "" && p.VideoURL == ""
}

// Pipeline validates, persists, and delivers direct messages.
type Pipeline struct {
	hub   *Hub
	store MessageStore

	// structured logger with Pipeline context.
	logger zerolog.Logger
}

// NewPipeline constructs a Pipeline over the given hub and message store.
func NewPipeline(hub *Hub, messageStore MessageStore) *Pipeline {
	return &Pipeline{
		hub:    hub,
		store:  messageStore,
		logger: logx.Logger().With().Str("component", "Pipeline").Logger(),
	}
}

// Send validates and persists an outgoing message, then attempts live delivery.
//
// Persistence failures are fatal to the operation and reported to the sender;
// the whole send is safe to retry. Delivery failures (recipient offline, push
// failed) are recovered locally and never reported - the message remains stored
// and is returned by the next history fetch.
func (p *Pipeline) Send(ctx context.Context, senderID, recipientID string, payload SendPayload) (store.Message, *errs.CustomError) {
	if payload.isEmpty() {
		return store.Message{}, errs.NewError(errs.ErrMessageEmpty)
	}

	if utf8.RuneCountInString(payload.Text) > MaxTextChars {
		return store.Message{}, errs.NewError(errs.ErrMessageContentTooLong)
	}

	if senderID == recipientID {
		return store.Message{}, errs.NewError(errs.ErrSelfMessage)
	}

	if _, err := p.store.GetUserByID(ctx, recipientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Message{}, errs.NewError(errs.ErrRecipientNotFound)
		}

		p.logger.Error().Err(err).Str("recipient_id", recipientID).Msg("Recipient lookup failed.")
		return store.Message{}, errs.NewError(errs.ErrUnknown)
	}

	msg, err := p.store.CreateMessage(ctx, store.CreateMessageParams{
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        payload.Text,
		ImageURL:    payload.ImageURL,
		VideoURL:    payload.VideoURL,
	})
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("sender_id", senderID).
			Str("recipient_id", recipientID).
			Msg("Durable message write failed.")

		return store.Message{}, errs.NewError(errs.ErrPersistenceFailed)
	}

	if delivered := p.hub.Deliver(recipientID, msg); delivered {
		p.logger.Debug().
			Str("message_id", msg.ID).
			Str("recipient_id", recipientID).
			Msg("Message pushed to live connection.")
	} else {
		p.logger.Debug().
			Str("message_id", msg.ID).
			Str("recipient_id", recipientID).
			Msg("Recipient not reachable, message available via history.")
	}

	return msg, nil
}

// Conversation returns all messages exchanged between the two users sorted
// ascending by creation time.
func (p *Pipeline) Conversation(ctx context.Context, userA, userB string) ([]store.Message, *errs.CustomError) {
	messages, err := p.store.Conversation(ctx, userA, userB)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("user_a", userA).
			Str("user_b", userB).
			Msg("Conversation query failed.")

		return nil, errs.NewError(errs.ErrUnknown)
	}

	return messages, nil
}
