package service

import (
	"context"
	"encoding/json"

	"notesphere-be/internal/pkg/logger"
	"notesphere-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the note lifecycle topic and writes an audit trail
// through the structured logger.
type consumerService struct {
	pubSub *gochannel.GoChannel
	log    logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, log logger.ILogger) IConsumerService {
	return &consumerService{pubSub: pubSub, log: log}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, events.TopicNoteLifecycle)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event events.NoteEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Error("consumer", "failed to unmarshal note event", map[string]interface{}{
			"error": err.Error(), "message_id": msg.UUID,
		})
		msg.Ack() // ack invalid messages to prevent infinite retry
		return
	}

	cs.log.Info("consumer", "note "+event.Type, map[string]interface{}{
		"note_id":     event.NoteId,
		"owner_id":    event.OwnerId,
		"occurred_at": event.OccurredAt,
	})
	msg.Ack()
}
