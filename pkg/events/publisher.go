package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher fans note lifecycle events out over the in-process bus.
// Publishing is best-effort relative to the store write that triggered it:
// the write has already happened when Publish runs.
type Publisher struct {
	pubSub *gochannel.GoChannel
}

func NewPublisher(pubSub *gochannel.GoChannel) *Publisher {
	return &Publisher{pubSub: pubSub}
}

func (p *Publisher) PublishNoteEvent(eventType, noteId, ownerId string) error {
	payload, err := json.Marshal(NoteEvent{
		Type:       eventType,
		NoteId:     noteId,
		OwnerId:    ownerId,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal note event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(TopicNoteLifecycle, msg)
}
