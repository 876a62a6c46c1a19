// Package broadcast publishes scoreboard updates over pub/sub so that
// courtside displays and audit consumers can follow a match live.
package broadcast

import (
	"github.com/charmbracelet/log"
	"github.com/courtside/rallyboard/internal/notifier"
	"github.com/courtside/rallyboard/internal/pubsub"
)

var _ notifier.Broadcaster = (*Broadcaster)(nil)

// Broadcaster fans scoreboard payloads out to the pub/sub topics.
type Broadcaster struct {
	client pubsub.PubSubClient
}

// New creates a Broadcaster on top of the given pub/sub client.
func New(client pubsub.PubSubClient) *Broadcaster {
	return &Broadcaster{client: client}
}

func (b *Broadcaster) PublishScoreUpdate(update notifier.ScoreUpdate) error {
	err := b.client.SendMessage(pubsub.TopicScoreUpdate, update)
	if err != nil {
		log.Error("Failed to publish score update", "error", err, "matchID", update.MatchID)
		return err
	}
	return nil
}

func (b *Broadcaster) PublishMatchEvent(event notifier.MatchEvent) error {
	err := b.client.SendMessage(pubsub.TopicMatchEvent, event)
	if err != nil {
		log.Error("Failed to publish match event", "error", err, "matchID", event.MatchID, "action", event.Action)
		return err
	}
	return nil
}

func (b *Broadcaster) PublishTranscript(transcript notifier.TranscriptEvent) error {
	err := b.client.SendMessage(pubsub.TopicTranscript, transcript)
	if err != nil {
		log.Error("Failed to publish transcript", "error", err, "matchID", transcript.MatchID)
		return err
	}
	return nil
}
