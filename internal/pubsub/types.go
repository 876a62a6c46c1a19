package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// Topic names the pubsub topics downstream displays subscribe to.
type Topic string

const (
	TopicScoreUpdate Topic = "score-update"
	TopicMatchEvent  Topic = "match-event"
	TopicTranscript  Topic = "transcript"
)
