package pubsub

type PubSubClient interface {
	SendMessage(topic Topic, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close()
}
