//go:build integration

package testutils

import (
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// RecordingPublisher keeps every published message by topic.
type RecordingPublisher struct {
	mu       sync.Mutex
	messages map[string][]*message.Message
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{messages: make(map[string][]*message.Message)}
}

func (p *RecordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[topic] = append(p.messages[topic], msgs...)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

// Messages returns a copy of the messages published on topic.
func (p *RecordingPublisher) Messages(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*message.Message(nil), p.messages[topic]...)
}
