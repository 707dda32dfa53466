package corpus

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher sends one message to a subject. *nats.Conn satisfies it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Publish sends each command as its own message on subject and returns the
// number of messages sent.
func Publish(p Publisher, subject string, set *Set) (int, error) {
	sent := 0
	for cmd := range set.All() {
		if err := p.Publish(subject, []byte(cmd)); err != nil {
			return sent, fmt.Errorf("publish command %d: %w", sent+1, err)
		}
		sent++
	}
	return sent, nil
}

// PublishNATS connects to url, publishes the corpus and drains the
// connection so every buffered message is flushed before returning.
func PublishNATS(url, subject string, set *Set) (int, error) {
	conn, err := nats.Connect(url,
		nats.Name("gpsrgen"),
		nats.Timeout(10*time.Second))
	if err != nil {
		return 0, fmt.Errorf("connect to NATS: %w", err)
	}

	sent, err := Publish(conn, subject, set)
	if err != nil {
		conn.Close()
		return sent, err
	}
	if err := conn.Drain(); err != nil {
		return sent, fmt.Errorf("drain NATS connection: %w", err)
	}
	return sent, nil
}
