// Package memory is an in-process double for the broker.Consumer and
// broker.Producer interfaces: topics are plain slices guarded by a
// mutex instead of network connections. It is the fixture the stream
// runner's tests and the end-to-end scenario tests build their worlds
// on, standing in for a real broker connection.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmccoystephenson/jpo-ppm/internal/broker"
)

// Broker is a shared in-process topic space. Create one per test case,
// feed it with Publish, and hand out Consumers/Producers bound to it.
type Broker struct {
	mu      sync.Mutex
	topics  map[string][]broker.Message
	offsets map[string]map[int32]int64 // topic -> partition -> next offset
	known   map[string]int             // topic -> partition count, visible via Metadata
	closed  bool
}

// New returns an empty Broker whose known topics are named by
// partitioned, mapping each to its partition count (commonly 1).
func New(partitioned map[string]int) *Broker {
	topics := make(map[string]int, len(partitioned))
	for k, v := range partitioned {
		topics[k] = v
	}
	return &Broker{
		topics:  make(map[string][]broker.Message),
		offsets: make(map[string]map[int32]int64),
		known:   topics,
	}
}

// Publish appends msg directly to a topic, as if some upstream producer
// had sent it — the way a test seeds input for the consumer side.
func (b *Broker) Publish(topic string, msg broker.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg.Topic = topic
	msg.Offset = int64(len(b.topics[topic]))
	b.topics[topic] = append(b.topics[topic], msg)
}

// Messages returns every message currently stored on topic, in publish
// order — used by tests to assert on what the runner produced.
func (b *Broker) Messages(topic string) []broker.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]broker.Message, len(b.topics[topic]))
	copy(out, b.topics[topic])
	return out
}

// AddTopic makes topic visible to Metadata with the given partition
// count, simulating a topic being created on the cluster.
func (b *Broker) AddTopic(topic string, partitions int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.known[topic] = partitions
}

// RemoveTopic makes topic disappear from Metadata, simulating a broker
// outage or topic deletion for reconnect tests.
func (b *Broker) RemoveTopic(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.known, topic)
}

// NewConsumer returns a Consumer reading from this Broker.
func (b *Broker) NewConsumer(group string) *Consumer {
	return &Consumer{broker: b, group: group, cursor: make(map[string]int64), eofCursor: make(map[string]bool)}
}

// NewProducer returns a Producer writing to this Broker.
func (b *Broker) NewProducer() *Producer {
	return &Producer{broker: b}
}

// Consumer is a broker.Consumer backed by a Broker.
type Consumer struct {
	broker *Broker
	group  string

	mu        sync.Mutex
	topics    []string
	cursor    map[string]int64
	closed    bool
	eofCursor map[string]bool
}

var _ broker.Consumer = (*Consumer)(nil)

func (c *Consumer) Metadata(ctx context.Context, timeout time.Duration) (*broker.Metadata, error) {
	c.broker.mu.Lock()
	defer c.broker.mu.Unlock()
	if c.broker.closed {
		return nil, errors.New("memory: broker closed")
	}
	snapshot := make(map[string]int, len(c.broker.known))
	for k, v := range c.broker.known {
		snapshot[k] = v
	}
	return &broker.Metadata{Topics: snapshot}, nil
}

func (c *Consumer) Subscribe(topics []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = topics
	for _, t := range topics {
		if _, ok := c.cursor[t]; !ok {
			c.cursor[t] = 0
		}
	}
	return nil
}

func (c *Consumer) Position() ([]broker.TopicPartition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]broker.TopicPartition, 0, len(c.cursor))
	for t, off := range c.cursor {
		out = append(out, broker.TopicPartition{Topic: t, Partition: 0, Offset: off})
	}
	return out, nil
}

func (c *Consumer) Consume(ctx context.Context, timeout time.Duration) broker.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return broker.Event{Kind: broker.EventError, Err: errors.New("memory: consumer closed")}
	}

	for _, topic := range c.topics {
		c.broker.mu.Lock()
		if _, known := c.broker.known[topic]; !known {
			c.broker.mu.Unlock()
			return broker.Event{Kind: broker.EventUnknownTopic, Err: errors.New("memory: unknown topic " + topic)}
		}
		msgs := c.broker.topics[topic]
		c.broker.mu.Unlock()

		off := c.cursor[topic]
		if off < int64(len(msgs)) {
			msg := msgs[off]
			c.cursor[topic] = off + 1
			c.eofCursor[topic] = false
			return broker.Event{Kind: broker.EventMessage, Message: &msg}
		}

		if !c.eofCursor[topic] {
			c.eofCursor[topic] = true
			return broker.Event{Kind: broker.EventPartitionEOF, Partition: 0}
		}
	}

	return broker.Event{Kind: broker.EventTimeout}
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Producer is a broker.Producer backed by a Broker.
type Producer struct {
	broker *Broker
	mu     sync.Mutex
	closed bool
}

var _ broker.Producer = (*Producer)(nil)

func (p *Producer) Produce(topic string, partition int32, payload, key []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.New("memory: producer closed")
	}
	p.broker.Publish(topic, broker.Message{
		Payload:   append([]byte(nil), payload...),
		Partition: partition,
		Key:       append([]byte(nil), key...),
		Timestamp: time.Now(),
	})
	return nil
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
