// Package kafkabroker adapts github.com/segmentio/kafka-go's Reader and
// Writer to the broker.Consumer and broker.Producer contracts, mapping
// kafka-go's error and EOF surfaces onto the confluent-style event union
// the stream runner expects.
package kafkabroker

import (
	"context"
	"errors"
	"io"
	"time"

	kafka "github.com/segmentio/kafka-go"

	"github.com/dmccoystephenson/jpo-ppm/internal/broker"
)

// Config configures a Consumer/Producer pair.
type Config struct {
	Brokers      []string
	GroupID      string
	Partition    int32 // -1 for broker-assigned / group-managed
	StartOffset  int64 // kafka.FirstOffset, kafka.LastOffset, or an explicit offset
	MinBytes     int
	MaxBytes     int
	RequiredAcks kafka.RequiredAcks
}

// Consumer wraps a *kafka.Reader.
type Consumer struct {
	cfg    Config
	reader *kafka.Reader
	topics []string

	lastHighWaterMark int64
}

var _ broker.Consumer = (*Consumer)(nil)

// NewConsumer constructs a Consumer; Subscribe still must be called
// before Consume, matching the contract's separate subscribe step.
func NewConsumer(cfg Config) *Consumer {
	return &Consumer{cfg: cfg}
}

func (c *Consumer) Metadata(ctx context.Context, timeout time.Duration) (*broker.Metadata, error) {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := kafka.DefaultDialer.DialContext(dialCtx, "tcp", c.cfg.Brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return nil, err
	}

	topics := make(map[string]int)
	for _, p := range partitions {
		topics[p.Topic]++
	}
	return &broker.Metadata{Topics: topics}, nil
}

func (c *Consumer) Subscribe(topics []string) error {
	if len(topics) != 1 {
		return errors.New("kafkabroker: exactly one consumer topic is supported")
	}
	c.topics = topics

	readerCfg := kafka.ReaderConfig{
		Brokers:     c.cfg.Brokers,
		Topic:       topics[0],
		GroupID:     c.cfg.GroupID,
		MinBytes:    c.cfg.MinBytes,
		MaxBytes:    c.cfg.MaxBytes,
		StartOffset: c.cfg.StartOffset,
	}
	if c.cfg.Partition >= 0 && c.cfg.GroupID == "" {
		readerCfg.Partition = int(c.cfg.Partition)
	}

	c.reader = kafka.NewReader(readerCfg)
	return nil
}

func (c *Consumer) Position() ([]broker.TopicPartition, error) {
	if c.reader == nil {
		return nil, nil
	}
	return []broker.TopicPartition{{
		Topic:     c.reader.Config().Topic,
		Partition: int32(c.reader.Config().Partition),
		Offset:    c.reader.Offset(),
	}}, nil
}

func (c *Consumer) Consume(ctx context.Context, timeout time.Duration) broker.Event {
	readCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg, err := c.reader.ReadMessage(readCtx)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return broker.Event{Kind: broker.EventTimeout}
		case errors.Is(err, io.EOF):
			return broker.Event{Kind: broker.EventPartitionEOF, Partition: int32(c.reader.Config().Partition)}
		case isUnknownTopic(err):
			return broker.Event{Kind: broker.EventUnknownTopic, Err: err}
		default:
			return broker.Event{Kind: broker.EventError, Err: err}
		}
	}

	// kafka-go has no native partition-EOF signal; a message whose
	// offset has caught up to the last reported high-water mark means
	// there is nothing more to read right now, which the runner treats
	// the same as EOF when exit_on_eof is configured.
	caughtUp := msg.HighWaterMark > 0 && msg.Offset+1 >= msg.HighWaterMark
	c.lastHighWaterMark = msg.HighWaterMark

	event := broker.Event{
		Kind: broker.EventMessage,
		Message: &broker.Message{
			Payload:   msg.Value,
			Topic:     msg.Topic,
			Partition: int32(msg.Partition),
			Offset:    msg.Offset,
			Timestamp: msg.Time,
			Key:       msg.Key,
		},
		Partition: int32(msg.Partition),
	}
	if caughtUp {
		event.Err = errAtHighWaterMark
	}
	return event
}

// errAtHighWaterMark is attached (not surfaced as a failure) to a
// message event when the consumer has caught up to the partition's last
// known offset, so the runner's EOF bookkeeping can react without
// kafka-go needing to emit a distinct event kind.
var errAtHighWaterMark = errors.New("kafkabroker: caught up to high water mark")

// AtHighWaterMark reports whether ev's message was the last one
// available at the time it was read.
func AtHighWaterMark(ev broker.Event) bool {
	return ev.Kind == broker.EventMessage && errors.Is(ev.Err, errAtHighWaterMark)
}

func (c *Consumer) Close() error {
	if c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func isUnknownTopic(err error) bool {
	var kerr kafka.Error
	if errors.As(err, &kerr) {
		return kerr.Title() == "Unknown Topic Or Partition"
	}
	return false
}

// Producer wraps a *kafka.Writer.
type Producer struct {
	cfg    Config
	writer *kafka.Writer
}

var _ broker.Producer = (*Producer)(nil)

// NewProducer constructs a Producer bound to cfg.Brokers. The topic is
// supplied per-call to Produce, matching the contract's signature.
func NewProducer(cfg Config) *Producer {
	return &Producer{
		cfg: cfg,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: cfg.RequiredAcks,
		},
	}
}

func (p *Producer) Produce(topic string, partition int32, payload, key []byte) error {
	msg := kafka.Message{
		Topic: topic,
		Value: payload,
		Key:   key,
	}
	if partition >= 0 {
		msg.Partition = int(partition)
	}
	return p.writer.WriteMessages(context.Background(), msg)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
