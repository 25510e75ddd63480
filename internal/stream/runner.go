package stream

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dmccoystephenson/jpo-ppm/internal/bsm"
	"github.com/dmccoystephenson/jpo-ppm/internal/broker"
	"github.com/dmccoystephenson/jpo-ppm/internal/config"
	"github.com/dmccoystephenson/jpo-ppm/internal/errs"
	"github.com/dmccoystephenson/jpo-ppm/internal/filter"
	"github.com/dmccoystephenson/jpo-ppm/internal/health"
	"github.com/dmccoystephenson/jpo-ppm/internal/logging"
	"github.com/dmccoystephenson/jpo-ppm/internal/metrics"
	"github.com/dmccoystephenson/jpo-ppm/internal/quadtree"
	"github.com/dmccoystephenson/jpo-ppm/internal/retrykit"
)

// NewConsumerFunc builds a fresh Consumer for one bootstrap generation.
type NewConsumerFunc func() (broker.Consumer, error)

// NewProducerFunc builds a fresh Producer for one bootstrap generation.
type NewProducerFunc func() (broker.Producer, error)

// Runner owns the consume-filter-produce loop for one process lifetime.
// A new Consumer and Producer are created each time the bootstrap loop
// reconnects; the Policy, geofence, logger, metrics, and monitor persist
// across reconnects.
type Runner struct {
	cfg *config.Config

	newConsumer NewConsumerFunc
	newProducer NewProducerFunc

	policy filter.Policy

	logger  *logging.Logger
	metrics *metrics.Metrics
	monitor *health.Monitor

	counters Counters

	// atHighWaterMark recognizes a broker-specific approximation of
	// partition EOF carried on an ordinary EventMessage (kafka-go has no
	// native EOF signal). Left nil for brokers that emit a real
	// EventPartitionEOF instead.
	atHighWaterMark func(broker.Event) bool

	bootstrap     atomic.Bool
	bsmsAvailable atomic.Bool
}

// New builds a Runner. geofence must already be populated; policy
// carries the speed bounds and containment mode to apply against it.
func New(cfg *config.Config, geofence *quadtree.Tree, mode filter.Mode, newConsumer NewConsumerFunc, newProducer NewProducerFunc, logger *logging.Logger, m *metrics.Metrics, monitor *health.Monitor) *Runner {
	policy := filter.Policy{
		Geofence: geofence,
		Mode:     mode,
		SpeedMin: cfg.VelocityMin,
		SpeedMax: cfg.VelocityMax,
	}
	r := &Runner{
		cfg:         cfg,
		newConsumer: newConsumer,
		newProducer: newProducer,
		policy:      policy,
		logger:      logger,
		metrics:     m,
		monitor:     monitor,
	}
	r.bootstrap.Store(true)
	return r
}

// Counters returns a snapshot of the runner's current tallies.
func (r *Runner) Counters() Counters { return r.counters.Snapshot() }

// SetHighWaterMarkDetector installs a broker-specific recognizer for an
// EOF approximation carried on EventMessage. kafkabroker.AtHighWaterMark
// is the intended argument when the runner is wired to that adapter.
func (r *Runner) SetHighWaterMarkDetector(fn func(broker.Event) bool) {
	r.atHighWaterMark = fn
}

// Shutdown requests that the runner stop at the next opportunity: the
// inner loop exits its current Consume call's timeout window, and the
// outer loop does not attempt another reconnect.
func (r *Runner) Shutdown() {
	r.bootstrap.Store(false)
	r.bsmsAvailable.Store(false)
}

// stopEntirely ends both the inner loop and the outer bootstrap loop,
// used when the consumer has run out of input under exit_on_eof — that
// is a clean finish, not a transport failure to reconnect from.
func (r *Runner) stopEntirely() {
	r.bsmsAvailable.Store(false)
	r.bootstrap.Store(false)
}

// Run drives the bootstrap/inner loop pair until Shutdown is called or
// ctx is cancelled. It returns nil on a clean shutdown.
func (r *Runner) Run(ctx context.Context) error {
	for r.bootstrap.Load() {
		if r.monitor != nil {
			r.monitor.Transition(health.Booting, "")
		}

		consumer, producer, err := r.bootstrapConnect(ctx)
		if err != nil {
			// shutdown requested mid-bootstrap
			if r.monitor != nil {
				r.monitor.Transition(health.Stopped, "shutdown requested")
			}
			r.logSummary()
			return nil
		}

		r.bsmsAvailable.Store(true)
		if r.monitor != nil {
			r.monitor.Transition(health.Consuming, "")
		}

		r.innerLoop(ctx, consumer, producer)

		consumer.Close()
		producer.Close()
	}

	if r.monitor != nil {
		r.monitor.Transition(health.Stopped, "shutdown requested")
	}
	r.logSummary()
	return nil
}

// logSummary writes the consumed/published/suppressed counter lines to
// the info sink, the way every exit is expected to.
func (r *Runner) logSummary() {
	counters := r.counters.Snapshot()
	r.logger.Info("PPM consumed", "count", counters.RecvCount, "bytes", counters.RecvBytes)
	r.logger.Info("PPM published", "count", counters.SendCount, "bytes", counters.SendBytes)
	r.logger.Info("PPM suppressed", "count", counters.FiltCount, "bytes", counters.FiltBytes)
}

// bootstrapConnect retries indefinitely (subject to shutdown) to create
// a consumer, confirm the consumed topic exists, subscribe, and create
// a producer.
func (r *Runner) bootstrapConnect(ctx context.Context) (broker.Consumer, broker.Producer, error) {
	var consumer broker.Consumer
	var producer broker.Producer

	ok := retrykit.UntilShutdown(ctx, retrykit.DefaultConfig(), func() bool {
		c, err := r.newConsumer()
		if err != nil {
			r.logger.Error("create consumer failed", "error", err)
			return false
		}

		md, err := c.Metadata(ctx, 5*time.Second)
		if err != nil || !md.HasTopic(r.cfg.ConsumerTopic) {
			r.logger.Warn("consumed topic not yet visible in metadata", "topic", r.cfg.ConsumerTopic)
			c.Close()
			return false
		}

		if err := c.Subscribe([]string{r.cfg.ConsumerTopic}); err != nil {
			r.logger.Error("subscribe failed", "error", err)
			c.Close()
			return false
		}

		p, err := r.newProducer()
		if err != nil {
			r.logger.Error("create producer failed", "error", err)
			c.Close()
			return false
		}

		consumer, producer = c, p
		return true
	})

	if !ok {
		return nil, nil, errors.New("stream: shutdown during bootstrap")
	}
	return consumer, producer, nil
}

// innerLoop processes events until bsmsAvailable is cleared, either by
// Shutdown, by exhausting every partition under exit_on_eof, or by a
// transport-classified error that should trigger a reconnect, or until
// ctx is cancelled.
func (r *Runner) innerLoop(ctx context.Context, consumer broker.Consumer, producer broker.Producer) {
	eofCount := 0
	partitionCount := 1

	timeout := time.Duration(r.cfg.ConsumerTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}

	for r.bsmsAvailable.Load() && ctx.Err() == nil {
		ev := consumer.Consume(ctx, timeout)

		switch ev.Kind {
		case broker.EventMessage:
			r.handleMessage(producer, ev.Message)
			if r.cfg.ExitOnEOF && r.atHighWaterMark != nil && r.atHighWaterMark(ev) {
				eofCount++
				if eofCount >= partitionCount {
					r.stopEntirely()
				}
			}

		case broker.EventTimeout:
			// no state change

		case broker.EventPartitionEOF:
			if r.cfg.ExitOnEOF {
				eofCount++
				if eofCount >= partitionCount {
					r.stopEntirely()
				}
			}

		case broker.EventUnknownTopic, broker.EventUnknownPartition:
			r.logger.Error("consume failed", "kind", ev.Kind.String(), "error", ev.Err)
			r.bsmsAvailable.Store(false)

		case broker.EventError:
			r.logger.Error("consume error", "error", ev.Err)
			if errs.IsTransient(ev.Err) {
				r.bsmsAvailable.Store(false)
			}
		}

		if r.monitor != nil {
			r.monitor.UpdateCounts(r.counters.RecvCount, r.counters.SendCount, r.counters.FiltCount)
		}
	}
}

// handleMessage runs one message through decode, filter, redact, and
// produce, updating counters and metrics at each terminal outcome.
func (r *Runner) handleMessage(producer broker.Producer, msg *broker.Message) {
	n := uint64(len(msg.Payload))
	r.counters.RecvCount++
	r.counters.RecvBytes += n
	if r.metrics != nil {
		r.metrics.RecvMessages.Inc()
		r.metrics.RecvBytes.Add(float64(n))
	}

	doc, err := bsm.Decode(msg.Payload)
	if err != nil {
		r.suppress(filter.ReasonParseError, n)
		return
	}

	verdict := r.policy.Decide(doc)
	if !verdict.Retained {
		r.suppress(verdict.Reason, n)
		return
	}

	out, err := doc.Redact(r.cfg.RedactFields)
	if err != nil {
		r.logger.Error("redact failed", "error", err)
		return
	}

	if err := producer.Produce(r.cfg.ProducerTopic, r.cfg.Partition, out, nil); err != nil {
		r.logger.Error("produce failed", "error", errs.New(errs.KindProduce, err))
		return
	}

	r.counters.SendCount++
	r.counters.SendBytes += uint64(len(out))
	if r.metrics != nil {
		r.metrics.SendMessages.Inc()
		r.metrics.SendBytes.Add(float64(len(out)))
	}
}

func (r *Runner) suppress(reason filter.Reason, n uint64) {
	r.counters.FiltCount++
	r.counters.FiltBytes += n
	if r.metrics != nil {
		r.metrics.FiltMessages.Inc()
		r.metrics.FiltBytes.Add(float64(n))
		r.metrics.FiltReasons.WithLabelValues(string(reason)).Inc()
	}
}
