// Package eventbus wraps the watermill publisher/subscriber pair used by every
// module. Production runs on NATS JetStream; development and tests use an
// in-memory GoChannel.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// EventBus is the publish/subscribe surface handed to modules.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

// Config holds the NATS connection settings.
type Config struct {
	URL           string
	NKeySeed      string
	QueueGroup    string
	AckWait       time.Duration
	ReconnectWait time.Duration
}

// Bus pairs a publisher with a subscriber sharing one transport.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
	// streamName maps a topic onto the transport. JetStream stream names
	// may not contain dots.
	streamName func(string) string
}

var _ EventBus = (*Bus)(nil)

// NewNATS connects a JetStream publisher and subscriber.
func NewNATS(cfg Config, logger *slog.Logger) (*Bus, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("nats url is required")
	}
	if cfg.QueueGroup == "" {
		cfg.QueueGroup = "prode"
	}
	if cfg.AckWait == 0 {
		cfg.AckWait = 30 * time.Second
	}
	if cfg.ReconnectWait == 0 {
		cfg.ReconnectWait = 2 * time.Second
	}

	opts := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.MaxReconnects(-1),
		nc.ReconnectWait(cfg.ReconnectWait),
	}
	if cfg.NKeySeed != "" {
		nkeyOpt, err := nkeyOption(cfg.NKeySeed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, nkeyOpt)
	}

	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}
	jsConfig := nats.JetStreamConfig{
		Disabled:      false,
		AutoProvision: true,
		TrackMsgId:    true,
		DurablePrefix: cfg.QueueGroup,
	}

	publisher, err := nats.NewPublisher(nats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: opts,
		Marshaler:   marshaler,
		JetStream:   jsConfig,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create nats publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(nats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: 1,
		AckWaitTimeout:   cfg.AckWait,
		NatsOptions:      opts,
		Unmarshaler:      marshaler,
		JetStream:        jsConfig,
	}, wmLogger)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create nats subscriber: %w", err)
	}

	logger.Info("Connected event bus to NATS", slog.String("url", cfg.URL))

	return &Bus{publisher: publisher, subscriber: subscriber, logger: logger, streamName: StreamName}, nil
}

// StreamName turns a dotted topic into a valid JetStream stream name.
func StreamName(topic string) string {
	return strings.NewReplacer(".", "_", "*", "_", ">", "_").Replace(topic)
}

// NewInMemory returns a bus backed by a watermill GoChannel.
func NewInMemory(logger *slog.Logger) *Bus {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))
	return &Bus{publisher: ch, subscriber: ch, logger: logger}
}

// nkeyOption signs the NATS connection nonce with the user seed.
func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid nats nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	return nc.Nkey(pub, kp.Sign), nil
}

func (b *Bus) Publish(topic string, messages ...*message.Message) error {
	if b.streamName != nil {
		topic = b.streamName(topic)
	}
	if err := b.publisher.Publish(topic, messages...); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if b.streamName != nil {
		topic = b.streamName(topic)
	}
	return b.subscriber.Subscribe(ctx, topic)
}

// Close closes the subscriber before the publisher. The in-memory bus shares
// one GoChannel, so it is closed once.
func (b *Bus) Close() error {
	if err := b.subscriber.Close(); err != nil {
		return fmt.Errorf("close subscriber: %w", err)
	}
	if any(b.publisher) == any(b.subscriber) {
		return nil
	}
	if err := b.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}
