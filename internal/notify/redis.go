package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
)

// RedisNotifier carries task updates over Redis pub/sub.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client, channel: Channel}
}

// Publish sends the task id to the channel.
func (n *RedisNotifier) Publish(ctx context.Context, taskID uuid.UUID) error {
	receivers, err := n.client.Publish(ctx, n.channel, taskID.String()).Result()
	logger.Log.Infow("publish",
		"channel", n.channel,
		"task_id", taskID,
		"receivers", receivers,
		"error", err,
	)
	return err
}

// Subscribe opens a pub/sub connection and waits for the subscription to be confirmed.
func (n *RedisNotifier) Subscribe(ctx context.Context, taskID uuid.UUID) (Subscription, error) {
	ps := n.client.Subscribe(ctx, n.channel)
	if _, err := ps.Receive(ctx); err != nil {
		logger.Log.Errorw("failed to subscribe", "channel", n.channel, "error", err)
		ps.Close()
		return nil, err
	}

	s := &redisSubscription{
		ps:      ps,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		payload: taskID.String(),
	}
	go s.loop(ps.Channel())
	return s, nil
}

type redisSubscription struct {
	ps      *redis.PubSub
	events  chan struct{}
	done    chan struct{}
	payload string
	once    sync.Once
}

func (s *redisSubscription) Events() <-chan struct{} {
	return s.events
}

func (s *redisSubscription) loop(messages <-chan *redis.Message) {
	defer close(s.done)
	defer close(s.events)

	for msg := range messages {
		if msg.Payload == s.payload {
			signal(s.events)
		}
	}
}

// Close unsubscribes and releases the pub/sub connection.
func (s *redisSubscription) Close() error {
	var err error
	s.once.Do(func() {
		err = s.ps.Close()
		<-s.done
	})
	return err
}
