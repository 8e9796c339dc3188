package events

import (
	"context"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/redis/go-redis/v9"
)

// RedisWriter publishes events on a redis pub/sub channel so the web and
// mobile frontends can stream notifications.
type RedisWriter struct {
	client *redis.Client
}

func NewRedisWriter(addr, password string, db int) (*RedisWriter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisWriter{client: client}, nil
}

func (r *RedisWriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	payload, err := e.MarshalJSON()
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, topic, payload).Err()
}

// Subscription is a live pub/sub stream for one topic. Callers drain C and
// call Cancel when done.
type Subscription struct {
	C      <-chan *redis.Message
	pubsub *redis.PubSub
}

func (s *Subscription) Cancel() error {
	return s.pubsub.Close()
}

// Subscribe opens a stream of the raw event payloads published on topic.
func (r *RedisWriter) Subscribe(ctx context.Context, topic string) *Subscription {
	pubsub := r.client.Subscribe(ctx, topic)
	return &Subscription{C: pubsub.Channel(), pubsub: pubsub}
}

func (r *RedisWriter) Close(_ context.Context) error {
	return r.client.Close()
}
