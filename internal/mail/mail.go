// Package mail hands notification emails to the delivery service through a
// Pub/Sub topic. Delivery itself happens outside this system.
package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/MrJamesThe3rd/contratos/internal/notification"
)

// publishTimeout bounds how long a publish may take after Send returns.
const publishTimeout = 30 * time.Second

type Config struct {
	ProjectID       string
	Topic           string
	CredentialsJSON string
}

type Sender struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

func New(ctx context.Context, cfg Config) (*Sender, error) {
	if cfg.ProjectID == "" || cfg.Topic == "" {
		return nil, errors.New("pubsub project and topic are required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	return &Sender{client: client, topic: client.Topic(cfg.Topic)}, nil
}

// Close flushes pending messages.
func (s *Sender) Close() error {
	s.topic.Stop()
	return s.client.Close()
}

// Send publishes the email without waiting for the broker. Failures are
// logged and never reach the caller.
func (s *Sender) Send(ctx context.Context, e notification.Email) {
	data, err := payload(e)
	if err != nil {
		slog.Error("failed to encode email", "template", e.Template, "error", err)
		return
	}

	res := s.topic.Publish(context.WithoutCancel(ctx), &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"template": e.Template},
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if _, err := res.Get(ctx); err != nil {
			slog.Error("failed to publish email", "template", e.Template, "recipients", len(e.To), "error", err)
		}
	}()
}

func payload(e notification.Email) ([]byte, error) {
	if len(e.To) == 0 {
		return nil, errors.New("email has no recipients")
	}

	return json.Marshal(e)
}

// Noop drops every email. It is used when delivery is disabled.
type Noop struct{}

func (Noop) Send(_ context.Context, e notification.Email) {
	slog.Debug("email delivery disabled", "template", e.Template, "recipients", len(e.To))
}
