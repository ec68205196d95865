// Package events publishes submission analytics events
package events // import "github.com/tapexyz/tape-publisher/pkg/events"

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/pubsub"
	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

const (
	// NameNewComment is published for every successful comment or tip comment
	NameNewComment = "publication_new_comment"

	// NameTipSent is published after a tip transfer is sent
	NameTipSent = "publication_tip_sent"

	// CommentTypeTip marks tip comments
	CommentTypeTip = "tip"

	eventAttribute = "event"
)

// Event is a single analytics event
type Event struct {
	Name             string `json:"name"`
	PublicationID    string `json:"publication_id"`
	PublicationState string `json:"publication_state,omitempty"`
	CommentType      string `json:"comment_type,omitempty"`
	ProfileID        string `json:"profile_id"`
	Timestamp        int64  `json:"timestamp"`
}

// Publisher publishes analytics events
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

// NullPublisher drops all events
type NullPublisher struct{}

// Publish logs and drops the event
func (n *NullPublisher) Publish(ctx context.Context, event *Event) error {
	log.V(2).Infof("Dropping event %v for %v", event.Name, event.PublicationID)
	return nil
}

// NewGooglePubSub returns a publisher to topicName in projectID. If
// credentialsFile is empty the default credentials are used.
func NewGooglePubSub(ctx context.Context, projectID string, topicName string,
	credentialsFile string) (*GooglePubSub, error) {
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "error creating pubsub client")
	}
	return NewGooglePubSubFromClient(client, topicName), nil
}

// NewGooglePubSubFromClient returns a publisher using an existing client
func NewGooglePubSubFromClient(client *pubsub.Client, topicName string) *GooglePubSub {
	return &GooglePubSub{client: client, topic: client.Topic(topicName)}
}

// GooglePubSub publishes events as JSON messages to a Google Pub/Sub topic
type GooglePubSub struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// Publish publishes the event and waits for the server ack
func (g *GooglePubSub) Publish(ctx context.Context, event *Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "error marshalling event")
	}
	res := g.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{eventAttribute: event.Name},
	})
	id, err := res.Get(ctx)
	if err != nil {
		return errors.Wrapf(err, "error publishing event %v", event.Name)
	}
	log.V(2).Infof("Published event %v: %v", event.Name, id)
	return nil
}

// Stop flushes pending messages and closes the client
func (g *GooglePubSub) Stop() error {
	g.topic.Stop()
	return g.client.Close()
}
