package submission

import (
	"context"
	"fmt"
	"sync"

	"github.com/davecgh/go-spew/spew"
	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/events"
	"github.com/tapexyz/tape-publisher/pkg/lens"
	"github.com/tapexyz/tape-publisher/pkg/metadata"
	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/publisher"
	"github.com/tapexyz/tape-publisher/pkg/signer"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

const (
	// TipSuccessMessage is shown after a tip comment is submitted
	TipSuccessMessage = "Tipped successfully"
)

// NewSubmitterParams are the dependencies of a Submitter. NonceSource, Events
// and Notifier are optional. Without a NonceSource a profile with no stored
// sig nonce starts at 0.
type NewSubmitterParams struct {
	Builder     *metadata.Builder
	Publisher   publisher.Publisher
	Relay       Relay
	Signer      Signer
	Writer      CommentWriter
	ValueSender ValueSender
	Queue       model.PendingTxPersister
	Nonces      model.SigNoncePersister
	NonceSource NonceSource
	Cache       CommentCache
	Events      events.Publisher
	Notifier    Notifier
}

// NewSubmitter returns a new Submitter
func NewSubmitter(params *NewSubmitterParams) *Submitter {
	eventPub := params.Events
	if eventPub == nil {
		eventPub = &events.NullPublisher{}
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = &LogNotifier{}
	}
	return &Submitter{
		builder:     params.Builder,
		publisher:   params.Publisher,
		relay:       params.Relay,
		signer:      params.Signer,
		writer:      params.Writer,
		valueSender: params.ValueSender,
		queue:       params.Queue,
		nonces:      params.Nonces,
		nonceSource: params.NonceSource,
		cache:       params.Cache,
		events:      eventPub,
		notifier:    notifier,
		inFlight:    map[string]bool{},
	}
}

// Submitter runs comment and tip submissions from draft to the pending queue
type Submitter struct {
	builder     *metadata.Builder
	publisher   publisher.Publisher
	relay       Relay
	signer      Signer
	writer      CommentWriter
	valueSender ValueSender
	queue       model.PendingTxPersister
	nonces      model.SigNoncePersister
	nonceSource NonceSource
	cache       CommentCache
	events      events.Publisher
	notifier    Notifier

	mutex    sync.Mutex
	inFlight map[string]bool
}

// SubmitComment submits draft as a comment by channel on pub. The returned
// Result is always non-nil and records the states the submission went
// through, also on error.
func (s *Submitter) SubmitComment(ctx context.Context, channel *model.Channel,
	pub *model.Publication, draft *model.ContentDraft) (*Result, error) {
	res := newResult()
	key := draftKey(channel, pub)
	if !s.acquire(key) {
		res.transition(StateFailed)
		return res, model.ErrSubmissionInFlight
	}
	defer s.release(key)

	err := s.submit(ctx, res, channel, pub, draft)
	if err != nil {
		return res, err
	}
	return res, nil
}

func (s *Submitter) submit(ctx context.Context, res *Result, channel *model.Channel,
	pub *model.Publication, draft *model.ContentDraft) error {
	strategy, err := SelectStrategy(CapabilitiesFor(channel, pub))
	if err != nil {
		return s.fail(res, err)
	}

	res.transition(StateBuildingMetadata)
	meta, err := s.builder.Build(&metadata.BuildParams{
		Channel:     channel,
		Publication: pub,
		Draft:       draft,
	})
	if err != nil {
		return s.fail(res, err)
	}
	if log.V(3) {
		log.Infof("Metadata for comment on %v: %v", pub.ID(), spew.Sdump(meta))
	}

	contentID, err := metadata.ContentID(meta)
	if err != nil {
		return s.fail(res, err)
	}
	res.ContentID = contentID.String()

	res.transition(StatePublishingContent)
	uri, err := s.publisher.Publish(ctx, meta, res.ContentID)
	if err != nil {
		return s.fail(res, errors.Wrap(err, "error publishing metadata"))
	}
	res.ContentURI = uri

	res.transition(StateRouting)
	var req *model.SubmissionRequest
	if strategy == StrategyDataAvailabilityDispatcher {
		req = model.NewDataAvailabilitySubmissionRequest(channel.ID(), pub.ID(), uri)
	} else {
		req = model.NewOnChainSubmissionRequest(channel.ID(), pub.ID(), uri)
	}
	log.Infof("Submitting comment on %v by %v with strategy %v", pub.ID(), channel.ID(), strategy)

	h := &handler{
		submitter: s,
		res:       res,
		channel:   channel,
		pub:       pub,
		draft:     draft,
	}
	err = h.run(ctx, strategy, req)
	if err != nil {
		return s.fail(res, err)
	}
	res.transition(StateDone)

	s.publishEvent(ctx, newCommentEvent(pub, channel, draft))
	if draft.IsTip() {
		s.notifier.Success(TipSuccessMessage)
	}
	return nil
}

// fail moves the result to FAILED and notifies the user. Cancelled signatures
// are not notified.
func (s *Submitter) fail(res *Result, err error) error {
	res.transition(StateFailed)
	cause := errors.Cause(err)
	switch {
	case signer.IsCancelled(err):
		res.Cancelled = true
		log.Infof("Signature request cancelled")
	case cause == model.ErrFeatureUnavailable:
		s.notifier.Error(cause.Error())
	case model.IsValidationError(err):
		s.notifier.Error(cause.Error())
	default:
		log.Errorf("Submission failed: err: %v", err)
		s.notifier.Error(errorMessage(err))
	}
	return err
}

// errorMessage returns the Lens API message of err if there is one, the
// generic error message otherwise
func errorMessage(err error) string {
	apiErr, ok := errors.Cause(err).(*lens.APIError)
	if ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return model.ErrorMessage
}

func (s *Submitter) publishEvent(ctx context.Context, event *events.Event) {
	err := s.events.Publish(ctx, event)
	if err != nil {
		log.Errorf("Error publishing event %v: err: %v", event.Name, err)
	}
}

func (s *Submitter) acquire(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.inFlight[key] {
		return false
	}
	s.inFlight[key] = true
	return true
}

func (s *Submitter) release(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.inFlight, key)
}

func draftKey(channel *model.Channel, pub *model.Publication) string {
	return fmt.Sprintf("%v:%v", channel.ID(), pub.ID())
}

func newCommentEvent(pub *model.Publication, channel *model.Channel,
	draft *model.ContentDraft) *events.Event {
	event := &events.Event{
		Name:             events.NameNewComment,
		PublicationID:    pub.ID(),
		PublicationState: pub.State(),
		ProfileID:        channel.ID(),
		Timestamp:        utils.CurrentEpochSecsInInt64(),
	}
	if draft.IsTip() {
		event.CommentType = events.CommentTypeTip
	}
	return event
}
