package submission

import (
	"context"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/lens"
	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

var (
	// ErrRelayRejected is returned when a data availability broadcast is
	// rejected by the relayer. There is no chain fallback for Momoka.
	ErrRelayRejected = errors.New("relay rejected")
)

// handler runs the chosen strategy and at most one fallback for a single
// submission
type handler struct {
	submitter *Submitter
	res       *Result
	channel   *model.Channel
	pub       *model.Publication
	draft     *model.ContentDraft
}

func (h *handler) run(ctx context.Context, strategy Strategy, req *model.SubmissionRequest) error {
	h.res.Strategy = strategy

	rejected, err := h.attempt(ctx, strategy, req)
	if err != nil || !rejected {
		return err
	}

	fallback, ok := strategy.Fallback()
	if !ok {
		return errors.Errorf("no fallback for strategy %v", strategy)
	}
	log.Infof("Relay rejected %v, falling back to %v", strategy, fallback)
	h.res.FellBack = true
	h.res.Strategy = fallback
	h.res.transition(StateFallbackPending)

	_, err = h.attempt(ctx, fallback, req)
	if err != nil {
		h.res.transition(StateFallbackFailed)
		return err
	}
	h.res.transition(StateFallbackOK)
	return nil
}

// attempt runs a single strategy. rejected is true only for a relay rejection
// of a dispatcher strategy.
func (h *handler) attempt(ctx context.Context, strategy Strategy,
	req *model.SubmissionRequest) (bool, error) {
	switch strategy {
	case StrategyDispatcher:
		onChain, err := req.OnChain()
		if err != nil {
			return false, err
		}
		return h.viaDispatcher(ctx, onChain)

	case StrategyDataAvailabilityDispatcher:
		da, err := req.DataAvailability()
		if err != nil {
			return false, err
		}
		return h.viaDataAvailabilityDispatcher(ctx, da)

	case StrategyTypedData:
		onChain, err := req.OnChain()
		if err != nil {
			return false, err
		}
		return false, h.viaTypedData(ctx, onChain)

	case StrategyDataAvailabilityTypedData:
		da, err := req.DataAvailability()
		if err != nil {
			return false, err
		}
		return false, h.viaDataAvailabilityTypedData(ctx, da)
	}
	return false, errors.Errorf("unknown strategy %v", strategy)
}

func (h *handler) viaDispatcher(ctx context.Context, req *model.OnChainCommentRequest) (bool, error) {
	h.res.transition(StateRelayPending)
	result, err := h.submitter.relay.CreateCommentViaDispatcher(ctx, req)
	if err != nil {
		return false, err
	}
	if result.IsRelayError() {
		log.Infof("Dispatcher rejected comment on %v: %v", req.PublicationID, result.Reason)
		h.res.transition(StateRelayRejected)
		return true, nil
	}
	h.res.transition(StateRelayOK)
	h.res.TxnID = result.TxID
	h.res.TxnHash = result.TxHash
	h.enqueue(result.TxID, result.TxHash)
	return false, nil
}

func (h *handler) viaDataAvailabilityDispatcher(ctx context.Context,
	req *model.DataAvailabilityCommentRequest) (bool, error) {
	h.res.transition(StateRelayPending)
	result, err := h.submitter.relay.CreateDataAvailabilityCommentViaDispatcher(ctx, req)
	if err != nil {
		return false, err
	}
	if result.IsRelayError() {
		log.Infof("Dispatcher rejected data availability comment on %v: %v",
			req.CommentOn, result.Reason)
		h.res.transition(StateRelayRejected)
		return true, nil
	}
	h.res.transition(StateRelayOK)
	h.dataAvailabilityCreated(ctx, result.ID)
	return false, nil
}

func (h *handler) viaTypedData(ctx context.Context, req *model.OnChainCommentRequest) error {
	nonce, err := h.sigNonce(ctx)
	if err != nil {
		return err
	}
	typedData, err := h.submitter.relay.CreateCommentTypedData(ctx, req, nonce)
	if err != nil {
		return err
	}
	signature, err := h.sign(ctx, typedData)
	if err != nil {
		return err
	}

	result, err := h.submitter.relay.Broadcast(ctx, typedData.ID, signature)
	if err != nil {
		return err
	}
	h.res.transition(StateBroadcast)
	if result.IsRelayError() {
		log.Infof("Broadcast rejected for %v: %v, writing to LensHub", req.PublicationID, result.Reason)
		hash, err := h.submitter.writer.Comment(ctx, typedData.TypedData.Value)
		if err != nil {
			return err
		}
		// Direct writes only yield a hash and are not queued
		h.res.DirectWrite = true
		h.res.TxnHash = hash
		return nil
	}
	h.res.TxnID = result.TxID
	h.res.TxnHash = result.TxHash
	h.enqueue(result.TxID, result.TxHash)
	return nil
}

func (h *handler) viaDataAvailabilityTypedData(ctx context.Context,
	req *model.DataAvailabilityCommentRequest) error {
	// The signature consumes the profile nonce, so it is seeded first
	if _, err := h.sigNonce(ctx); err != nil {
		return err
	}
	typedData, err := h.submitter.relay.CreateDataAvailabilityCommentTypedData(ctx, req)
	if err != nil {
		return err
	}
	signature, err := h.sign(ctx, typedData)
	if err != nil {
		return err
	}

	result, err := h.submitter.relay.BroadcastDataAvailability(ctx, typedData.ID, signature)
	if err != nil {
		return err
	}
	h.res.transition(StateBroadcast)
	if result.IsRelayError() {
		return errors.Wrapf(ErrRelayRejected, "data availability broadcast for %v: %v",
			req.CommentOn, result.Reason)
	}
	h.dataAvailabilityCreated(ctx, result.ID)
	return nil
}

// sigNonce returns the stored sig nonce of the channel, seeding it from Lens
// when none is stored yet
func (h *handler) sigNonce(ctx context.Context) (int64, error) {
	profileID := h.channel.ID()
	nonce, err := h.submitter.nonces.SigNonce(profileID)
	if err == nil {
		return nonce, nil
	}
	if err != model.ErrNoPersisterResults {
		return 0, errors.Wrap(err, "error retrieving sig nonce")
	}
	if h.submitter.nonceSource == nil {
		return 0, nil
	}
	nonce, err = h.submitter.nonceSource.UserSigNonce(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "error seeding sig nonce")
	}
	err = h.submitter.nonces.SetSigNonce(profileID, nonce)
	if err != nil {
		return 0, errors.Wrap(err, "error storing sig nonce")
	}
	log.V(2).Infof("Seeded sig nonce for %v with %v", profileID, nonce)
	return nonce, nil
}

// sign requests the signature and increments the sig nonce once signed
func (h *handler) sign(ctx context.Context, typedData *lens.TypedDataResult) (string, error) {
	h.res.transition(StateSignaturePending)
	h.submitter.notifier.Loading(model.RequestingSignatureMessage)
	signature, err := h.submitter.signer.SignTypedData(ctx, typedData.TypedData)
	if err != nil {
		return "", err
	}
	h.res.transition(StateSigned)
	nonce, err := h.submitter.nonces.IncrementSigNonce(h.channel.ID())
	if err != nil {
		return "", errors.Wrap(err, "error incrementing sig nonce")
	}
	log.V(2).Infof("Sig nonce for %v is now %v", h.channel.ID(), nonce)
	return signature, nil
}

func (h *handler) dataAvailabilityCreated(ctx context.Context, publicationID string) {
	h.res.PublicationID = publicationID
	if h.submitter.cache == nil {
		return
	}
	err := h.submitter.cache.FetchAndCache(ctx, publicationID)
	if err != nil {
		log.Errorf("Error caching publication %v: err: %v", publicationID, err)
	}
}

// enqueue prepends the comment to the pending queue. Nothing is queued
// without a relayer transaction id.
func (h *handler) enqueue(txnID string, txnHash string) {
	if txnID == "" {
		return
	}
	pending := model.NewPendingTransaction(&model.PendingTransactionParams{
		Comment:   h.draft.Text,
		TxnID:     txnID,
		TxnHash:   txnHash,
		PubID:     h.pub.ID(),
		ProfileID: h.channel.ID(),
		CreatedTs: utils.CurrentEpochSecsInInt64(),
	})
	err := h.submitter.queue.PrependQueuedComment(pending)
	if err != nil {
		log.Errorf("Error queueing comment %v: err: %v", txnID, err)
	}
}
