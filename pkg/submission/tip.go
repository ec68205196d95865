package submission

import (
	"context"
	"math/big"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/chain"
	"github.com/tapexyz/tape-publisher/pkg/events"
	"github.com/tapexyz/tape-publisher/pkg/metadata"
	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/utils"
)

const (
	// MaxTipAmount is the largest tip in MATIC
	MaxTipAmount = "100"
)

// SubmitTip sends draft.TipAmount MATIC to the owner of pub and then submits
// draft.Text as a tip comment referring to the transfer. The transfer hash is
// set in Result.TipTxHash even if the comment fails.
func (s *Submitter) SubmitTip(ctx context.Context, channel *model.Channel,
	pub *model.Publication, draft *model.ContentDraft) (*Result, error) {
	res := newResult()
	key := draftKey(channel, pub)
	if !s.acquire(key) {
		res.transition(StateFailed)
		return res, model.ErrSubmissionInFlight
	}
	defer s.release(key)

	_, err := SelectStrategy(CapabilitiesFor(channel, pub))
	if err != nil {
		return res, s.fail(res, err)
	}
	wei, err := ValidateTipAmount(draft.TipAmount)
	if err != nil {
		return res, s.fail(res, err)
	}
	_, err = metadata.ValidateContent(draft.Text)
	if err != nil {
		return res, s.fail(res, err)
	}

	hash, err := s.valueSender.SendValue(ctx, pub.OwnedBy(), wei)
	if err != nil {
		return res, s.fail(res, errors.Wrap(err, "error sending tip"))
	}
	res.TipTxHash = hash
	log.Infof("Sent tip of %v MATIC to %v for %v: %v", draft.TipAmount, pub.OwnedBy().Hex(),
		pub.ID(), hash)
	s.publishEvent(ctx, &events.Event{
		Name:          events.NameTipSent,
		PublicationID: pub.ID(),
		ProfileID:     channel.ID(),
		Timestamp:     utils.CurrentEpochSecsInInt64(),
	})

	tipDraft := *draft
	tipDraft.TipTxHash = hash
	err = s.submit(ctx, res, channel, pub, &tipDraft)
	if err != nil {
		return res, err
	}
	return res, nil
}

// ValidateTipAmount parses a MATIC amount and checks 0 < amount <= 100
func ValidateTipAmount(amount string) (*big.Int, error) {
	wei, err := chain.EtherToWei(amount)
	if err != nil {
		return nil, &model.ValidationError{Field: "tip", Message: err.Error()}
	}
	if wei.Sign() <= 0 {
		return nil, &model.ValidationError{Field: "tip", Message: "tip should be greater than 0 MATIC"}
	}
	maxWei, _ := chain.EtherToWei(MaxTipAmount) // nolint: gosec
	if wei.Cmp(maxWei) > 0 {
		return nil, &model.ValidationError{Field: "tip",
			Message: "tip should be less than or equal to 100 MATIC"}
	}
	return wei, nil
}
