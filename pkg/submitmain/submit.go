package submitmain

import (
	"context"

	log "github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tapexyz/tape-publisher/pkg/model"
	"github.com/tapexyz/tape-publisher/pkg/submission"
)

// ChannelFetcher returns the acting channel
type ChannelFetcher interface {
	Profile(ctx context.Context, profileID string) (*model.Channel, error)
}

// SubmitParams are the inputs of a single submit run
type SubmitParams struct {
	ProfileID     string
	PublicationID string
	Text          string

	// TipAmount in MATIC. A tip is sent if set.
	TipAmount string
}

// RunSubmit fetches the channel and the publication and submits a comment or
// a tip. pubs is usually the services publication cache.
func RunSubmit(ctx context.Context, channels ChannelFetcher, pubs submission.PublicationFetcher,
	submitter *submission.Submitter, params *SubmitParams) (*submission.Result, error) {
	channel, err := channels.Profile(ctx, params.ProfileID)
	if err != nil {
		return nil, errors.Wrapf(err, "error fetching channel %v", params.ProfileID)
	}
	if channel.UsingOldDispatcher() {
		log.Warningf("Channel %v is using the old dispatcher, update it to keep using the relay",
			model.TrimLensHandle(channel.Handle(), false, ""))
	}
	pub, err := pubs.Publication(ctx, params.PublicationID)
	if err != nil {
		return nil, errors.Wrapf(err, "error fetching publication %v", params.PublicationID)
	}

	draft := &model.ContentDraft{Text: params.Text, TipAmount: params.TipAmount}
	if params.TipAmount != "" {
		if draft.Text == "" {
			draft.Text = model.DefaultTipMessage
		}
		return submitter.SubmitTip(ctx, channel, pub, draft)
	}
	return submitter.SubmitComment(ctx, channel, pub, draft)
}

// CachedComment returns the data availability comment created by res, if it
// was indexed and cached
func CachedComment(cache *submission.PublicationCache, res *submission.Result) (*model.Publication, bool) {
	if res == nil || res.PublicationID == "" {
		return nil, false
	}
	return cache.Get(res.PublicationID)
}
