package model

import (
	"github.com/pkg/errors"
)

// CollectModuleParams selects the collect module of a new comment
type CollectModuleParams struct {
	RevertCollectModule bool `json:"revertCollectModule"`
}

// ReferenceModuleParams selects the reference module of a new comment
type ReferenceModuleParams struct {
	FollowerOnlyReferenceModule bool `json:"followerOnlyReferenceModule"`
}

// OnChainCommentRequest is the request for an on-chain comment
type OnChainCommentRequest struct {
	ProfileID       string                 `json:"profileId"`
	PublicationID   string                 `json:"publicationId"`
	ContentURI      string                 `json:"contentURI"`
	CollectModule   *CollectModuleParams   `json:"collectModule"`
	ReferenceModule *ReferenceModuleParams `json:"referenceModule"`
}

// DataAvailabilityCommentRequest is the request for a Momoka comment
type DataAvailabilityCommentRequest struct {
	From       string `json:"from"`
	CommentOn  string `json:"commentOn"`
	ContentURI string `json:"contentURI"`
}

// SubmissionRequest carries exactly one of the two request shapes
type SubmissionRequest struct {
	onChain          *OnChainCommentRequest
	dataAvailability *DataAvailabilityCommentRequest
}

// NewOnChainSubmissionRequest builds the on-chain request for a channel
// commenting on a publication. Collect is reverted and references are open.
func NewOnChainSubmissionRequest(profileID string, publicationID string,
	contentURI string) *SubmissionRequest {
	return &SubmissionRequest{
		onChain: &OnChainCommentRequest{
			ProfileID:     profileID,
			PublicationID: publicationID,
			ContentURI:    contentURI,
			CollectModule: &CollectModuleParams{
				RevertCollectModule: true,
			},
			ReferenceModule: &ReferenceModuleParams{
				FollowerOnlyReferenceModule: false,
			},
		},
	}
}

// NewDataAvailabilitySubmissionRequest builds the Momoka request
func NewDataAvailabilitySubmissionRequest(from string, commentOn string,
	contentURI string) *SubmissionRequest {
	return &SubmissionRequest{
		dataAvailability: &DataAvailabilityCommentRequest{
			From:       from,
			CommentOn:  commentOn,
			ContentURI: contentURI,
		},
	}
}

// OnChain returns the on-chain request or an error if this is a data
// availability request
func (s *SubmissionRequest) OnChain() (*OnChainCommentRequest, error) {
	if s.onChain == nil {
		return nil, errors.New("not an on-chain request")
	}
	return s.onChain, nil
}

// DataAvailability returns the Momoka request or an error if this is an
// on-chain request
func (s *SubmissionRequest) DataAvailability() (*DataAvailabilityCommentRequest, error) {
	if s.dataAvailability == nil {
		return nil, errors.New("not a data availability request")
	}
	return s.dataAvailability, nil
}

// IsDataAvailability returns true if the request is the Momoka shape
func (s *SubmissionRequest) IsDataAvailability() bool {
	return s.dataAvailability != nil
}

// ContentURI returns the content uri of whichever shape is active
func (s *SubmissionRequest) ContentURI() string {
	if s.dataAvailability != nil {
		return s.dataAvailability.ContentURI
	}
	if s.onChain != nil {
		return s.onChain.ContentURI
	}
	return ""
}
