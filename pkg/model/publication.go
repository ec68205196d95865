package model

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	// PublicationStateDataOnly is the analytics state of a data availability publication
	PublicationStateDataOnly = "DATA_ONLY"
	// PublicationStateOnChain is the analytics state of an on-chain publication
	PublicationStateOnChain = "ON_CHAIN"
)

// PublicationParams are the params to init a new Publication
type PublicationParams struct {
	ID                 string
	IsDataAvailability bool
	MetadataName       string
	ProfileID          string
	ProfileHandle      string
	OwnedBy            common.Address
}

// NewPublication is a convenience function to init a Publication struct
func NewPublication(params *PublicationParams) *Publication {
	return &Publication{
		id:                 params.ID,
		isDataAvailability: params.IsDataAvailability,
		metadataName:       params.MetadataName,
		profileID:          params.ProfileID,
		profileHandle:      params.ProfileHandle,
		ownedBy:            params.OwnedBy,
	}
}

// Publication is the parent content being commented on or tipped
type Publication struct {
	id string

	// true if the publication lives on Momoka instead of on-chain
	isDataAvailability bool

	metadataName string

	profileID string

	profileHandle string

	// wallet of the publication author, recipient of tips
	ownedBy common.Address
}

// ID returns the publication id, ex. 0x2d-0x01
func (p *Publication) ID() string {
	return p.id
}

// IsDataAvailability returns true for Momoka publications
func (p *Publication) IsDataAvailability() bool {
	return p.isDataAvailability
}

// MetadataName returns the name of the publication metadata
func (p *Publication) MetadataName() string {
	return p.metadataName
}

// ProfileID returns the author profile id
func (p *Publication) ProfileID() string {
	return p.profileID
}

// ProfileHandle returns the author handle
func (p *Publication) ProfileHandle() string {
	return p.profileHandle
}

// OwnedBy returns the author wallet address
func (p *Publication) OwnedBy() common.Address {
	return p.ownedBy
}

// State returns the analytics publication state
func (p *Publication) State() string {
	if p.isDataAvailability {
		return PublicationStateDataOnly
	}
	return PublicationStateOnChain
}
