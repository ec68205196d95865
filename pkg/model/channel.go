// Package model contains the general data models and interfaces for the Tape publisher.
package model // import "github.com/tapexyz/tape-publisher/pkg/model"

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// OldLensRelayerAddress is the deprecated Lens dispatcher. Channels still
	// using it should be asked to upgrade.
	OldLensRelayerAddress = "0xD1FecCF6881970105dfb2b654054174007f0e07E"

	lensProtocolHandle = "lensprotocol"
)

var handleSuffixes = []string{".lens", ".test", ".eth"}

// Dispatcher describes the relayer grant of a channel
type Dispatcher struct {
	Address     common.Address
	CanUseRelay bool
	Sponsor     bool
}

// ChannelParams are the params to init a new Channel
type ChannelParams struct {
	ID         string
	Handle     string
	OwnedBy    common.Address
	Dispatcher *Dispatcher
}

// NewChannel is a convenience function to init a Channel struct
func NewChannel(params *ChannelParams) *Channel {
	return &Channel{
		id:         params.ID,
		handle:     params.Handle,
		ownedBy:    params.OwnedBy,
		dispatcher: params.Dispatcher,
	}
}

// Channel is the acting Lens profile. It is read-only to the submission flow.
type Channel struct {
	id string

	handle string

	ownedBy common.Address

	// nil if the channel has never set a dispatcher
	dispatcher *Dispatcher
}

// ID returns the Lens profile id, ex. 0x2d
func (c *Channel) ID() string {
	return c.id
}

// Handle returns the full Lens handle
func (c *Channel) Handle() string {
	return c.handle
}

// OwnedBy returns the wallet address owning the profile
func (c *Channel) OwnedBy() common.Address {
	return c.ownedBy
}

// Dispatcher returns the dispatcher grant, may be nil
func (c *Channel) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// CanUseRelay returns true if the channel has an active dispatcher
func (c *Channel) CanUseRelay() bool {
	return c.dispatcher != nil && c.dispatcher.CanUseRelay
}

// IsSponsored returns true if the dispatcher sponsors data availability actions
func (c *Channel) IsSponsored() bool {
	return c.dispatcher != nil && c.dispatcher.Sponsor
}

// UsingOldDispatcher returns true if the channel dispatcher is the deprecated
// Lens relayer
func (c *Channel) UsingOldDispatcher() bool {
	if c.dispatcher == nil {
		return false
	}
	return c.dispatcher.Address == common.HexToAddress(OldLensRelayerAddress)
}

// TrimLensHandle strips the Lens namespace suffix from a handle. If keepSuffix
// is true, the given suffix is kept or appended instead.
func TrimLensHandle(handle string, keepSuffix bool, suffix string) string {
	if handle == "" {
		return handle
	}
	if strings.ToLower(handle) == lensProtocolHandle {
		return handle
	}
	if keepSuffix {
		if idx := strings.Index(handle, suffix); idx >= 0 {
			return handle[:idx] + suffix
		}
		return handle + suffix
	}
	for _, s := range handleSuffixes {
		handle = strings.Replace(handle, s, "", 1)
	}
	return handle
}
