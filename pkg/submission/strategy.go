// Package submission routes comment and tip submissions to the dispatcher,
// typed data signature or data availability relay paths
package submission // import "github.com/tapexyz/tape-publisher/pkg/submission"

import (
	"github.com/tapexyz/tape-publisher/pkg/model"
)

// Strategy is the way a submission reaches Lens
type Strategy int

const (
	// StrategyNone is set before routing
	StrategyNone Strategy = iota

	// StrategyDataAvailabilityDispatcher relays a Momoka comment through the
	// sponsored dispatcher
	StrategyDataAvailabilityDispatcher

	// StrategyDispatcher relays an on-chain comment through the dispatcher
	StrategyDispatcher

	// StrategyTypedData signs on-chain typed data and broadcasts it, with a
	// direct contract write as the last resort
	StrategyTypedData

	// StrategyDataAvailabilityTypedData signs Momoka typed data and broadcasts
	// it. Only reached as the fallback of StrategyDataAvailabilityDispatcher.
	StrategyDataAvailabilityTypedData
)

var strategyNames = map[Strategy]string{
	StrategyNone:                       "none",
	StrategyDataAvailabilityDispatcher: "data_availability_dispatcher",
	StrategyDispatcher:                 "dispatcher",
	StrategyTypedData:                  "typed_data",
	StrategyDataAvailabilityTypedData:  "data_availability_typed_data",
}

func (s Strategy) String() string {
	name, ok := strategyNames[s]
	if !ok {
		return "unknown"
	}
	return name
}

// IsRelay returns true for strategies that may be rejected by the relayer and
// have a fallback
func (s Strategy) IsRelay() bool {
	return s == StrategyDataAvailabilityDispatcher || s == StrategyDispatcher
}

// Fallback returns the single weaker strategy to use after a relay rejection.
// The fallbacks themselves have no fallback.
func (s Strategy) Fallback() (Strategy, bool) {
	switch s {
	case StrategyDataAvailabilityDispatcher:
		return StrategyDataAvailabilityTypedData, true
	case StrategyDispatcher:
		return StrategyTypedData, true
	}
	return StrategyNone, false
}

// Capabilities are the inputs of the routing decision
type Capabilities struct {
	IsDataAvailabilityTarget bool
	IsSponsored              bool
	CanUseRelay              bool
}

// CapabilitiesFor returns the capabilities of a channel acting on a publication
func CapabilitiesFor(channel *model.Channel, pub *model.Publication) Capabilities {
	return Capabilities{
		IsDataAvailabilityTarget: pub.IsDataAvailability(),
		IsSponsored:              channel.IsSponsored(),
		CanUseRelay:              channel.CanUseRelay(),
	}
}

// SelectStrategy picks the submission strategy. First match wins:
// unsponsored data availability targets are rejected, then the data
// availability dispatcher, the dispatcher and finally typed data.
func SelectStrategy(caps Capabilities) (Strategy, error) {
	if caps.IsDataAvailabilityTarget && !caps.IsSponsored {
		return StrategyNone, model.ErrFeatureUnavailable
	}
	if caps.CanUseRelay && caps.IsDataAvailabilityTarget && caps.IsSponsored {
		return StrategyDataAvailabilityDispatcher, nil
	}
	if caps.CanUseRelay {
		return StrategyDispatcher, nil
	}
	return StrategyTypedData, nil
}
