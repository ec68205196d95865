package submission

// State is a step of a single submission
type State int

// Submission states. StateDone and StateFailed are terminal.
const (
	StateDrafting State = iota
	StateBuildingMetadata
	StatePublishingContent
	StateRouting
	StateRelayPending
	StateRelayOK
	StateRelayRejected
	StateFallbackPending
	StateFallbackOK
	StateFallbackFailed
	StateSignaturePending
	StateSigned
	StateBroadcast
	StateDone
	StateFailed
)

var stateNames = []string{
	"DRAFTING",
	"BUILDING_METADATA",
	"PUBLISHING_CONTENT",
	"ROUTING",
	"RELAY_PENDING",
	"RELAY_OK",
	"RELAY_REJECTED",
	"FALLBACK_PENDING",
	"FALLBACK_OK",
	"FALLBACK_FAILED",
	"SIGNATURE_PENDING",
	"SIGNED",
	"BROADCAST",
	"DONE",
	"FAILED",
}

func (s State) String() string {
	if int(s) < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// IsTerminal returns true for StateDone and StateFailed
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

func newResult() *Result {
	return &Result{states: []State{StateDrafting}}
}

// Result is the outcome of a single submission
type Result struct {
	// Strategy is the strategy that produced the terminal action
	Strategy Strategy

	// FellBack is true if a relay rejection downgraded the first strategy
	FellBack bool

	// Cancelled is true if the signature request was declined
	Cancelled bool

	// DirectWrite is true if the comment was sent straight to LensHub
	DirectWrite bool

	// ContentID is the CID of the metadata content, identical for identical
	// drafts
	ContentID string

	ContentURI string

	// TxnID is the relayer transaction id, if any
	TxnID string

	// TxnHash is the transaction hash, if known
	TxnHash string

	// PublicationID is the id of a data availability publication
	PublicationID string

	// TipTxHash is the hash of the tip value transfer, if any
	TipTxHash string

	states []State
}

// State returns the current state
func (r *Result) State() State {
	return r.states[len(r.states)-1]
}

// States returns every state the submission went through, in order
func (r *Result) States() []State {
	states := make([]State, len(r.states))
	copy(states, r.states)
	return states
}

func (r *Result) transition(s State) {
	if r.State().IsTerminal() {
		return
	}
	r.states = append(r.states, s)
}
