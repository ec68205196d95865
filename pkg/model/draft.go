package model

// ContentDraft is the raw user input for one submission. It is discarded after
// the submission completes or fails.
type ContentDraft struct {
	// Text is the comment or tip message
	Text string

	// TipTxHash is the hash of the value transfer a tip comment refers to.
	// Empty for plain comments.
	TipTxHash string

	// TipAmount is the tip quantity in MATIC as typed by the user
	TipAmount string

	// Restricted marks the content for a restricted audience. Carried through
	// but not interpreted by the submission flow.
	Restricted bool
}

// IsTip returns true if the draft carries a tip transfer hash
func (d *ContentDraft) IsTip() bool {
	return d.TipTxHash != ""
}

// DefaultTipMessage is the tip message used when none is given
const DefaultTipMessage = "Thanks for making this video!"
