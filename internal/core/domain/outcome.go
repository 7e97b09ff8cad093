package domain

import "github.com/shopspring/decimal"

// OutcomeKind is the tagged result of a settlement operation. Every kind other
// than OutcomeSuccess maps to exactly one user notification.
type OutcomeKind string

const (
	OutcomeSuccess             OutcomeKind = "SUCCESS"
	OutcomeUnrecognized        OutcomeKind = "UNRECOGNIZED"
	OutcomeInvalidAmount       OutcomeKind = "INVALID_AMOUNT"
	OutcomeBelowMinimum        OutcomeKind = "BELOW_MINIMUM"
	OutcomeInsufficientBalance OutcomeKind = "INSUFFICIENT_BALANCE"
	OutcomeInvalidAddress      OutcomeKind = "INVALID_ADDRESS"
	OutcomeSelfTransfer        OutcomeKind = "SELF_TRANSFER"
	OutcomeTransferFailed      OutcomeKind = "TRANSFER_FAILED"
	OutcomeMaintenance         OutcomeKind = "MAINTENANCE"
	OutcomeNoAccount           OutcomeKind = "NO_ACCOUNT"
	OutcomeNoBalance           OutcomeKind = "NO_BALANCE"
	OutcomeNoRecipients        OutcomeKind = "NO_RECIPIENTS"
	OutcomeInvalidSyntax       OutcomeKind = "INVALID_SYNTAX"
	OutcomeUnknownLanguage     OutcomeKind = "UNKNOWN_LANGUAGE"
	OutcomeOutOfRange          OutcomeKind = "OUT_OF_RANGE"
)

// RecipientState tracks one tip target through settlement.
//
//	PENDING -> RESOLVED -> TRANSFERRED -> NOTIFIED
//	PENDING -> REJECTED
//	RESOLVED -> TRANSFER_FAILED
type RecipientState string

const (
	RecipientPending        RecipientState = "PENDING"
	RecipientResolved       RecipientState = "RESOLVED"
	RecipientTransferred    RecipientState = "TRANSFERRED"
	RecipientNotified       RecipientState = "NOTIFIED"
	RecipientRejected       RecipientState = "REJECTED"
	RecipientTransferFailed RecipientState = "TRANSFER_FAILED"
)

// Settled reports whether money moved for the recipient.
func (s RecipientState) Settled() bool {
	return s == RecipientTransferred || s == RecipientNotified
}

var recipientTransitions = map[RecipientState][]RecipientState{
	RecipientPending:     {RecipientResolved, RecipientRejected},
	RecipientResolved:    {RecipientTransferred, RecipientTransferFailed},
	RecipientTransferred: {RecipientNotified},
}

// CanTransition reports whether from -> to is a legal step.
func CanTransition(from, to RecipientState) bool {
	for _, next := range recipientTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RecipientEntry is the per-recipient working record of a tip.
type RecipientEntry struct {
	Index    int
	UserID   string
	UserName string
	Account  *Account
	State    RecipientState
	Reason   OutcomeKind
	TipID    string
	Balance  decimal.Decimal
}

// Advance moves the entry to the next state. It refuses illegal transitions so
// an entry can never be settled twice.
func (e *RecipientEntry) Advance(to RecipientState) bool {
	if !CanTransition(e.State, to) {
		return false
	}
	e.State = to
	return true
}

// Result is what the engine returns for one command.
type Result struct {
	Intent     Intent
	Kind       OutcomeKind
	Amount     decimal.Decimal
	TxHash     string
	TipID      string
	Recipients []*RecipientEntry
}

// Transferred counts the recipients whose money moved.
func (r *Result) Transferred() int {
	n := 0
	for _, e := range r.Recipients {
		if e.State.Settled() {
			n++
		}
	}
	return n
}
