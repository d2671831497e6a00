// Package provider defines the contract for external bank-data providers.
//
// The network client that talks to a concrete provider is not part of this
// backend. Anything that can deliver CandidateRecords can act as a provider,
// including the bulk upload parser.
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// CandidateRecord is one transaction as returned by a provider or upload
// parser, before deduplication and mapping. It is never stored verbatim.
type CandidateRecord struct {
	// ExternalID is the provider's ID for the transaction. Records without
	// an external ID cannot be deduplicated and fail mapping.
	ExternalID string

	// AccountRef is the provider's reference for the account the
	// transaction belongs to.
	AccountRef string

	Date time.Time

	// Amount is the raw signed amount in currency-of-record units.
	// Provider convention: positive amounts are money leaving the account.
	// An invalid amount survives parsing and fails mapping, so that it is
	// counted per record instead of aborting the batch.
	Amount decimal.NullDecimal

	// Description is the free-text description or merchant name.
	Description string

	// PrimaryCategory is the provider's top level category,
	// e.g. "FOOD_AND_DRINK" or "TRANSFER_IN".
	PrimaryCategory string

	// CategoryTags are the provider's detailed category tags.
	CategoryTags []string

	// Channel is the payment channel, e.g. "online", "in store" or
	// "transfer".
	Channel string
}

// Page is one chunk of a provider's transaction feed.
type Page struct {
	Records []CandidateRecord

	// NextCursor is the cursor for the next page. Empty when this is the
	// last page.
	NextCursor string

	// Total is the provider's estimate for the full record count, if it
	// reports one. 0 means unknown.
	Total int
}

// Client fetches transactions from the external provider.
type Client interface {
	// Transactions returns one page of transactions for the account,
	// starting at cursor. An empty cursor requests the first page.
	Transactions(ctx context.Context, accountRef string, cursor string) (Page, error)
}

// Provider error taxonomy. Transient errors are retried with backoff by the
// import orchestrator, everything else fails the import.
var (
	ErrReauthRequired   = errors.New("the provider item requires re-authentication")
	ErrInstitutionDown  = errors.New("the institution is temporarily unavailable")
	ErrRateLimited      = errors.New("the provider rate limit is exhausted")
	ErrAccountNotLinked = errors.New("the account is not linked to a provider account")
)

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrInstitutionDown) || errors.Is(err, ErrRateLimited)
}
