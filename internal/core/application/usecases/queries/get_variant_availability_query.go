package queries

import (
	"errors"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/guard"
)

var (
	ErrGetVariantAvailabilityQueryIsNotConstructed = errors.New(
		"GetVariantAvailabilityQuery must be created via NewGetVariantAvailabilityQuery constructor",
	)
)

// GetVariantAvailabilityQuery retrieves the per-branch availability of one
// variant. When a session identifier is supplied, the session's advisory cart
// holds are subtracted so the caller sees how much more it can add.
//
// Example:
//
//	query, err := NewGetVariantAvailabilityQuery(variantID, "session-42")
//	if err != nil {
//	    return err
//	}
//
//	availability, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get availability: %w", err)
//	}
//
//	for _, branch := range availability.Branches {
//	    fmt.Printf("branch %s: %d available\n", branch.BranchID, branch.Effective)
//	}
type GetVariantAvailabilityQuery struct { //nolint:recvcheck //using for validation
	variantID kernel.UUID
	sessionID string

	guard guard.ConstructorGuard
}

// NewGetVariantAvailabilityQuery creates an availability query.
// An empty sessionID skips the cart-hold adjustment.
func NewGetVariantAvailabilityQuery(variantID kernel.UUID, sessionID string) (GetVariantAvailabilityQuery, error) {
	query := GetVariantAvailabilityQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}

	if err := query.setVariantID(variantID); err != nil {
		return GetVariantAvailabilityQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetVariantAvailabilityQueryIsNotConstructed if validation fails.
func (q GetVariantAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetVariantAvailabilityQueryIsNotConstructed)
}

// VariantID returns the identifier of the requested variant.
func (q GetVariantAvailabilityQuery) VariantID() kernel.UUID {
	return q.variantID
}

// SessionID returns the cart session identifier, empty when none was supplied.
func (q GetVariantAvailabilityQuery) SessionID() string {
	return q.sessionID
}

func (q *GetVariantAvailabilityQuery) setVariantID(variantID kernel.UUID) error {
	if err := variantID.Validate(); err != nil {
		return err
	}
	q.variantID = variantID
	return nil
}

// GetVariantAvailabilityQueryResponse lists a variant's stock per branch.
type GetVariantAvailabilityQueryResponse struct {
	VariantID kernel.UUID
	Branches  []BranchAvailabilityResponse
}

// BranchAvailabilityResponse is the availability of one (variant, branch) cell.
// Held and Effective reflect the querying session's advisory holds; without a
// session both mirror the raw stock.
type BranchAvailabilityResponse struct {
	BranchID  kernel.UUID
	Available int
	Held      int
	Effective int
}
