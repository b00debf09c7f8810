package queries

import (
	"context"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/ports"
	"shop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetVariantAvailabilityQueryHandler reads a variant's per-branch stock and
// overlays the querying session's advisory cart holds. The holds are purely
// informational; the numbers here never gate order placement, which re-checks
// stock atomically.
type GetVariantAvailabilityQueryHandler struct {
	db    *gorm.DB
	holds ports.CartHoldStore
}

// NewGetVariantAvailabilityQueryHandler creates a handler for availability queries.
func NewGetVariantAvailabilityQueryHandler(db *gorm.DB, holds ports.CartHoldStore) GetVariantAvailabilityQueryHandler {
	return GetVariantAvailabilityQueryHandler{db: db, holds: holds}
}

// Handle executes the query and returns the per-branch availability.
// Returns errs.ErrObjectNotFound when the variant has no stock cells at all.
func (h GetVariantAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetVariantAvailabilityQuery,
) (GetVariantAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetVariantAvailabilityQueryResponse{}, err
	}

	resp := GetVariantAvailabilityQueryResponse{
		VariantID: query.VariantID(),
		Branches:  make([]BranchAvailabilityResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			branch_id,
			available
		FROM branch_stocks
		WHERE variant_id = ?
		ORDER BY branch_id
	`, query.VariantID().String()).Rows()
	if err != nil {
		return GetVariantAvailabilityQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var branch BranchAvailabilityResponse
		var branchID uuid.UUID

		err = rows.Scan(&branchID, &branch.Available)
		if err != nil {
			return GetVariantAvailabilityQueryResponse{}, err
		}

		branch.BranchID, err = kernel.UUIDFromBytes(branchID[:])
		if err != nil {
			return GetVariantAvailabilityQueryResponse{}, err
		}

		branch.Effective = branch.Available
		resp.Branches = append(resp.Branches, branch)
	}

	if err = rows.Err(); err != nil {
		return GetVariantAvailabilityQueryResponse{}, err
	}

	if len(resp.Branches) == 0 {
		return GetVariantAvailabilityQueryResponse{}, errs.NewObjectNotFoundError("variant", query.VariantID())
	}

	if query.SessionID() == "" {
		return resp, nil
	}

	for i := range resp.Branches {
		held, holdErr := h.holds.Held(ctx, query.SessionID(), query.VariantID(), resp.Branches[i].BranchID)
		if holdErr != nil {
			return GetVariantAvailabilityQueryResponse{}, holdErr
		}

		resp.Branches[i].Held = held
		effective := resp.Branches[i].Available - held
		if effective < 0 {
			effective = 0
		}
		resp.Branches[i].Effective = effective
	}

	return resp, nil
}
