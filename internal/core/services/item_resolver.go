package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// itemResolver maps a free-text item name to one catalog item.
// Tiers are tried in domain.ItemResolutionTiers order; the first tier with any match decides.
type itemResolver struct {
	items portsrepo.ItemTransactionSupport
}

func (r itemResolver) resolveByName(ctx context.Context, tx pgx.Tx, name string) (*domain.Item, error) {
	ref := strings.TrimSpace(name)
	if ref == "" {
		return nil, fmt.Errorf("%w: item name is empty", apperrors.ErrValidation)
	}

	for _, tier := range domain.ItemResolutionTiers {
		matches, err := r.items.FindItemsByName(ctx, tx, ref, tier)
		if err != nil {
			return nil, err
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return &matches[0], nil
		default:
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.Name
			}
			return nil, &apperrors.AmbiguousItemReferenceError{Reference: ref, Candidates: names}
		}
	}
	return nil, fmt.Errorf("item %q: %w", ref, apperrors.ErrItemNotFound)
}

// resolveAndLock resolves the request's item, by foreign key when set, and locks its row.
func (r itemResolver) resolveAndLock(ctx context.Context, tx pgx.Tx, req *domain.Request) (*domain.Item, error) {
	itemID := ""
	if req.ItemID != nil && *req.ItemID != "" {
		itemID = *req.ItemID
	} else {
		item, err := r.resolveByName(ctx, tx, req.ItemName)
		if err != nil {
			return nil, err
		}
		itemID = item.ItemID
	}
	return r.items.LockItemByID(ctx, tx, itemID)
}
