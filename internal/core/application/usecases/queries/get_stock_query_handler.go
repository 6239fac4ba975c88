package queries

import (
	"context"

	"bakehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStockQueryHandler reads ledger records straight from the database,
// flagging the ones at or below their low-stock threshold.
type GetStockQueryHandler struct {
	db *gorm.DB
}

// NewGetStockQueryHandler creates a handler for stock ledger reads.
func NewGetStockQueryHandler(db *gorm.DB) GetStockQueryHandler {
	return GetStockQueryHandler{db: db}
}

// Handle executes the ledger query.
func (h GetStockQueryHandler) Handle(ctx context.Context, query GetStockQuery) ([]GetStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	session := h.db.WithContext(ctx).Table("stock_records")

	if query.LocationID() != nil {
		session = session.Where("location_id = ?", query.LocationID().Bytes())
	} else {
		session = session.Where("location_id IS NULL")
	}
	if query.ProductID() != nil {
		session = session.Where("product_id = ?", query.ProductID().Bytes())
	}
	if query.LowOnly() {
		session = session.Where("quantity <= threshold")
	}

	rows, err := session.
		Select("id, product_id, location_id, quantity, threshold").
		Order("product_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]GetStockQueryResponse, 0)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		var (
			resp          GetStockQueryResponse
			id, productID uuid.UUID
			locationID    *uuid.UUID
		)

		if err = rows.Scan(&id, &productID, &locationID, &resp.Quantity, &resp.Threshold); err != nil {
			return nil, err
		}

		recordID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		productUUID, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = recordID
		resp.ProductID = productUUID
		if locationID != nil {
			locationUUID, locErr := kernel.UUIDFromBytes(locationID[:])
			if locErr != nil {
				return nil, locErr
			}
			resp.LocationID = &locationUUID
		}
		resp.Low = resp.Quantity <= resp.Threshold

		records = append(records, resp)
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return records, nil
	}

	movements, err := h.loadMovements(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].Movements = movements[records[i].ID.String()]
	}

	return records, nil
}

// loadMovements fetches the recent ledger movements of the listed records,
// newest first, capped at GetStockMovementLimit per record.
func (h GetStockQueryHandler) loadMovements(
	ctx context.Context,
	recordIDs []uuid.UUID,
) (map[string][]GetStockMovementResponse, error) {
	rows, err := h.db.WithContext(ctx).
		Table("stock_movements").
		Select("id, record_id, delta, reason, occurred_at").
		Where("record_id IN ?", recordIDs).
		Order("occurred_at DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := make(map[string][]GetStockMovementResponse)
	for rows.Next() {
		var (
			movement     GetStockMovementResponse
			id, recordID uuid.UUID
		)

		if err = rows.Scan(&id, &recordID, &movement.Delta, &movement.Reason, &movement.OccurredAt); err != nil {
			return nil, err
		}

		movementID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		movement.ID = movementID

		key := recordID.String()
		if len(movements[key]) < GetStockMovementLimit {
			movements[key] = append(movements[key], movement)
		}
	}

	return movements, rows.Err()
}
