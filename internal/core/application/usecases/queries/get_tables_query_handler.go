package queries

import (
	"context"

	"bakehouse/internal/core/domain/model/dining"
	"bakehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTablesQueryHandler reads the table board of a branch, joining in the
// bill number of the occupying order where one exists.
type GetTablesQueryHandler struct {
	db *gorm.DB
}

// NewGetTablesQueryHandler creates a handler for table board reads.
func NewGetTablesQueryHandler(db *gorm.DB) GetTablesQueryHandler {
	return GetTablesQueryHandler{db: db}
}

// Handle executes the table board query.
func (h GetTablesQueryHandler) Handle(ctx context.Context, query GetTablesQuery) ([]GetTablesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	session := h.db.WithContext(ctx).
		Table("tables").
		Select("tables.id, tables.branch_id, tables.category_id, tables.label, "+
			"tables.status, tables.active_order_id, orders.bill_number").
		Joins("LEFT JOIN orders ON orders.id = tables.active_order_id").
		Where("tables.branch_id = ?", query.BranchID().Bytes())

	if query.CategoryID() != nil {
		session = session.Where("tables.category_id = ?", query.CategoryID().Bytes())
	}

	rows, err := session.Order("tables.label").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]GetTablesQueryResponse, 0)
	for rows.Next() {
		var (
			resp                     GetTablesQueryResponse
			id, branchID, categoryID uuid.UUID
			activeOrderID            *uuid.UUID
			status                   int
		)

		if err = rows.Scan(
			&id, &branchID, &categoryID, &resp.Label,
			&status, &activeOrderID, &resp.ActiveBillNumber,
		); err != nil {
			return nil, err
		}

		tableID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		branchUUID, idErr := kernel.UUIDFromBytes(branchID[:])
		if idErr != nil {
			return nil, idErr
		}
		categoryUUID, idErr := kernel.UUIDFromBytes(categoryID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.ID = tableID
		resp.BranchID = branchUUID
		resp.CategoryID = categoryUUID
		resp.Status = dining.TableStatus(status).String()
		if activeOrderID != nil {
			orderUUID, orderErr := kernel.UUIDFromBytes(activeOrderID[:])
			if orderErr != nil {
				return nil, orderErr
			}
			resp.ActiveOrderID = &orderUUID
		}

		tables = append(tables, resp)
	}

	return tables, rows.Err()
}
