package dto

import (
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// CreateItemRequest defines the data needed to add an item to the catalog.
// InitialQuantity, when positive, is booked as a first intake.
type CreateItemRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	Code            string `json:"code" binding:"required,max=50"`
	UnitOfMeasure   string `json:"unitOfMeasure" binding:"required,max=30"`
	Location        string `json:"location" binding:"max=100"`
	MinStock        int    `json:"minStock" binding:"gte=0"`
	InitialQuantity int    `json:"initialQuantity" binding:"gte=0"`
	PersonInCharge  string `json:"personInCharge" binding:"required_with=InitialQuantity"`
}

// UpdateItemRequest defines the descriptive fields an admin may change.
type UpdateItemRequest struct {
	Code          *string `json:"code" binding:"omitempty,max=50"`
	UnitOfMeasure *string `json:"unitOfMeasure" binding:"omitempty,max=30"`
	Location      *string `json:"location" binding:"omitempty,max=100"`
	MinStock      *int    `json:"minStock" binding:"omitempty,gte=0"`
}

// StockIntakeRequest books received stock for an existing item.
type StockIntakeRequest struct {
	Quantity       int    `json:"quantity" binding:"required,gt=0"`
	PersonInCharge string `json:"personInCharge" binding:"required"`
	Date           string `json:"date" binding:"required,datetime=2006-01-02"`
}

// ListItemsParams defines query parameters for listing items.
type ListItemsParams struct {
	Limit  int `form:"limit,default=50" binding:"gte=1,lte=500"`
	Offset int `form:"offset,default=0" binding:"gte=0"`
}

// ItemResponse defines the data returned for an item.
type ItemResponse struct {
	ItemID        string    `json:"itemID"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	Quantity      int       `json:"quantity"`
	UnitOfMeasure string    `json:"unitOfMeasure"`
	Location      string    `json:"location"`
	MinStock      int       `json:"minStock"`
	LowStock      bool      `json:"lowStock"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToItemResponse converts a domain.Item to ItemResponse DTO
func ToItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:        item.ItemID,
		Name:          item.Name,
		Code:          item.Code,
		Quantity:      item.Quantity,
		UnitOfMeasure: item.UnitOfMeasure,
		Location:      item.Location,
		MinStock:      item.MinStock,
		LowStock:      item.IsLowStock(),
		LastUpdatedAt: item.LastUpdatedAt,
	}
}

// ToListItemResponse converts a slice of domain.Item to ItemResponse DTOs
func ToListItemResponse(items []domain.Item) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i := range items {
		res[i] = ToItemResponse(&items[i])
	}
	return res
}
