package response

import (
	"time"

	"billiard-club/internal/data/entity"
)

type TableResponse struct {
	ID          string             `json:"id"`
	Number      int                `json:"number"`
	TableTypeID string             `json:"table_type_id"`
	Status      entity.TableStatus `json:"status"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type ServiceItemResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Price             int64  `json:"price"`
	TrackStock        bool   `json:"track_stock"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
}

func TableToResponse(table *entity.Table) TableResponse {
	return TableResponse{
		ID:          table.ID.String(),
		Number:      table.Number,
		TableTypeID: table.TableTypeID.String(),
		Status:      table.Status,
		UpdatedAt:   table.UpdatedAt,
	}
}

func ServiceItemToResponse(svc *entity.ServiceItem) ServiceItemResponse {
	return ServiceItemResponse{
		ID:                svc.ID.String(),
		Name:              svc.Name,
		Price:             svc.Price,
		TrackStock:        svc.TrackStock,
		LowStockThreshold: svc.LowStockThreshold,
	}
}
