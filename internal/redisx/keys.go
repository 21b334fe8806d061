package redisx

import "time"

const (
	// Cached table status for floor displays: table_status:{tenant_id}:{table_id}
	KeyTableStatus = "table_status:%s:%s"

	// Dedup for low-stock alerts: stock_low:{tenant_id}:{service_id}
	KeyStockLowDedup = "stock_low:%s:%s"
)

var (
	TTLTableStatus   = 5 * time.Minute
	TTLStockLowDedup = 6 * time.Hour
)
