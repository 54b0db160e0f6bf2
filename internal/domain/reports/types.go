// Package reports provides read-only derived views for dashboards and
// restock alerts. Nothing here mutates state.
package reports

import (
	"uniformdesk/internal/core/id"
	"uniformdesk/internal/core/types"
)

// LowStockItem is a uniform whose stock is strictly below its
// threshold.
type LowStockItem struct {
	ID                id.ID  `db:"id" json:"id"`
	Name              string `db:"name" json:"name"`
	Size              string `db:"size" json:"size"`
	Stock             int    `db:"stock" json:"stock"`
	LowStockThreshold int    `db:"low_stock_threshold" json:"lowStockThreshold"`
	SchoolName        string `db:"school_name" json:"schoolName"`
}

// Overview is the daily dashboard summary.
type Overview struct {
	TotalStock        int         `json:"totalStock"`
	TotalSalesToday   int         `json:"totalSalesToday"`
	TotalRevenueToday types.Money `json:"totalRevenueToday"`
	TotalProfitToday  types.Money `json:"totalProfitToday"`
}

// TrendPoint is one day of the sales trend, ascending by date.
type TrendPoint struct {
	Date       string      `db:"date" json:"date"`
	TotalSales types.Money `db:"total_sales" json:"totalSales"`
}

// TopSellingItem is one row of the dashboard best-sellers ranking.
type TopSellingItem struct {
	ID           id.ID  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	QuantitySold int    `db:"quantity_sold" json:"quantitySold"`
}
