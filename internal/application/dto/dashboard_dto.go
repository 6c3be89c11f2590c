package dto

import "github.com/shopspring/decimal"

// DailyTotalDTO punto de la serie de producción diaria.
type DailyTotalDTO struct {
	Date     string          `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
}

// DashboardDTO respuesta de GET /api/dashboard: indicadores del día y serie
// de producción reciente.
type DashboardDTO struct {
	TodayProduction   decimal.Decimal `json:"today_production"`
	TodayShipment     decimal.Decimal `json:"today_shipment"`
	PendingOrders     int             `json:"pending_orders"`
	ProductionTrend   []DailyTotalDTO `json:"production_trend"`
	RecentStockCounts []MovementDTO   `json:"recent_stock_counts"`
}
