// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

// Package models defines the response records produced by the analytics
// layer. Every record is a flat mapping of field name to value; money and
// percentage fields are pre-rounded to 2 decimal places by the database
// layer, not left to presentation.
package models

// DashboardCards holds the four scalar KPI metrics shown as dashboard cards.
// All values default to 0 when no rows match the filter.
type DashboardCards struct {
	TotalSales   float64 `json:"total_sales"`
	TotalProfit  float64 `json:"total_profit"`
	TotalOrders  int64   `json:"total_orders"`
	ProfitMargin float64 `json:"profit_margin"`
}

// DashboardCharts holds the grouped breakdown series for the dashboard.
type DashboardCharts struct {
	RevenueTrend    []MonthlyRevenue `json:"revenue_trend"`
	SalesByCategory []CategorySales  `json:"sales_by_category"`
	TopStates       []StateRevenue   `json:"top_states_revenue"`
}

// DashboardResponse is the combined cards-plus-charts dashboard payload.
type DashboardResponse struct {
	Cards  DashboardCards  `json:"cards"`
	Charts DashboardCharts `json:"charts"`
}

// MonthlyRevenue is one chronological bucket of the revenue trend.
// Period is formatted "YYYY-MM" with the month zero-padded.
type MonthlyRevenue struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

// CategorySales is one category's summed sales, ordered descending by value.
type CategorySales struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StateRevenue is one state's summed sales revenue.
type StateRevenue struct {
	State   string  `json:"state"`
	Revenue float64 `json:"revenue"`
}

// ManagerReturnRate reports per-manager (per-region) order return rates.
// Regions with zero returned orders report a 0 rate, never an error.
type ManagerReturnRate struct {
	Manager        string  `json:"manager"`
	Region         string  `json:"region"`
	TotalOrders    int64   `json:"total_orders"`
	ReturnedOrders int64   `json:"returned_orders"`
	ReturnRatePct  float64 `json:"return_rate_percentage"`
}

// CustomerSales is one customer's summed sales within a state, with its
// dense rank. Ties share a rank, so a result may hold more than five rows
// while still covering at most five distinct sales levels.
type CustomerSales struct {
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	State        string  `json:"state"`
	TotalSales   float64 `json:"total_sales"`
	Rank         int64   `json:"rank"`
}

// ShipModePerformance aggregates shipping speed and lateness per ship mode.
type ShipModePerformance struct {
	ShipMode        string  `json:"ship_mode"`
	AvgShippingDays float64 `json:"avg_shipping_days"`
	LatePercentage  float64 `json:"late_percentage"`
}

// MonthlyGrowth is one month of the month-over-month growth series.
// PrevMonthSales and GrowthPct are null for the first month of the window
// and whenever the previous month's sales are zero; growth from nothing is
// undefined, not zero.
type MonthlyGrowth struct {
	Month          string   `json:"order_year_month"`
	MonthlySales   float64  `json:"monthly_sales"`
	PrevMonthSales *float64 `json:"prev_month_sales"`
	GrowthPct      *float64 `json:"growth_percentage"`
}

// GrowthResponse wraps the growth series with the year the window covers.
// Year is echoed back so callers can see which year was resolved when they
// did not supply one.
type GrowthResponse struct {
	Year   int             `json:"year"`
	Months []MonthlyGrowth `json:"mom_growth"`
}

// ProfitLossSummary partitions profit into gained and lost money and
// attributes each side a share of the combined magnitude. A dataset with
// no profit and no loss reports zeros throughout.
type ProfitLossSummary struct {
	TotalGrossProfit float64 `json:"total_gross_profit"`
	TotalLostMoney   float64 `json:"total_lost_money"`
	ProfitPct        float64 `json:"profit_percentage_impact"`
	LossPct          float64 `json:"loss_percentage_impact"`
}

// ProductShare is one product's contribution to the total loss or profit.
// Percentage is computed against the full loss-making (or profit-making)
// set before the top-5 truncation, so the shares of the returned rows do
// not necessarily sum to 100.
type ProductShare struct {
	ProductName string  `json:"product_name"`
	Amount      float64 `json:"amount"`
	Percentage  float64 `json:"percentage"`
}
