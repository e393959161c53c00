// Storelens - Sales Analytics Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

package database

import (
	"context"
	"fmt"
	"testing"
)

func TestReturnRateByManager(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	west1 := testOrder("US-2017-0001", 2017, 1, 100.0, 10.0)
	west2 := testOrder("US-2017-0002", 2017, 2, 100.0, 10.0)
	east := testOrder("US-2017-0003", 2017, 3, 100.0, 10.0)
	east.Region = "East"
	mustInsertOrders(t, db, []OrderRecord{west1, west2, east})

	if err := db.InsertPeople(ctx, []PersonRecord{
		{Person: "Anna Andreadi", Region: "West"},
		{Person: "Chuck Magee", Region: "East"},
	}); err != nil {
		t.Fatalf("InsertPeople: %v", err)
	}
	if err := db.InsertReturns(ctx, []string{"US-2017-0001"}); err != nil {
		t.Fatalf("InsertReturns: %v", err)
	}

	rates, err := db.ReturnRateByManager(ctx)
	if err != nil {
		t.Fatalf("ReturnRateByManager: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("Got %d rows, want 2", len(rates))
	}

	// Highest rate first: West has 1 of 2 orders returned (50%), East 0%.
	if rates[0].Manager != "Anna Andreadi" {
		t.Errorf("rates[0].Manager = %q, want Anna Andreadi", rates[0].Manager)
	}
	if rates[0].TotalOrders != 2 || rates[0].ReturnedOrders != 1 {
		t.Errorf("West counts = %d/%d, want 2/1", rates[0].TotalOrders, rates[0].ReturnedOrders)
	}
	if !almostEqual(rates[0].ReturnRatePct, 50.0) {
		t.Errorf("West rate = %v, want 50.0", rates[0].ReturnRatePct)
	}
	if rates[1].ReturnedOrders != 0 || rates[1].ReturnRatePct != 0 {
		t.Errorf("East should have zero returns, got %+v", rates[1])
	}
}

func TestTopCustomersByStateDenseRank(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Totals 100, 100, 90, 80, 80, 70: six customers spanning four
	// distinct sales levels. Dense ranking keeps all of them under rank 6.
	totals := []float64{100, 100, 90, 80, 80, 70}
	orders := make([]OrderRecord, 0, len(totals))
	for i, total := range totals {
		o := testOrder(fmt.Sprintf("US-2017-%04d", i), 2017, 1, total, 10.0)
		o.CustomerID = fmt.Sprintf("CU-%04d", i)
		o.CustomerName = fmt.Sprintf("Customer %c", 'A'+i)
		o.State = "California"
		orders = append(orders, o)
	}
	mustInsertOrders(t, db, orders)

	customers, err := db.TopCustomersByState(ctx, "California")
	if err != nil {
		t.Fatalf("TopCustomersByState: %v", err)
	}
	if len(customers) != 6 {
		t.Fatalf("Got %d customers, want 6 (ties share ranks)", len(customers))
	}

	wantRanks := []int64{1, 1, 2, 3, 3, 4}
	for i, want := range wantRanks {
		if customers[i].Rank != want {
			t.Errorf("customers[%d].Rank = %d, want %d", i, customers[i].Rank, want)
		}
	}
}

func TestTopCustomersByStateCutoff(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Seven distinct totals: ranks 6 and 7 must be cut.
	orders := make([]OrderRecord, 0, 7)
	for i := 0; i < 7; i++ {
		o := testOrder(fmt.Sprintf("US-2017-%04d", i), 2017, 1, float64(100-10*i), 5.0)
		o.CustomerID = fmt.Sprintf("CU-%04d", i)
		o.CustomerName = fmt.Sprintf("Customer %c", 'A'+i)
		o.State = "Texas"
		orders = append(orders, o)
	}
	mustInsertOrders(t, db, orders)

	customers, err := db.TopCustomersByState(ctx, "Texas")
	if err != nil {
		t.Fatalf("TopCustomersByState: %v", err)
	}
	if len(customers) != 5 {
		t.Fatalf("Got %d customers, want 5", len(customers))
	}
	for _, c := range customers {
		if c.Rank >= 6 {
			t.Errorf("Customer %s has rank %d, want < 6", c.CustomerName, c.Rank)
		}
	}
}

func TestTopCustomersUnknownStateEmpty(t *testing.T) {
	db := setupTestDB(t)

	customers, err := db.TopCustomersByState(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("TopCustomersByState: %v", err)
	}
	if len(customers) != 0 {
		t.Errorf("Got %d customers for unknown state, want 0", len(customers))
	}
}

func TestStates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := testOrder("US-2017-0001", 2017, 1, 100.0, 10.0)
	a.State = "Texas"
	b := testOrder("US-2017-0002", 2017, 2, 100.0, 10.0)
	b.State = "California"
	c := testOrder("US-2017-0003", 2017, 3, 100.0, 10.0)
	c.State = "Texas"
	mustInsertOrders(t, db, []OrderRecord{a, b, c})

	states, err := db.States(ctx)
	if err != nil {
		t.Fatalf("States: %v", err)
	}
	want := []string{"California", "Texas"}
	if len(states) != len(want) {
		t.Fatalf("Got %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("states[%d] = %q, want %q", i, states[i], want[i])
		}
	}
}

func TestShippingPerformanceThresholds(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Second Class threshold is strictly greater than 4 days: exactly 4
	// is on time, 5 is late.
	onTime := testOrder("US-2017-0001", 2017, 1, 100.0, 10.0)
	onTime.ShipMode = "Second Class"
	onTime.ShipDate = onTime.OrderDate.AddDate(0, 0, 4)
	late := testOrder("US-2017-0002", 2017, 2, 100.0, 10.0)
	late.ShipMode = "Second Class"
	late.ShipDate = late.OrderDate.AddDate(0, 0, 5)
	mustInsertOrders(t, db, []OrderRecord{onTime, late})

	performance, err := db.ShippingPerformance(ctx)
	if err != nil {
		t.Fatalf("ShippingPerformance: %v", err)
	}
	if len(performance) != 1 {
		t.Fatalf("Got %d ship modes, want 1", len(performance))
	}

	row := performance[0]
	if row.ShipMode != "Second Class" {
		t.Errorf("ShipMode = %q, want Second Class", row.ShipMode)
	}
	if !almostEqual(row.AvgShippingDays, 4.5) {
		t.Errorf("AvgShippingDays = %v, want 4.5", row.AvgShippingDays)
	}
	if !almostEqual(row.LatePercentage, 50.0) {
		t.Errorf("LatePercentage = %v, want 50.0", row.LatePercentage)
	}
}

func TestShippingPerformanceSameDay(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Same Day is late from 1 day onward.
	sameDay := testOrder("US-2017-0001", 2017, 1, 100.0, 10.0)
	sameDay.ShipMode = "Same Day"
	sameDay.ShipDate = sameDay.OrderDate
	lateSameDay := testOrder("US-2017-0002", 2017, 2, 100.0, 10.0)
	lateSameDay.ShipMode = "Same Day"
	lateSameDay.ShipDate = lateSameDay.OrderDate.AddDate(0, 0, 1)
	mustInsertOrders(t, db, []OrderRecord{sameDay, lateSameDay})

	performance, err := db.ShippingPerformance(ctx)
	if err != nil {
		t.Fatalf("ShippingPerformance: %v", err)
	}
	if len(performance) != 1 {
		t.Fatalf("Got %d ship modes, want 1", len(performance))
	}
	if !almostEqual(performance[0].LatePercentage, 50.0) {
		t.Errorf("LatePercentage = %v, want 50.0", performance[0].LatePercentage)
	}
}

func TestMonthOverMonthGrowth(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustInsertOrders(t, db, []OrderRecord{
		testOrder("US-2017-0001", 2017, 1, 100.0, 10.0),
		testOrder("US-2017-0002", 2017, 2, 150.0, 15.0),
		testOrder("US-2017-0003", 2017, 3, 120.0, 12.0),
	})

	growth, err := db.MonthOverMonthGrowth(ctx, intPtr(2017))
	if err != nil {
		t.Fatalf("MonthOverMonthGrowth: %v", err)
	}
	if growth.Year != 2017 {
		t.Errorf("Year = %d, want 2017", growth.Year)
	}
	if len(growth.Months) != 3 {
		t.Fatalf("Got %d months, want 3", len(growth.Months))
	}

	first := growth.Months[0]
	if first.Month != "2017-01" {
		t.Errorf("First month = %q, want 2017-01", first.Month)
	}
	if first.PrevMonthSales != nil || first.GrowthPct != nil {
		t.Errorf("First month must have null prev/growth, got %+v", first)
	}

	second := growth.Months[1]
	if second.PrevMonthSales == nil || !almostEqual(*second.PrevMonthSales, 100.0) {
		t.Errorf("Second month prev = %v, want 100.0", second.PrevMonthSales)
	}
	if second.GrowthPct == nil || !almostEqual(*second.GrowthPct, 50.0) {
		t.Errorf("Second month growth = %v, want 50.0", second.GrowthPct)
	}

	third := growth.Months[2]
	if third.GrowthPct == nil || !almostEqual(*third.GrowthPct, -20.0) {
		t.Errorf("Third month growth = %v, want -20.0", third.GrowthPct)
	}
}

func TestMonthOverMonthGrowthDefaultsToLatestYear(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustInsertOrders(t, db, []OrderRecord{
		testOrder("US-2016-0001", 2016, 5, 100.0, 10.0),
		testOrder("US-2017-0002", 2017, 6, 200.0, 20.0),
	})

	growth, err := db.MonthOverMonthGrowth(ctx, nil)
	if err != nil {
		t.Fatalf("MonthOverMonthGrowth: %v", err)
	}
	if growth.Year != 2017 {
		t.Errorf("Resolved year = %d, want 2017 (latest)", growth.Year)
	}
	if len(growth.Months) != 1 || growth.Months[0].Month != "2017-06" {
		t.Errorf("Months = %+v, want single 2017-06 bucket", growth.Months)
	}
}

func TestMonthOverMonthGrowthEmptyDataset(t *testing.T) {
	db := setupTestDB(t)

	growth, err := db.MonthOverMonthGrowth(context.Background(), nil)
	if err != nil {
		t.Fatalf("MonthOverMonthGrowth: %v", err)
	}
	if len(growth.Months) != 0 {
		t.Errorf("Expected empty series on empty dataset, got %+v", growth.Months)
	}
}

func TestAvailableYearsDescending(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustInsertOrders(t, db, []OrderRecord{
		testOrder("US-2015-0001", 2015, 1, 100.0, 10.0),
		testOrder("US-2017-0002", 2017, 1, 100.0, 10.0),
		testOrder("US-2016-0003", 2016, 1, 100.0, 10.0),
	})

	years, err := db.AvailableYears(ctx)
	if err != nil {
		t.Fatalf("AvailableYears: %v", err)
	}
	want := []int{2017, 2016, 2015}
	if len(years) != len(want) {
		t.Fatalf("Got %v, want %v", years, want)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Errorf("years[%d] = %d, want %d", i, years[i], want[i])
		}
	}
}

func TestProfitLossAnalysis(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	mustInsertOrders(t, db, []OrderRecord{
		testOrder("US-2017-0001", 2017, 1, 100.0, 60.0),
		testOrder("US-2017-0002", 2017, 2, 100.0, -40.0),
	})

	summary, err := db.ProfitLossAnalysis(ctx)
	if err != nil {
		t.Fatalf("ProfitLossAnalysis: %v", err)
	}
	if !almostEqual(summary.TotalGrossProfit, 60.0) {
		t.Errorf("TotalGrossProfit = %v, want 60.0", summary.TotalGrossProfit)
	}
	if !almostEqual(summary.TotalLostMoney, 40.0) {
		t.Errorf("TotalLostMoney = %v, want 40.0", summary.TotalLostMoney)
	}
	if !almostEqual(summary.ProfitPct, 60.0) {
		t.Errorf("ProfitPct = %v, want 60.0", summary.ProfitPct)
	}
	if !almostEqual(summary.LossPct, 40.0) {
		t.Errorf("LossPct = %v, want 40.0", summary.LossPct)
	}
}

func TestProfitLossAnalysisDegenerate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// All-zero profit: both sides zero, no division error.
	mustInsertOrders(t, db, []OrderRecord{
		testOrder("US-2017-0001", 2017, 1, 100.0, 0.0),
	})

	summary, err := db.ProfitLossAnalysis(ctx)
	if err != nil {
		t.Fatalf("ProfitLossAnalysis: %v", err)
	}
	if summary.TotalGrossProfit != 0 || summary.TotalLostMoney != 0 || summary.ProfitPct != 0 || summary.LossPct != 0 {
		t.Errorf("Expected all zeros, got %+v", summary)
	}
}

func TestTopLossProductsDenominatorBeforeTruncation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Seven loss-making products with losses 70..10. Total loss is 280;
	// the five returned shares must be computed against all seven.
	orders := make([]OrderRecord, 0, 7)
	for i := 0; i < 7; i++ {
		o := testOrder(fmt.Sprintf("US-2017-%04d", i), 2017, 1, 100.0, float64(-10*(7-i)))
		o.ProductName = fmt.Sprintf("Product %c", 'A'+i)
		orders = append(orders, o)
	}
	mustInsertOrders(t, db, orders)

	products, err := db.TopLossProducts(ctx)
	if err != nil {
		t.Fatalf("TopLossProducts: %v", err)
	}
	if len(products) != 5 {
		t.Fatalf("Got %d products, want 5", len(products))
	}

	if products[0].ProductName != "Product A" || !almostEqual(products[0].Amount, 70.0) {
		t.Errorf("Top loss = %+v, want Product A at 70.0", products[0])
	}
	// 70/280 = 25%
	if !almostEqual(products[0].Percentage, 25.0) {
		t.Errorf("Top loss share = %v, want 25.0", products[0].Percentage)
	}

	var sum float64
	for _, p := range products {
		sum += p.Percentage
	}
	// 70+60+50+40+30 of 280 = 89.29%: shares must not renormalize to 100.
	if sum > 99.0 {
		t.Errorf("Share sum = %v, want < 99 (denominator before truncation)", sum)
	}
}

func TestTopProfitProductsExcludesLossMakers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	winner := testOrder("US-2017-0001", 2017, 1, 100.0, 80.0)
	winner.ProductName = "Winner"
	alsoWinner := testOrder("US-2017-0002", 2017, 2, 100.0, 20.0)
	alsoWinner.ProductName = "Runner Up"
	loser := testOrder("US-2017-0003", 2017, 3, 100.0, -50.0)
	loser.ProductName = "Loser"
	mustInsertOrders(t, db, []OrderRecord{winner, alsoWinner, loser})

	products, err := db.TopProfitProducts(ctx)
	if err != nil {
		t.Fatalf("TopProfitProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("Got %d products, want 2", len(products))
	}
	if products[0].ProductName != "Winner" || !almostEqual(products[0].Percentage, 80.0) {
		t.Errorf("Top profit = %+v, want Winner at 80%%", products[0])
	}
	for _, p := range products {
		if p.ProductName == "Loser" {
			t.Error("Loss-making product appeared in profit ranking")
		}
	}
}

func TestTopLossProductsEmptyDataset(t *testing.T) {
	db := setupTestDB(t)

	products, err := db.TopLossProducts(context.Background())
	if err != nil {
		t.Fatalf("TopLossProducts: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("Got %d products on empty dataset, want 0", len(products))
	}
}
