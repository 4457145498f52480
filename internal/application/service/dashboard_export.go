package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/tailorshop-api/internal/domain/entity"
	"github.com/sangkips/tailorshop-api/internal/domain/ledger"
	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

// report is the data shared by the CSV and workbook exports.
type report struct {
	overview *Overview
	expenses []entity.Expense
}

func (s *DashboardService) report(ctx context.Context, rng repository.DateRange) (*report, error) {
	overview, err := s.GetOverview(ctx, rng)
	if err != nil {
		return nil, err
	}
	expenses, err := s.auditLog(ctx, rng)
	if err != nil {
		return nil, err
	}
	return &report{overview: overview, expenses: expenses}, nil
}

func (r *report) kpiRows() [][]string {
	k := r.overview.KPIs
	return [][]string{
		{"Metric", "Value"},
		{"Total Revenue", decimal(k.TotalRevenue)},
		{"Total Expenses", decimal(k.TotalExpenses)},
		{"Net Profit", decimal(k.NetProfit)},
		{"Total Orders", strconv.FormatInt(k.TotalOrders, 10)},
		{"Active Orders", strconv.FormatInt(k.ActiveOrders, 10)},
		{"Completed Orders", strconv.FormatInt(k.CompletedOrders, 10)},
		{"Average Order Value", decimal(k.AverageOrderValue)},
		{"Profit Margin %", strconv.FormatFloat(r.overview.Insights.ProfitMargin, 'f', 1, 64)},
	}
}

func (r *report) productRows() [][]string {
	rows := [][]string{{"Product", "Count", "Revenue"}}
	for _, p := range r.overview.ProductMix {
		rows = append(rows, []string{p.Garment, strconv.FormatInt(p.Count, 10), decimal(p.Revenue)})
	}
	return rows
}

func (r *report) rankingRows() [][]string {
	rows := [][]string{{"Rank", "Shop", "Revenue", "Profit"}}
	for i, shop := range r.overview.Rankings {
		rows = append(rows, []string{strconv.Itoa(i + 1), shop.ShopName, decimal(shop.Revenue), decimal(shop.Profit)})
	}
	return rows
}

func (r *report) expenseRows() [][]string {
	rows := [][]string{{"Date", "Shop", "Category", "Amount", "Recorded By", "Details"}}
	for _, e := range r.expenses {
		shop, recorder := "", ""
		if e.Shop != nil {
			shop = e.Shop.Name
		}
		if e.Recorder != nil {
			recorder = e.Recorder.FullName
		}
		details := e.ItemName
		if e.Notes != "" {
			details += ": " + e.Notes
		}
		rows = append(rows, []string{
			e.IncurredAt.Format("2006-01-02"),
			shop,
			string(e.Category),
			decimal(e.Amount),
			recorder,
			details,
		})
	}
	return rows
}

func (r *report) period() string {
	from, to := "start", "today"
	if r.overview.From != nil {
		from = r.overview.From.Format("2006-01-02")
	}
	if r.overview.To != nil {
		to = r.overview.To.Format("2006-01-02")
	}
	return from + " to " + to
}

// ExportCSV writes the financial overview as a sectioned CSV report
func (s *DashboardService) ExportCSV(ctx context.Context, rng repository.DateRange, w io.Writer) error {
	r, err := s.report(ctx, rng)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	section := func(title string, rows [][]string) {
		_ = cw.Write([]string{title})
		_ = cw.WriteAll(rows)
		_ = cw.Write(nil)
	}

	_ = cw.Write([]string{"FINANCIAL OVERVIEW REPORT"})
	_ = cw.Write([]string{"Period", r.period()})
	_ = cw.Write([]string{"Generated", time.Now().Format(time.RFC3339)})
	_ = cw.Write(nil)

	section("KEY PERFORMANCE INDICATORS", r.kpiRows())
	section("TOP PRODUCTS BY REVENUE", r.productRows())
	section("LIVE SHOP RANKING", r.rankingRows())
	section("EXPENSE AUDIT LOG", r.expenseRows())

	cw.Flush()
	return cw.Error()
}

// ExportXLSX builds the same report as a workbook with one sheet per section
func (s *DashboardService) ExportXLSX(ctx context.Context, rng repository.DateRange) (*bytes.Buffer, error) {
	r, err := s.report(ctx, rng)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2E8F0"}},
	})
	if err != nil {
		return nil, err
	}

	sheets := []struct {
		name string
		rows [][]string
	}{
		{"KPIs", r.kpiRows()},
		{"Top Products", r.productRows()},
		{"Shop Ranking", r.rankingRows()},
		{"Expense Audit Log", r.expenseRows()},
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, err
		}
		if err := writeSheet(f, sh.name, sh.rows, header); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sh.name, err)
		}
	}
	f.SetActiveSheet(0)

	return f.WriteToBuffer()
}

func writeSheet(f *excelize.File, sheet string, rows [][]string, headerStyle int) error {
	width := 0
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		if len(row) > width {
			width = len(row)
		}
	}
	if len(rows) == 0 || width == 0 {
		return nil
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 20)
}

// cellValue stores numeric strings as numbers so spreadsheets can sum them.
func cellValue(v string) interface{} {
	if v == "" || strings.Trim(v, "0123456789.-") != "" {
		return v
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	return v
}

// decimal renders an amount with two decimals and no grouping.
func decimal(a ledger.Amount) string {
	return strconv.FormatFloat(a.Float(), 'f', 2, 64)
}
