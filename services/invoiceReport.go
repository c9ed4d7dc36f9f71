package services

import (
	"ClinicHub/models"
	"ClinicHub/util"
	"context"
	"sort"
	"time"
)

const monthlyRevenueWindow = 12

type InvoiceReportService struct {
	invoices InvoiceRepository
	now      func() time.Time
}

func NewInvoiceReportService(invoices InvoiceRepository) *InvoiceReportService {
	return &InvoiceReportService{invoices: invoices, now: systemClock}
}

// GetStats reports counts, revenue and the monthly paid revenue series.
func (s *InvoiceReportService) GetStats(ctx context.Context) (*models.InvoiceStats, error) {
	agg, err := s.invoices.Aggregate(ctx, s.now())
	if err != nil {
		return nil, util.InfrastructureError(err)
	}
	stats := BuildInvoiceStats(agg)
	return &stats, nil
}

/*
* Total is the sum of every status bucket
* Revenue and average only count paid invoices, average is 0 with none paid
* Monthly series is newest first and capped at twelve buckets
 */
func BuildInvoiceStats(agg *models.InvoiceAggregate) models.InvoiceStats {
	stats := models.InvoiceStats{MonthlyRevenue: []models.MonthlyRevenue{}}
	if agg == nil {
		return stats
	}
	for _, count := range agg.StatusCounts {
		stats.TotalInvoices += count
	}
	stats.PaidInvoices = agg.StatusCounts[models.InvoicePaid]
	stats.PendingInvoices = agg.StatusCounts[models.InvoicePending]
	stats.CancelledInvoices = agg.StatusCounts[models.InvoiceCancelled]
	stats.OverdueInvoices = agg.Overdue

	if stats.PaidInvoices > 0 {
		stats.TotalRevenue = agg.Revenue
		stats.AverageInvoice = agg.Revenue / float64(stats.PaidInvoices)
	}

	monthly := append([]models.MonthlyRevenue(nil), agg.MonthlyRevenue...)
	sort.SliceStable(monthly, func(i, j int) bool {
		if monthly[i].Year != monthly[j].Year {
			return monthly[i].Year > monthly[j].Year
		}
		return monthly[i].Month > monthly[j].Month
	})
	if len(monthly) > monthlyRevenueWindow {
		monthly = monthly[:monthlyRevenueWindow]
	}
	if len(monthly) > 0 {
		stats.MonthlyRevenue = monthly
	}
	return stats
}
