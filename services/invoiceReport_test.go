package services

import (
	"ClinicHub/models"
	"ClinicHub/util"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(repo *fakeInvoiceRepo) *InvoiceReportService {
	s := NewInvoiceReportService(repo)
	s.now = fixedClock(testNow)
	return s
}

func paidAt(t time.Time) *time.Time { return &t }

func TestInvoiceReportService_GetStats(t *testing.T) {
	may := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeInvoiceRepo(
		models.Invoice{Status: models.InvoicePaid, TotalAmount: 100, PaymentDate: paidAt(may)},
		models.Invoice{Status: models.InvoicePaid, TotalAmount: 200, PaymentDate: paidAt(june)},
		models.Invoice{Status: models.InvoicePaid, TotalAmount: 300, PaymentDate: paidAt(june)},
		models.Invoice{Status: models.InvoicePending, TotalAmount: 50, DueDate: testNow.AddDate(0, 0, -1)},
		models.Invoice{Status: models.InvoicePending, TotalAmount: 50, DueDate: testNow.AddDate(0, 0, 1)},
		models.Invoice{Status: models.InvoiceCancelled, TotalAmount: 70},
	)

	stats, err := newTestReportService(repo).GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), stats.TotalInvoices)
	assert.Equal(t, int64(3), stats.PaidInvoices)
	assert.Equal(t, int64(2), stats.PendingInvoices)
	assert.Equal(t, int64(1), stats.CancelledInvoices)
	assert.Equal(t, int64(1), stats.OverdueInvoices)
	assert.Equal(t, 600.0, stats.TotalRevenue)
	assert.Equal(t, 200.0, stats.AverageInvoice)
	assert.Equal(t, []models.MonthlyRevenue{
		{Year: 2024, Month: 6, Revenue: 500, Count: 2},
		{Year: 2024, Month: 5, Revenue: 100, Count: 1},
	}, stats.MonthlyRevenue)
}

func TestInvoiceReportService_GetStats_AfterPayment(t *testing.T) {
	patient := testPatient()
	repo := newFakeInvoiceRepo()
	invoices := newTestInvoiceService(repo, newFakePatientRepo(patient))

	invoice, err := invoices.Create(context.Background(), CreateInvoiceRequest{
		Patient:     patient.ID.Hex(),
		TotalAmount: amount(100),
		DueDate:     "2024-07-01",
	})
	require.NoError(t, err)
	_, err = invoices.MarkPaid(context.Background(), invoice.ID.Hex())
	require.NoError(t, err)

	stats, err := newTestReportService(repo).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalInvoices)
	assert.Equal(t, int64(1), stats.PaidInvoices)
	assert.Zero(t, stats.PendingInvoices)
	assert.Equal(t, 100.0, stats.TotalRevenue)
	assert.Equal(t, 100.0, stats.AverageInvoice)
	assert.Equal(t, []models.MonthlyRevenue{{Year: 2024, Month: 6, Revenue: 100, Count: 1}}, stats.MonthlyRevenue)
}

func TestInvoiceReportService_GetStats_Empty(t *testing.T) {
	stats, err := newTestReportService(newFakeInvoiceRepo()).GetStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalInvoices)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.AverageInvoice)
	assert.NotNil(t, stats.MonthlyRevenue)
	assert.Empty(t, stats.MonthlyRevenue)
}

func TestInvoiceReportService_GetStats_StoreFailure(t *testing.T) {
	repo := newFakeInvoiceRepo()
	repo.err = errors.New("aggregate timed out")

	_, err := newTestReportService(repo).GetStats(context.Background())
	assert.True(t, util.IsKind(err, util.KindInfrastructure))
}

func TestBuildInvoiceStats_NoPaidInvoices(t *testing.T) {
	stats := BuildInvoiceStats(&models.InvoiceAggregate{
		StatusCounts: map[models.InvoiceStatus]int64{models.InvoicePending: 4},
		Overdue:      2,
	})

	assert.Equal(t, int64(4), stats.TotalInvoices)
	assert.Equal(t, int64(2), stats.OverdueInvoices)
	assert.Zero(t, stats.AverageInvoice)
	assert.Zero(t, stats.TotalRevenue)
}

func TestBuildInvoiceStats_MonthlyOrderAndWindow(t *testing.T) {
	var buckets []models.MonthlyRevenue
	for month := 1; month <= 12; month++ {
		buckets = append(buckets, models.MonthlyRevenue{Year: 2023, Month: month, Revenue: float64(month)})
	}
	buckets = append(buckets,
		models.MonthlyRevenue{Year: 2024, Month: 2, Revenue: 20},
		models.MonthlyRevenue{Year: 2024, Month: 1, Revenue: 10},
	)

	stats := BuildInvoiceStats(&models.InvoiceAggregate{
		StatusCounts:   map[models.InvoiceStatus]int64{models.InvoicePaid: 14},
		MonthlyRevenue: buckets,
	})

	require.Len(t, stats.MonthlyRevenue, 12)
	assert.Equal(t, models.MonthlyRevenue{Year: 2024, Month: 2, Revenue: 20}, stats.MonthlyRevenue[0])
	assert.Equal(t, models.MonthlyRevenue{Year: 2024, Month: 1, Revenue: 10}, stats.MonthlyRevenue[1])
	assert.Equal(t, models.MonthlyRevenue{Year: 2023, Month: 3, Revenue: 3}, stats.MonthlyRevenue[11])
}

func TestBuildInvoiceStats_Nil(t *testing.T) {
	stats := BuildInvoiceStats(nil)
	assert.Zero(t, stats.TotalInvoices)
	assert.Empty(t, stats.MonthlyRevenue)
}
