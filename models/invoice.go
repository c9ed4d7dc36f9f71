package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

var InvoiceStatuses = []InvoiceStatus{InvoicePending, InvoicePaid, InvoiceCancelled}

func (s InvoiceStatus) Valid() bool {
	for _, v := range InvoiceStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type LineItem struct {
	Description string  `json:"description" bson:"description"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price"`
	Amount      float64 `json:"amount" bson:"amount"`
}

type Invoice struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Patient     primitive.ObjectID `json:"patient" bson:"patient"`
	Items       []LineItem         `json:"items" bson:"items"`
	TotalAmount float64            `json:"total_amount" bson:"total_amount"`
	Status      InvoiceStatus      `json:"status" bson:"status"`
	DueDate     time.Time          `json:"due_date" bson:"due_date"`
	PaymentDate *time.Time         `json:"payment_date,omitempty" bson:"payment_date,omitempty"`
	Notes       string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`

	PatientInfo *PatientSummary `json:"patient_info,omitempty" bson:"-"`
}

// IsOverdue reports whether the invoice is still pending past its due date.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.Status == InvoicePending && i.DueDate.Before(now)
}

// InvoiceFilter is the set of recognised list filters. Nil fields are ignored.
type InvoiceFilter struct {
	Status    *InvoiceStatus
	PatientID *primitive.ObjectID
	DateRange *DateRange
}

// DateRange matches created_at inclusively on both ends. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// InvoiceUpdate is a partial update. Only non-nil fields are written;
// ClearPaymentDate removes payment_date.
type InvoiceUpdate struct {
	Patient          *primitive.ObjectID
	Items            *[]LineItem
	TotalAmount      *float64
	Status           *InvoiceStatus
	DueDate          *time.Time
	PaymentDate      *time.Time
	ClearPaymentDate bool
	Notes            *string
	UpdatedAt        time.Time
}

type MonthlyRevenue struct {
	Year    int     `json:"year" bson:"year"`
	Month   int     `json:"month" bson:"month"`
	Revenue float64 `json:"revenue" bson:"revenue"`
	Count   int64   `json:"count" bson:"count"`
}

// InvoiceAggregate is the raw result of the reporting aggregation.
type InvoiceAggregate struct {
	StatusCounts   map[InvoiceStatus]int64
	Overdue        int64
	Revenue        float64
	MonthlyRevenue []MonthlyRevenue
}

type InvoiceStats struct {
	TotalInvoices     int64            `json:"totalInvoices"`
	PaidInvoices      int64            `json:"paidInvoices"`
	PendingInvoices   int64            `json:"pendingInvoices"`
	CancelledInvoices int64            `json:"cancelledInvoices"`
	OverdueInvoices   int64            `json:"overdueInvoices"`
	TotalRevenue      float64          `json:"totalRevenue"`
	AverageInvoice    float64          `json:"averageInvoice"`
	MonthlyRevenue    []MonthlyRevenue `json:"monthlyRevenue"`
}
