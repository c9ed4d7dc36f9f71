package util

const (
	InvoiceCollection    = "invoices"
	SampleTypeCollection = "sample_types"
	PatientCollection    = "patients"
)

const (
	INTERNAL_SERVER_ERROR      = "internal server error"
	INVALID_REQUEST_BODY       = "invalid request body"
	INVALID_QUERY_PARAMS       = "invalid query parameters"
	INVALID_ID                 = "invalid id"
	VALIDATION_FAILED          = "validation failed"
	INVOICE_NOT_FOUND          = "invoice not found"
	INVOICE_ALREADY_EXISTS     = "invoice already exists"
	SAMPLE_TYPE_NOT_FOUND      = "sample type not found"
	SAMPLE_TYPE_ALREADY_EXISTS = "sample type with this name or code already exists"
	NOTHING_TO_UPDATE          = "no fields provided to update"
	INVALID_DATE_RANGE         = "start date must not be after end date"
	INVOICE_DELETED            = "invoice deleted successfully"
	SAMPLE_TYPE_DELETED        = "sample type deleted successfully"
	STORE_UNAVAILABLE          = "store unavailable"
)
