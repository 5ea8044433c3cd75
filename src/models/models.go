package models

// ExchangeItem is one line of the session's exchange ledger: a product to be
// returned to its supplier, fully resolved against the catalog.
type ExchangeItem struct {
	Barcode      string `json:"barcode"`       // normalized EAN, exactly 14 digits
	SupplierCode string `json:"supplier_code"` // supplier's internal reference, may be empty
	Description  string `json:"description"`
	SupplierName string `json:"supplier_name"`
	Quantity     int    `json:"quantity"`
}

// BatchRow is one raw (barcode, quantity) pair read from an uploaded batch
// file, before any validation.
type BatchRow struct {
	Barcode  string `json:"barcode"`
	Quantity string `json:"quantity"`
}

// CoalescedRow is a batch row after duplicate barcodes have been merged.
// Quantity stays textual so that non-numeric input is still reported by
// validation rather than dropped during coalescing.
type CoalescedRow struct {
	Barcode  string `json:"barcode"`
	Quantity string `json:"quantity"`
}

// BatchFailure records why one batch row could not be turned into a ledger
// entry. It carries the raw barcode as uploaded, not the normalized one.
type BatchFailure struct {
	Barcode string `json:"barcode"`
	Reason  string `json:"reason"`
}

// BatchReport is the outcome of one batch run. Successes are merged into the
// ledger by the caller; failures are returned to the operator as-is.
type BatchReport struct {
	Successes []ExchangeItem `json:"successes"`
	Failures  []BatchFailure `json:"failures"`
}

// FormMetadata is the operator-supplied trailer of the printed exchange form.
type FormMetadata struct {
	BoxNumber   string `json:"box_number"`
	Responsible string `json:"responsible"`
}
