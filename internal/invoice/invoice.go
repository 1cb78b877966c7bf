// Package invoice provides the invoice document model used by the business
// workflow. Unlike the resume model there is no interactive editing surface:
// invoices arrive whole, either operator-entered or model-extracted.
package invoice

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Party is one of the four address blocks on an invoice.
type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	PAN       string `json:"pan"`
	State     string `json:"state"`
	StateCode string `json:"stateCode"`
	Phone     string `json:"phone"`
}

// Details is the shipment/payment metadata block.
type Details struct {
	TermsOfPayment  string `json:"termsOfPayment"`
	DueDate         string `json:"dueDate"`
	GrossWeight     string `json:"grossWeight"`
	VolumeTotal     string `json:"volumeTotal"`
	NetWeight       string `json:"netWeight"`
	Currency        string `json:"currency"`
	StorageLoc      string `json:"storageLoc"`
	LogSheetNo      string `json:"logSheetNo"`
	GCRouteNo       string `json:"gcRouteNo"`
	VehicleNo       string `json:"vehicleNo"`
	ModeOfTransport string `json:"modeOfTransport"`
}

// Item is one invoice line.
type Item struct {
	MaterialHSN   string  `json:"materialHsn"`
	Description   string  `json:"description"`
	Qty           float64 `json:"qty"`
	Packs         string  `json:"packs"`
	Volume        string  `json:"volume"`
	Rate          float64 `json:"rate"`
	Value         float64 `json:"value"`
	Disc1         float64 `json:"disc1"`
	Disc2         float64 `json:"disc2"`
	CashDisc      float64 `json:"cashDisc"`
	TaxableAmount float64 `json:"taxableAmount"`
	TaxAmount     float64 `json:"taxAmount"`
	TotalAmount   float64 `json:"totalAmount"`
}

// Summary is the aggregate totals block exactly as printed on the document.
// The totals are expected to equal the column-wise sums of the line items,
// but that is never verified: the values are operator-entered or
// model-extracted and trusted as-is.
type Summary struct {
	ValueSale           float64 `json:"valueSale"`
	InBillDisc          float64 `json:"inBillDisc"`
	FastCashDisc        float64 `json:"fastCashDisc"`
	TaxableAmount       float64 `json:"taxableAmount"`
	CentralGST          float64 `json:"centralGst"`
	StateGST            float64 `json:"stateGst"`
	CommercialRounding  float64 `json:"commercialRounding"`
	TotalDocumentAmount float64 `json:"totalDocumentAmount"`
}

// Content is the invoice payload persisted as the document body.
type Content struct {
	DocumentType        string  `json:"documentType"`
	DocumentCopy        string  `json:"documentCopy"`
	ReverseCharge       string  `json:"reverseCharge"`
	SupplyingLocation   Party   `json:"supplyingLocation"`
	InvoiceNo           string  `json:"invoiceNo"`
	InvoiceDate         string  `json:"invoiceDate"`
	Category            string  `json:"category"`
	TransactionType     string  `json:"transactionType"`
	OrderNo             string  `json:"orderNo"`
	OrderDate           string  `json:"orderDate"`
	Delivery            string  `json:"delivery"`
	DelDate             string  `json:"delDate"`
	IntRefNo            string  `json:"intRefNo"`
	Reference           string  `json:"reference"`
	Seller              Party   `json:"seller"`
	BillToParty         Party   `json:"billToParty"`
	ShipToParty         Party   `json:"shipToParty"`
	Details             Details `json:"details"`
	Items               []Item  `json:"items"`
	Summary             Summary `json:"summary"`
	TotalInWords        string  `json:"totalInWords"`
	IRN                 string  `json:"irn"`
	AcknowledgementNo   string  `json:"acknowledgementNo"`
	AcknowledgementDate string  `json:"acknowledgementDate"`
}

// Document is one user's invoice record.
type Document struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"-"`
	Content
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize replaces a nil item list with an empty one so the encoded
// document always carries explicit empty values.
func (d *Document) Normalize() {
	if d.Items == nil {
		d.Items = []Item{}
	}
}

// Filename derives an export filename from the invoice number, falling back
// to a default when absent. Path separators and spaces are replaced so the
// result is safe for a Content-Disposition header.
func (d *Document) Filename() string {
	base := strings.TrimSpace(d.InvoiceNo)
	if base == "" {
		return "invoice.pdf"
	}
	return sanitizeBase(base) + ".pdf"
}

func sanitizeBase(s string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", " ", "_", "\"", "", ";", "")
	return replacer.Replace(s)
}
