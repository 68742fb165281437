package entity

import "github.com/joseph-ayodele/po-reader/constants"

// ExtractedRecord is the structured purchase order produced for one document.
// Unresolved string fields hold constants.Unknown; numbers default to zero.
type ExtractedRecord struct {
	SourceFile      string     `json:"source_file"`
	Customer        string     `json:"customer"`
	CustomerAddress string     `json:"customer_address"`
	DeliveryAddress string     `json:"delivery_address"`
	CustomerEmail   string     `json:"customer_email"`
	PONumber        string     `json:"po_number"`
	OrderDate       string     `json:"order_date"`
	DeliveryDate    string     `json:"delivery_date"`
	OrderedBy       string     `json:"ordered_by"`
	InvoiceAmount   float64    `json:"invoice_amount"`
	Items           []LineItem `json:"items"`
}

// LineItem is one ordered product.
type LineItem struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Price       float64 `json:"price"`
}

// NewUnknownRecord returns a record with every field at its sentinel value.
func NewUnknownRecord(sourceFile string) ExtractedRecord {
	return ExtractedRecord{
		SourceFile:      sourceFile,
		Customer:        constants.Unknown,
		CustomerAddress: constants.Unknown,
		DeliveryAddress: constants.Unknown,
		CustomerEmail:   constants.Unknown,
		PONumber:        constants.Unknown,
		OrderDate:       constants.Unknown,
		DeliveryDate:    constants.Unknown,
		OrderedBy:       constants.Unknown,
		InvoiceAmount:   0,
		Items:           []LineItem{},
	}
}
