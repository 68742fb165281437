package entity

// Table is a grid of cells detected by the layout analyzer. Row 0 is the
// header; missing cells are empty strings.
type Table [][]string

// ExtractionInput is the layout analyzer output for one document.
type ExtractionInput struct {
	SourceFile   string  `json:"source_file"`
	Text         string  `json:"text"`
	Tables       []Table `json:"tables,omitempty"`
	ShipToRegion string  `json:"ship_to_region,omitempty"` // text cropped below a "Ship To" label
	AttnRegion   string  `json:"attn_region,omitempty"`    // text cropped from an "ATTN:" label
}
