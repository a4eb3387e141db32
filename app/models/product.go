package models

// Product is one row of the spreadsheet feed after normalisation.
// The catalog is replaced wholesale on every feed load, so a Product is
// immutable once it leaves the parser.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}
