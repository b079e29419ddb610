package entity

import "github.com/shopspring/decimal"

// CatalogPart is one row of the fleet parts catalog: a part fitted to a model
// over an interchange year range, with its demand and stock figures.
type CatalogPart struct {
	Model         string          `json:"model"`
	Part          string          `json:"part"`
	ICStartYear   int             `json:"ic_start_year"`
	ICEndYear     int             `json:"ic_end_year"`
	ICDescription string          `json:"ic_description"`
	BPrice        decimal.Decimal `json:"b_price"`
	InStock       int64           `json:"parts_in_stock"`
	Backorders    int64           `json:"backorders"`
	SoldAll       int64           `json:"parts_sold_all"`
	NotFound180   int64           `json:"not_found_180_days"`
}

// Fits reports whether the part's interchange range covers year
func (p *CatalogPart) Fits(year int) bool {
	return p.ICStartYear <= year && year <= p.ICEndYear
}
