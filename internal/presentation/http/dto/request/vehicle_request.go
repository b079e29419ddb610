package request

// VehicleSearchQuery looks a vehicle up by registration or stock number
type VehicleSearchQuery struct {
	Registration string `form:"registration"`
	StockNumber  string `form:"stock_number"`
}

// CrushRequest carries the identifiers copied into the action log
type CrushRequest struct {
	Registration string `json:"registration"`
	VStockNo     string `json:"vstockno"`
}

// LogQuery filters the action log listing
type LogQuery struct {
	Filter    string `form:"filter"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
