package request

// PartsSearchQuery selects the vehicle and thresholds of a parts search
type PartsSearchQuery struct {
	Model             string   `form:"model" binding:"required"`
	Year              int      `form:"year" binding:"required"`
	EngineCode        string   `form:"engine_code"`
	MinPrice          string   `form:"min_price"`
	MinOpportunity    *float64 `form:"min_opportunity"`
	ExcludeMajorUnits bool     `form:"exclude_major_units"`
}

// ModelQuery is the autocomplete prefix typed so far
type ModelQuery struct {
	Query string `form:"query"`
}
