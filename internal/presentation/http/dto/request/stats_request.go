package request

// StatsQuery holds the dashboard query string. Excluded is read separately
// because an empty list must be told apart from an absent one.
type StatsQuery struct {
	Filter    string `form:"filter"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Mode      string `form:"mode"`
	Dimension string `form:"dimension"`
}

// SaveExclusionsRequest is the exclusion form. The view fields are echoed
// back into the redirect.
type SaveExclusionsRequest struct {
	Dimension string   `form:"dimension"`
	Excluded  []string `form:"excluded"`
	Filter    string   `form:"filter"`
	StartDate string   `form:"start_date"`
	EndDate   string   `form:"end_date"`
	Mode      string   `form:"mode"`
}

// DrilldownQuery selects the entity and period of a drill-down chart
type DrilldownQuery struct {
	Entity    string `form:"entity"`
	Year      int    `form:"year"`
	Month     int    `form:"month"`
	Mode      string `form:"mode"`
	Dimension string `form:"dimension"`
}
