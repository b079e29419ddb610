package entity

// Vehicle is a stocked vehicle as seen by the crush workflow.
// The backing tables are owned by the yard management system.
type Vehicle struct {
	StockNumberID int64   `gorm:"column:stocknumber_id" json:"stocknumber_id"`
	Registration  string  `gorm:"column:regnumber" json:"registration"`
	VStockNo      string  `gorm:"column:vstockno" json:"vstockno"`
	LocationBin   *string `gorm:"column:bin" json:"location_bin"`
}
