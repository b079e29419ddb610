package entity

import "time"

// Actions recorded by the crush workflow
const (
	ActionSearch = "SEARCH"
	ActionCrush  = "CRUSH"
)

// Statuses recorded by the crush workflow
const (
	ActionStatusFound   = "FOUND"
	ActionStatusMissing = "NOT FOUND"
	ActionStatusCrushed = "CRUSHED SUCCESSFULLY"
)

// ActionLog is one audit entry of the crush workflow
type ActionLog struct {
	Timestamp   time.Time `gorm:"column:timestamp" json:"timestamp"`
	Action      string    `gorm:"column:action" json:"action"`
	Username    string    `gorm:"column:username" json:"username"`
	RegNumber   *string   `gorm:"column:regnumber" json:"registration,omitempty"`
	StockNumber *string   `gorm:"column:stocknumber" json:"stock_number,omitempty"`
	VStockNo    *string   `gorm:"column:vstockno" json:"vstockno,omitempty"`
	Location    *string   `gorm:"column:location" json:"location,omitempty"`
	Status      string    `gorm:"column:status" json:"status"`
}

// TableName returns the table name for the ActionLog model
func (ActionLog) TableName() string {
	return "public.hpd3281"
}
