package model

// ReportType is a lookup row with a free-text label.
type ReportType struct {
	ReportTypeID uint    `json:"report_type_id" gorm:"column:report_type_id;primaryKey;autoIncrement"`
	ReportType   *string `json:"report_type" gorm:"column:report_type;type:text"`
}

func (ReportType) TableName() string {
	return "report_type"
}
