package db

import "time"

// AboutContent 是关于页的内容记录，is_active=true 的那一行为当前展示版本。
type AboutContent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PageTitle       *string    `gorm:"size:200" json:"page_title"`
	HeroTitle       *string    `gorm:"size:200" json:"hero_title"`
	HeroSubtitle    *string    `gorm:"size:500" json:"hero_subtitle"`
	CompanyStory    *string    `gorm:"type:text" json:"company_story"`
	Mission         *string    `gorm:"type:text" json:"mission"`
	Vision          *string    `gorm:"type:text" json:"vision"`
	Values          StringList `gorm:"type:text" json:"values"`
	TeamDescription *string    `gorm:"type:text" json:"team_description"`
	IsActive        bool       `gorm:"index;default:false" json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CreatedBy       *string    `gorm:"size:64" json:"created_by"`
}

// TableName 与托管数据库中的表名保持一致。
func (AboutContent) TableName() string {
	return "about_content"
}

// RecordID 返回主键。
func (a AboutContent) RecordID() uint {
	return a.ID
}
