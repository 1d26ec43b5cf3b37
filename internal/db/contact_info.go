package db

import "time"

// ContactInfo 用于保存前台展示的联系方式
// 与 AboutContent 一样只有一行 is_active=true
type ContactInfo struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         *string   `gorm:"size:255" json:"email"`
	Phone         *string   `gorm:"size:50" json:"phone"`
	WhatsApp      *string   `gorm:"column:whatsapp;size:50" json:"whatsapp"`
	Address       *string   `gorm:"size:500" json:"address"`
	BusinessHours *string   `gorm:"size:255" json:"business_hours"`
	MapURL        *string   `gorm:"size:500" json:"map_url"`
	FacebookURL   *string   `gorm:"size:255" json:"facebook_url"`
	InstagramURL  *string   `gorm:"size:255" json:"instagram_url"`
	TwitterURL    *string   `gorm:"size:255" json:"twitter_url"`
	IsActive      bool      `gorm:"index;default:false" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CreatedBy     *string   `gorm:"size:64" json:"created_by"`
}

// TableName 返回自定义表名
func (ContactInfo) TableName() string {
	return "contact_info"
}

func (c ContactInfo) RecordID() uint {
	return c.ID
}
