package service

import (
	"time"

	"github.com/storefront/internal/db"
	"github.com/storefront/internal/notify"
	"github.com/storefront/internal/store"
)

const contactInfoTable = "contact_info"

var contactInfoFields = fieldSpec{
	"email":          fieldText,
	"phone":          fieldText,
	"whatsapp":       fieldText,
	"address":        fieldText,
	"business_hours": fieldText,
	"map_url":        fieldText,
	"facebook_url":   fieldText,
	"instagram_url":  fieldText,
	"twitter_url":    fieldText,
}

// ContactInfoService 负责维护前台展示的联系方式
// 更新要求已登录且已存在激活记录，不会自动创建
type ContactInfoService struct {
	*Resource[db.ContactInfo]
}

// NewContactInfoService 构造 ContactInfoService
func NewContactInfoService(s store.Store, n notify.Notifier) *ContactInfoService {
	writer := guardedWriter[db.ContactInfo]{table: contactInfoTable, now: time.Now}
	return &ContactInfoService{
		Resource: newResource[db.ContactInfo](contactInfoTable, s, writer, contactInfoFields, n, Messages{
			Saved:  "联系信息已更新",
			Failed: "更新联系信息失败，请稍后重试",
		}),
	}
}
