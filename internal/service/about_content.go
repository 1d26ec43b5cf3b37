package service

import (
	"time"

	"github.com/storefront/internal/db"
	"github.com/storefront/internal/notify"
	"github.com/storefront/internal/store"
)

const aboutContentTable = "about_content"

var aboutContentFields = fieldSpec{
	"page_title":       fieldText,
	"hero_title":       fieldText,
	"hero_subtitle":    fieldText,
	"company_story":    fieldText,
	"mission":          fieldText,
	"vision":           fieldText,
	"values":           fieldList,
	"team_description": fieldText,
}

// AboutContentService owns the cached active About page record.
// Updates insert a fresh active row when none exists yet.
type AboutContentService struct {
	*Resource[db.AboutContent]
}

// NewAboutContentService returns a service backed by s. A nil notifier logs messages.
func NewAboutContentService(s store.Store, n notify.Notifier) *AboutContentService {
	writer := upsertWriter[db.AboutContent]{table: aboutContentTable, now: time.Now}
	return &AboutContentService{
		Resource: newResource[db.AboutContent](aboutContentTable, s, writer, aboutContentFields, n, Messages{
			Saved:  "关于页面已更新",
			Failed: "保存关于页面失败，请稍后重试",
		}),
	}
}

// StoryHTML renders the cached company story as sanitized HTML.
func (s *AboutContentService) StoryHTML() (string, error) {
	record, ok := s.Record()
	if !ok || record.CompanyStory == nil {
		return "", nil
	}
	return RenderMarkdown(*record.CompanyStory)
}
