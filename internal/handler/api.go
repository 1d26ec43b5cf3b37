package handler

import (
	"context"

	"github.com/storefront/internal/catalog"
	"github.com/storefront/internal/metrics"
	"github.com/storefront/internal/notify"
	"github.com/storefront/internal/service"
	"github.com/storefront/internal/store"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	about    *service.AboutContentService
	contact  *service.ContactInfoService
	products *catalog.Catalog
	metrics  *metrics.Registry
}

// NewAPI constructs a handler set. s is the store the content services read
// and write; gdb is only used for login lookups.
func NewAPI(gdb *gorm.DB, s store.Store, products *catalog.Catalog, reg *metrics.Registry) *API {
	notifier := notify.Multi{notify.LogNotifier{}, notify.ContextNotifier{}}
	if products == nil {
		products = catalog.New(nil)
	}

	return &API{
		db:       gdb,
		about:    service.NewAboutContentService(s, notifier),
		contact:  service.NewContactInfoService(s, notifier),
		products: products,
		metrics:  reg,
	}
}

// Attach performs the initial load of both content records.
func (a *API) Attach(ctx context.Context) {
	a.about.Attach(ctx)
	a.contact.Attach(ctx)
}
