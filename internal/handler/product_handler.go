package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/internal/catalog"
)

// SearchProducts 按 search 参数过滤商品；参数为空或带 clear 时返回完整列表并标记 cleared。
func (a *API) SearchProducts(c *gin.Context) {
	var (
		products []catalog.Product
		cleared  bool
	)

	box := a.products.NewSearchBox(
		func(items []catalog.Product) {
			products = items
		},
		func() {
			cleared = true
			products = a.products.Products()
		},
	)

	if _, ok := c.GetQuery("clear"); ok {
		box.Clear()
	} else {
		box.Type(c.Query("search"))
	}

	state := "results"
	switch {
	case cleared:
		state = "cleared"
	case len(products) == 0:
		state = "empty"
	}
	a.metrics.ObserveSearch(state)

	c.JSON(http.StatusOK, gin.H{
		"query":    box.Query(),
		"cleared":  cleared,
		"products": products,
		"count":    len(products),
	})
}
