// Package catalog loads the static product list shown on the storefront.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/storefront/internal/search"
	"gopkg.in/yaml.v3"
)

// ErrInvalidProduct 在商品缺少名称时返回。
var ErrInvalidProduct = errors.New("invalid product")

// Product 描述一个商品，加载后不再修改。
type Product struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Category    string  `yaml:"category" json:"category"`
	Price       float64 `yaml:"price" json:"price"`
	ImageURL    string  `yaml:"image_url" json:"image_url,omitempty"`
	Featured    bool    `yaml:"featured" json:"featured"`
}

// SearchFields 实现 search.Item。
func (p Product) SearchFields() (string, string, string) {
	return p.Name, p.Description, p.Category
}

type document struct {
	Products []Product `yaml:"products"`
}

// Catalog 是只读的商品列表，按文件中的顺序排列。
type Catalog struct {
	products []Product
}

// New 直接以内存中的列表构造 Catalog。
func New(products []Product) *Catalog {
	copied := make([]Product, len(products))
	copy(copied, products)
	return &Catalog{products: copied}
}

// Load 读取 YAML 商品文件。
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(bytes.NewReader(raw))
}

// Parse 解析 YAML 商品列表，空文档得到空目录。
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	for i := range doc.Products {
		p := &doc.Products[i]
		p.Name = strings.TrimSpace(p.Name)
		p.Description = strings.TrimSpace(p.Description)
		p.Category = strings.TrimSpace(p.Category)
		if p.Name == "" {
			return nil, fmt.Errorf("%w: product #%d has no name", ErrInvalidProduct, i+1)
		}
	}

	return &Catalog{products: doc.Products}, nil
}

// Products 返回商品列表的副本。
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len 返回商品数量。
func (c *Catalog) Len() int {
	return len(c.products)
}

// NewSearchBox 返回绑定到本目录的搜索框。
func (c *Catalog) NewSearchBox(onResults func([]Product), onClear func()) *search.Box[Product] {
	return search.NewBox(c.products, onResults, onClear)
}
