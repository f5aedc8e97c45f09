package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var productsYAML []byte

// Attributes describe the visual appearance of a product's material.
type Attributes struct {
	Color   string `yaml:"color"`
	Texture string `yaml:"texture"`
	Finish  string `yaml:"finish"`
	Look    string `yaml:"look"`
}

// Product is one catalog entry. Editable is false for hardware items,
// which are listed but never visually applied to a photo.
type Product struct {
	ID         int        `yaml:"id"`
	Name       string     `yaml:"name"`
	Category   string     `yaml:"category"`
	Region     string     `yaml:"region"`
	Editable   bool       `yaml:"editable"`
	Attributes Attributes `yaml:"attributes"`
}

// Option is a single entry in the client-facing product picker.
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Registry is the immutable product table. Build it once with Load and
// share it across requests; it exposes read operations only.
type Registry struct {
	products map[int]Product
}

type catalogFile struct {
	Products []Product `yaml:"products"`
}

func Load() (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(productsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	products := make(map[int]Product, len(file.Products))
	for _, p := range file.Products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("catalog product %q: id must be positive", p.Name)
		}
		if _, ok := products[p.ID]; ok {
			return nil, fmt.Errorf("catalog product id %d is duplicated", p.ID)
		}
		if p.Region == "" {
			if ui, ok := UICategory(p.Category); ok {
				p.Region = ui
			}
		}
		products[p.ID] = p
	}

	return &Registry{products: products}, nil
}

// Product looks up a catalog entry by id.
func (r *Registry) Product(id int) (Product, bool) {
	p, ok := r.products[id]
	return p, ok
}

func (r *Registry) Len() int {
	return len(r.products)
}

// Options groups the catalog by UI category for client-side pickers,
// sorted case-insensitively by name. Products whose category does not
// map to a known UI bucket are omitted.
func (r *Registry) Options() map[string][]Option {
	options := make(map[string][]Option, len(UICategories))
	for _, ui := range UICategories {
		options[ui] = []Option{}
	}

	for id, p := range r.products {
		ui, ok := UICategory(p.Category)
		if !ok {
			continue
		}
		options[ui] = append(options[ui], Option{ID: id, Name: p.Name})
	}

	for ui := range options {
		opts := options[ui]
		sort.Slice(opts, func(i, j int) bool {
			return strings.ToLower(opts[i].Name) < strings.ToLower(opts[j].Name)
		})
	}

	return options
}
