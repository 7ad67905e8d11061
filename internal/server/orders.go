package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the canned carrier data set the demo engine answers from.
type Catalog struct {
	Orders map[string]string `yaml:"orders"`
}

// DefaultCatalog mirrors the original demo data set.
func DefaultCatalog() Catalog {
	return Catalog{Orders: map[string]string{
		"ORD-001": "On Time - In Transit",
		"ORD-002": "Delayed - Weather conditions in Memphis hub",
		"ORD-003": "Delivered",
	}}
}

// LoadCatalog reads a catalog from a YAML file of the form:
//
//	orders:
//	  ORD-001: "On Time - In Transit"
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading order catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing order catalog %s: %w", path, err)
	}
	if len(c.Orders) == 0 {
		return Catalog{}, fmt.Errorf("order catalog %s has no orders", path)
	}
	return c, nil
}

// Status looks up an order's shipping status.
func (c Catalog) Status(orderID string) (string, bool) {
	s, ok := c.Orders[orderID]
	return s, ok
}
