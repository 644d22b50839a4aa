// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// ProductCategory groups products for listing.
type ProductCategory struct {
	ID           int64  `json:"id" yaml:"id" bson:"_id"`
	CategoryName string `json:"category_name" yaml:"category_name" bson:"category_name"`
}

// Product is a catalog entry. It always belongs to exactly one category.
type Product struct {
	ID           int64     `json:"id" yaml:"id" bson:"_id"`
	SKU          string    `json:"sku" yaml:"sku" bson:"sku"`
	Name         string    `json:"name" yaml:"name" bson:"name"`
	Description  string    `json:"description" yaml:"description" bson:"description"`
	UnitPrice    float64   `json:"unit_price" yaml:"unit_price" bson:"unit_price"`
	ImageURL     string    `json:"image_url" yaml:"image_url" bson:"image_url"`
	Active       bool      `json:"active" yaml:"active" bson:"active"`
	UnitsInStock int       `json:"units_in_stock" yaml:"units_in_stock" bson:"units_in_stock"`
	CategoryID   int64     `json:"category_id" yaml:"category_id" bson:"category_id"`
	DateCreated  time.Time `json:"date_created" yaml:"date_created" bson:"date_created"`
	LastUpdated  time.Time `json:"last_updated" yaml:"last_updated" bson:"last_updated"`
}

// Country is a shipping destination; Code is the ISO 3166-1 alpha-2 code.
type Country struct {
	ID   int64  `json:"id" yaml:"id" bson:"_id"`
	Code string `json:"code" yaml:"code" bson:"code"`
	Name string `json:"name" yaml:"name" bson:"name"`
}

// State is a region inside a Country.
type State struct {
	ID        int64  `json:"id" yaml:"id" bson:"_id"`
	Name      string `json:"name" yaml:"name" bson:"name"`
	CountryID int64  `json:"country_id" yaml:"country_id" bson:"country_id"`
}
