package domain

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Color struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       Money
	Category    string
	SubCategory string
	Colors      []Color
	Sizes       []string
	Tags        []string

	CreatedAt time.Time
}

func (p Product) HasColor(name string) bool {
	return slices.ContainsFunc(p.Colors, func(c Color) bool {
		return c.Name == name
	})
}

func (p Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

type ProductSort string

const (
	SortByCreatedAt ProductSort = "createdAt"
	SortByPriceAsc  ProductSort = "price"
	SortByPriceDesc ProductSort = "-price"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category    string
	SubCategory string
	Tag         string
	Color       string
	Size        string
	Search      string
	MinPrice    decimal.NullDecimal
	MaxPrice    decimal.NullDecimal
	SortBy      ProductSort
	Page        int
	PageSize    int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps the row offset of any page within an int32.
	MaxPage = math.MaxInt32/MaxPageSize + 1
)

// Normalize fills in paging defaults and clamps out of range values.
func (f ProductFilter) Normalize() ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	switch f.SortBy {
	case SortByPriceAsc, SortByPriceDesc:
	default:
		f.SortBy = SortByCreatedAt
	}
	return f
}

type ProductPage struct {
	Products    []Product
	Total       int64
	Pages       int
	CurrentPage int
}
