package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	page, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	products := make([]ProductResponse, 0, len(page.Products))
	for _, p := range page.Products {
		products = append(products, mapProductToResponse(p))
	}

	writeJSON(w, http.StatusOK, ProductListResponse{
		Products:              products,
		TotalNumberOfProducts: page.Total,
		NumberOfPages:         page.Pages,
		CurrentPage:           page.CurrentPage,
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID("productId", chi.URLParam(r, "productId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	product, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]ProductResponse{"product": mapProductToResponse(product)})
}

func parseProductFilter(r *http.Request) (domain.ProductFilter, error) {
	q := r.URL.Query()
	query := productQuery{
		Category:    q.Get("category"),
		SubCategory: q.Get("subCategory"),
		Tag:         q.Get("tags"),
		Color:       q.Get("color"),
		Size:        q.Get("size"),
		Search:      q.Get("searchBy"),
		MinPrice:    q.Get("minPrice"),
		MaxPrice:    q.Get("maxPrice"),
		SortBy:      q.Get("sortBy"),
		Page:        q.Get("page"),
		PageSize:    q.Get("pageSize"),
	}

	if err := validateStruct(query); err != nil {
		return domain.ProductFilter{}, err
	}

	filter := domain.ProductFilter{
		Category:    query.Category,
		SubCategory: query.SubCategory,
		Tag:         query.Tag,
		Color:       query.Color,
		Size:        query.Size,
		Search:      query.Search,
		SortBy:      domain.ProductSort(query.SortBy),
	}

	var err error
	if filter.MinPrice, err = parseOptionalDecimal("minPrice", query.MinPrice); err != nil {
		return domain.ProductFilter{}, err
	}
	if filter.MaxPrice, err = parseOptionalDecimal("maxPrice", query.MaxPrice); err != nil {
		return domain.ProductFilter{}, err
	}
	if filter.Page, err = parseOptionalInt("page", query.Page); err != nil {
		return domain.ProductFilter{}, err
	}
	if filter.PageSize, err = parseOptionalInt("pageSize", query.PageSize); err != nil {
		return domain.ProductFilter{}, err
	}

	return filter, nil
}

func parseOptionalDecimal(field, raw string) (decimal.NullDecimal, error) {
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("decimal.NewFromString: %w",
			domain.NewValidationError(field, "must be a number"))
	}

	return decimal.NewNullDecimal(d), nil
}

func parseOptionalInt(field, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("strconv.Atoi: %w", domain.NewValidationError(field, "must be a number"))
	}

	return n, nil
}
