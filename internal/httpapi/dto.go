package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"golang.org/x/text/currency"
)

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1,max=1000"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

type CartItemRequest struct {
	CartItemID string `json:"cartItemId" validate:"required,uuid"`
}

type CheckoutRequest struct {
	ShippingAddress AddressRequest `json:"shippingAddress"`
}

type AddressRequest struct {
	Address1   string `json:"address1" validate:"required,max=200"`
	Address2   string `json:"address2" validate:"max=200"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=20"`
}

type productQuery struct {
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Tag         string `json:"tags"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	Search      string `json:"searchBy" validate:"max=100"`
	MinPrice    string `json:"minPrice" validate:"omitempty,numeric"`
	MaxPrice    string `json:"maxPrice" validate:"omitempty,numeric"`
	SortBy      string `json:"sortBy" validate:"omitempty,oneof=createdAt price -price"`
	Page        string `json:"page" validate:"omitempty,number"`
	PageSize    string `json:"pageSize" validate:"omitempty,number"`
}

type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type ProductResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       MoneyResponse  `json:"price"`
	Category    string         `json:"category"`
	SubCategory string         `json:"subCategory"`
	Colors      []domain.Color `json:"colors"`
	Sizes       []string       `json:"sizes"`
	Tags        []string       `json:"tags"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type ProductListResponse struct {
	Products              []ProductResponse `json:"products"`
	TotalNumberOfProducts int64             `json:"totalNumberOfProducts"`
	NumberOfPages         int               `json:"numberOfPages"`
	CurrentPage           int               `json:"currentPage"`
}

type CartItemResponse struct {
	ID        uuid.UUID        `json:"id"`
	ProductID uuid.UUID        `json:"productId"`
	Product   *ProductResponse `json:"product,omitempty"`
	Color     string           `json:"color"`
	Size      string           `json:"size"`
	Quantity  int              `json:"quantity"`
}

type CartResponse struct {
	ID            uuid.UUID          `json:"id"`
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
}

type MessageResponse struct {
	Message string        `json:"message"`
	Cart    *CartResponse `json:"cart,omitempty"`
}

type OrderItemResponse struct {
	ProductID uuid.UUID     `json:"productId"`
	Name      string        `json:"name"`
	Price     MoneyResponse `json:"price"`
	Color     string        `json:"color"`
	Size      string        `json:"size"`
	Quantity  int           `json:"quantity"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Items           []OrderItemResponse `json:"items"`
	TotalPrice      MoneyResponse       `json:"totalPrice"`
	ShippingAddress domain.Address      `json:"shippingAddress"`
	IsPaid          bool                `json:"isPaid"`
	OrderedAt       time.Time           `json:"orderedAt"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateStruct runs the validator and converts its report into a
// domain.ValidationError keyed by JSON field paths.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, domain.FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}

	return &domain.ValidationError{Fields: fields}
}

// fieldPath drops the root struct name: "CheckoutRequest.shippingAddress.city"
// becomes "shippingAddress.city".
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid id"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "numeric", "number":
		return "must be a number"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errMalformedBody, err)
	}

	return validateStruct(v)
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "must be a valid id")
	}
	return id, nil
}

func mapMoneyToResponse(m domain.Money) MoneyResponse {
	scale, _ := currency.Standard.Rounding(m.Currency)

	return MoneyResponse{
		Amount:   m.Amount.StringFixed(int32(scale)),
		Currency: m.Currency.String(),
	}
}

func mapProductToResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       mapMoneyToResponse(p.Price),
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Colors:      nonNilSlice(p.Colors),
		Sizes:       nonNilSlice(p.Sizes),
		Tags:        nonNilSlice(p.Tags),
		CreatedAt:   p.CreatedAt,
	}
}

func mapExpandedCartToResponse(cart domain.ExpandedCart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		product := mapProductToResponse(line.Product)
		items = append(items, CartItemResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Product:   &product,
			Color:     line.Color,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}

	return CartResponse{
		ID:            cart.ID,
		Items:         items,
		TotalQuantity: cart.TotalQuantity,
	}
}

func mapCartToResponse(cart domain.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	return CartResponse{
		ID:            cart.ID,
		Items:         items,
		TotalQuantity: cart.TotalQuantity,
	}
}

func mapOrderToResponse(o domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     mapMoneyToResponse(item.UnitPrice),
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}

	return OrderResponse{
		ID:              o.ID,
		Items:           items,
		TotalPrice:      mapMoneyToResponse(o.TotalPrice),
		ShippingAddress: o.ShippingAddress,
		IsPaid:          o.IsPaid,
		OrderedAt:       o.OrderedAt,
	}
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
