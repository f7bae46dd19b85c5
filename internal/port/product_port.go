package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shop-checkout/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context, filter domain.ProductFilter) (domain.ProductPage, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
}

type UserRepository interface {
	GetUser(ctx context.Context, userID string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
}
