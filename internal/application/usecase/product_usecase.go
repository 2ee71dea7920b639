package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del inventario.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

func validateProduct(p *entity.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name requerido", domain.ErrValidation)
	}
	if p.SellingPrice.IsNegative() {
		return fmt.Errorf("%w: selling_price no puede ser negativo", domain.ErrValidation)
	}
	if p.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: purchase_price no puede ser negativo", domain.ErrValidation)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity no puede ser negativo", domain.ErrValidation)
	}
	if p.MinStock < 0 {
		return fmt.Errorf("%w: min_stock no puede ser negativo", domain.ErrValidation)
	}
	return nil
}

// Create crea un producto. MinStock cero toma el default del dominio.
// Devuelve ErrDuplicate si el barcode no vacío ya está en uso.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		Name:          in.Name,
		Barcode:       in.Barcode,
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		Quantity:      in.Quantity,
		MinStock:      in.MinStock,
		Category:      in.Category,
		Supplier:      in.Supplier,
	}
	if product.MinStock == 0 {
		product.MinStock = entity.DefaultMinStock
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// GetByBarcode obtiene un producto por código de barras exacto.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, barcode string) (*dto.ProductResponse, error) {
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode requerido", domain.ErrValidation)
	}
	product, err := uc.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualización parcial: aplica solo los campos presentes y revalida
// los invariantes sobre el resultado.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SellingPrice != nil {
		product.SellingPrice = *in.SellingPrice
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Search búsqueda por substring insensible a mayúsculas y acentos sobre
// name, barcode y category. Query vacío equivale a List.
func (uc *ProductUseCase) Search(ctx context.Context, query string) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// LowStock lista los productos en o bajo su umbral mínimo.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]*entity.Product, 0)
	for _, p := range list {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return toProductResponses(low), nil
}

// Delete elimina un producto. Las ventas que lo referencian conservan sus
// snapshots y no se ven afectadas.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Barcode:       p.Barcode,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		Category:      p.Category,
		Supplier:      p.Supplier,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(list []*entity.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}
