package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-sync/internal/application/dto"
	"github.com/jhoicas/sucursal-sync/internal/domain"
	"github.com/jhoicas/sucursal-sync/internal/domain/entity"
	"github.com/jhoicas/sucursal-sync/internal/domain/repository"
)

// StockHandler expone la interfaz de consulta del ledger para los consumidores
// aguas abajo (selección de sucursal, listados, disponibilidad).
type StockHandler struct {
	stocks     repository.StockRepository
	products   repository.ProductRepository
	sucursales map[string]struct{} // sucursales configuradas, para validar slugs
}

// NewStockHandler construye el handler con la lista de sucursales válidas.
func NewStockHandler(stocks repository.StockRepository, products repository.ProductRepository, sucursales []string) *StockHandler {
	valid := make(map[string]struct{}, len(sucursales))
	for _, s := range sucursales {
		valid[s] = struct{}{}
	}
	return &StockHandler{stocks: stocks, products: products, sucursales: valid}
}

// ProductStock devuelve el stock completo de un producto: cantidades por
// sucursal con el vendible (cantidad - mínimo, piso 0) y el agregado.
func (h *StockHandler) ProductStock(c *fiber.Ctx) error {
	pid, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: domain.ErrInvalidInput.Error()})
	}
	product, err := h.products.GetByID(c.Context(), pid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()})
	}
	byBranch, err := h.stocks.ByProduct(c.Context(), pid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := dto.ProductStockResponse{
		ProductID:  product.ID,
		SKU:        product.SKU,
		MinStock:   product.MinStock,
		TotalStock: product.TotalStock,
		Status:     product.StockStatus,
		Sucursales: make(map[string]dto.SucursalStockDTO, len(byBranch)),
	}
	for slug, qty := range byBranch {
		s := entity.BranchStock{ProductID: pid, Sucursal: slug, Quantity: qty}
		out.Sucursales[slug] = dto.SucursalStockDTO{
			Quantity:  qty,
			Available: s.Available(product.MinStock),
		}
	}
	return c.JSON(out)
}

// BranchStock devuelve el stock de un producto en una sucursal concreta.
func (h *StockHandler) BranchStock(c *fiber.Ctx) error {
	pid, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: domain.ErrInvalidInput.Error()})
	}
	slug := c.Params("sucursal")
	if _, ok := h.sucursales[slug]; !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrUnknownSucursal.Error()})
	}
	product, err := h.products.GetByID(c.Context(), pid)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if product == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()})
	}
	qty, err := h.stocks.Get(c.Context(), pid, slug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	s := entity.BranchStock{ProductID: pid, Sucursal: slug, Quantity: qty}
	return c.JSON(dto.BranchStockResponse{
		ProductID: pid,
		Sucursal:  slug,
		Quantity:  qty,
		MinStock:  product.MinStock,
		Available: s.Available(product.MinStock),
	})
}

// AvailableProducts devuelve los productos con stock vendible en una sucursal.
func (h *StockHandler) AvailableProducts(c *fiber.Ctx) error {
	slug := c.Params("sucursal")
	if _, ok := h.sucursales[slug]; !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrUnknownSucursal.Error()})
	}
	ids, err := h.stocks.ProductsWithAvailableStock(c.Context(), slug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if ids == nil {
		ids = []int64{}
	}
	return c.JSON(dto.AvailableProductsResponse{Sucursal: slug, ProductIDs: ids})
}
