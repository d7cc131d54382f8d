package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/stock"
	"github.com/tu-usuario/tienda-pos/internal/domain"
	"github.com/tu-usuario/tienda-pos/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del ledger de stock (protegido).
type StockHandler struct {
	record    *stock.RecordMovementUseCase
	reconcile *stock.ReconcileUseCase
	query     *stock.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(record *stock.RecordMovementUseCase, reconcile *stock.ReconcileUseCase, query *stock.StockQueryUseCase) *StockHandler {
	return &StockHandler{record: record, reconcile: reconcile, query: query}
}

// stockError mapea cada clase de error de dominio a un código HTTP distinto.
// Nunca un catch-all: cada clase implica una acción correctiva diferente.
func stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNonPositiveQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NON_POSITIVE_QUANTITY", Message: "la cantidad debe ser mayor que cero"})
	case errors.Is(err, domain.ErrInvalidMovementType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_MOVEMENT_TYPE", Message: "tipo de movimiento inválido"})
	case errors.Is(err, domain.ErrInvalidUnitConfig):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_UNIT_CONFIG", Message: "factores de conversión del producto inválidos"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "no se pudo completar la escritura; reintente la operación completa"})
	}
}

func toMovementResponse(res *stock.MovementResult) dto.MovementResponse {
	return dto.MovementResponse{
		MovementID:    res.Movement.ID,
		ProductID:     res.Movement.ProductID,
		Type:          res.Movement.Type,
		Quantity:      res.Movement.Quantity,
		PreviousStock: res.PreviousStock,
		NewStock:      res.NewStock,
		Clamped:       res.Clamped,
		Date:          res.Movement.Date,
	}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock (cantidad en unidades base)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, type, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	userID := GetUserID(c)
	if shopID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.record.RecordMovement(c.Context(), stock.MovementInput{
		ProductID:      in.ProductID,
		ShopID:         shopID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		BatchNumber:    in.BatchNumber,
		ExpiryDate:     in.ExpiryDate,
		CounterpartyID: in.CounterpartyID,
		Reference:      in.Reference,
		Notes:          in.Notes,
		UserID:         userID,
		Date:           in.Date,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// RecordSale godoc
// @Summary      Registrar venta (cantidad en unidades de venta)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Router       /api/stock/sales [post]
func (h *StockHandler) RecordSale(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	userID := GetUserID(c)
	if shopID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.record.RecordSale(c.Context(), stock.SaleInput{
		ProductID:      in.ProductID,
		ShopID:         shopID,
		Quantity:       in.Quantity,
		CounterpartyID: in.CounterpartyID,
		Reference:      in.Reference,
		Notes:          in.Notes,
		UserID:         userID,
		Date:           in.Date,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// RecordReceipt godoc
// @Summary      Registrar recepción de mercancía (cantidad en unidades de compra)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordReceiptRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Router       /api/stock/receipts [post]
func (h *StockHandler) RecordReceipt(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	userID := GetUserID(c)
	if shopID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.record.RecordReceipt(c.Context(), stock.ReceiptInput{
		ProductID:      in.ProductID,
		ShopID:         shopID,
		Quantity:       in.Quantity,
		BatchNumber:    in.BatchNumber,
		ExpiryDate:     in.ExpiryDate,
		CounterpartyID: in.CounterpartyID,
		Reference:      in.Reference,
		Notes:          in.Notes,
		UserID:         userID,
		Date:           in.Date,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(res))
}

// GetCurrentStock godoc
// @Summary      Stock actual de un producto (proyección, unidades base)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  dto.CurrentStockResponse
// @Router       /api/products/{id}/stock [get]
func (h *StockHandler) GetCurrentStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	qty, err := h.query.GetCurrentStock(c.Context(), productID)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(dto.CurrentStockResponse{ProductID: productID, StockQuantity: qty})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "Product ID"
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "por defecto 20"
// @Param        offset  query  int     false  "por defecto 0"
// @Success      200  {array}  dto.StockMovementDTO
// @Router       /api/products/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Params("id")
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "rango de fechas inválido (RFC3339)"})
	}
	movements, err := h.query.ListMovements(c.Context(), productID, from, to, page.Limit, page.Offset)
	if err != nil {
		return stockError(c, err)
	}
	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return c.JSON(fiber.Map{
		"movements": out,
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(out)},
	})
}

// Reconcile godoc
// @Summary      Reconciliar la proyección de stock de un producto desde el log
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  dto.ReconcileResponse
// @Router       /api/products/{id}/reconcile [post]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	res, err := h.reconcile.ReconcileProduct(c.Context(), c.Params("id"))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ProductID:  res.ProductID,
		Previous:   res.Previous,
		Recomputed: res.Recomputed,
		Corrected:  res.Corrected,
	})
}

// ReconcileShop godoc
// @Summary      Reconciliar todos los productos de la tienda del token
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileShopResponse
// @Router       /api/stock/reconcile [post]
func (h *StockHandler) ReconcileShop(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	results, err := h.reconcile.ReconcileShop(c.Context(), shopID)
	if err != nil {
		return stockError(c, err)
	}
	corrected := make([]dto.ReconcileResponse, 0, len(results))
	for _, r := range results {
		corrected = append(corrected, dto.ReconcileResponse{
			ProductID:  r.ProductID,
			Previous:   r.Previous,
			Recomputed: r.Recomputed,
			Corrected:  r.Corrected,
		})
	}
	return c.JSON(dto.ReconcileShopResponse{ShopID: shopID, Corrected: corrected, Count: len(corrected)})
}

func toMovementDTO(m *entity.StockMovement) dto.StockMovementDTO {
	return dto.StockMovementDTO{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ShopID:         m.ShopID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		BatchNumber:    m.BatchNumber,
		ExpiryDate:     m.ExpiryDate,
		CounterpartyID: m.CounterpartyID,
		Reference:      m.Reference,
		Notes:          m.Notes,
		Date:           m.Date,
		CreatedBy:      m.CreatedBy,
	}
}

func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
