package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tienda-pos/internal/application/dto"
	"github.com/tu-usuario/tienda-pos/internal/application/usecase"
	"github.com/tu-usuario/tienda-pos/internal/domain"
)

// ShopHandler maneja las peticiones HTTP de tiendas.
type ShopHandler struct {
	uc *usecase.ShopUseCase
}

// NewShopHandler construye el handler.
func NewShopHandler(uc *usecase.ShopUseCase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShopRequest  true  "name, currency"
// @Success      201   {object}  dto.ShopResponse
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	shop, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(shop)
}

// GetByID godoc
// @Summary      Obtener tienda por ID
// @Tags         shops
// @Produce      json
// @Param        id  path  string  true  "Shop ID"
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [get]
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
	shop, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if shop == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda no encontrada"})
	}
	return c.JSON(shop)
}

// List godoc
// @Summary      Listar tiendas
// @Tags         shops
// @Produce      json
// @Success      200  {object}  dto.ShopListResponse
// @Router       /api/shops [get]
func (h *ShopHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	list, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}
