package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Cada clase implica una acción correctiva distinta para el caller:
// corregir el input, corregir los datos del producto, o reintentar la operación completa.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrShopNotFound        = errors.New("tienda no encontrada")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrNonPositiveQuantity = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidUnitConfig   = errors.New("configuración de unidades inválida")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrForbidden           = errors.New("acceso denegado")
)
