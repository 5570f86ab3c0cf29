package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStageBoundary      = errors.New("la etapa ya está en el extremo del pipeline")
	ErrReorderInFlight    = errors.New("hay un reordenamiento en curso para este pipeline")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrInvalidOAuthState  = errors.New("state de OAuth inválido o expirado")
)
