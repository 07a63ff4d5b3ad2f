package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInsufficientData = errors.New("datos históricos insuficientes")
	ErrNonFiniteValue   = errors.New("valor numérico no finito")
)
