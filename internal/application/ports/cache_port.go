package ports

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ResponseCache puerto de salida para cachear respuestas ya calculadas.
// Cualquier adaptador (Redis, memoria, noop) debe implementar esta interfaz.
// Los motores de analítica nunca lo usan; solo los casos de uso.
type ResponseCache interface {
	// Get decodifica en dst el valor de key. found=false si no existe.
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	// Set guarda value serializado con el TTL del adaptador.
	Set(ctx context.Context, key string, value any) error
	// InvalidatePrefix borra todas las claves que empiezan por prefix.
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// CacheKey clave estable "scope:<sha1>" a partir de los parámetros de la consulta.
func CacheKey(scope string, params ...any) string {
	payload, err := json.Marshal(params)
	if err != nil {
		payload = []byte(fmt.Sprint(params...))
	}
	sum := sha1.Sum(payload)
	return scope + ":" + hex.EncodeToString(sum[:])
}
