package analytics

import "fmt"

// EntityFailure entidad (sucursal o distrito) excluida de un lote por error.
type EntityFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (f EntityFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.ID, f.Reason)
}

func (f EntityFailure) Unwrap() error { return f.Err }

// Partial acumula los resultados exitosos de un lote y, por separado, las
// entidades que fallaron. No es seguro para uso concurrente: el llamador
// paraleliza y pliega los resultados después.
type Partial[T any] struct {
	items    []T
	failures []EntityFailure
}

// Add registra un resultado exitoso.
func (p *Partial[T]) Add(item T) {
	p.items = append(p.items, item)
}

// Fail registra una entidad excluida.
func (p *Partial[T]) Fail(id string, err error) {
	if err == nil {
		err = fmt.Errorf("fallo desconocido")
	}
	p.failures = append(p.failures, EntityFailure{ID: id, Reason: err.Error(), Err: err})
}

func (p *Partial[T]) Items() []T                 { return p.items }
func (p *Partial[T]) Failures() []EntityFailure { return p.failures }
