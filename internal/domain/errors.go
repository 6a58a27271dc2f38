package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrPreconditionViolation indica datos corruptos en origen (ventas o lead times negativos).
	// No es una condición de negocio normal: el cálculo completo falla.
	ErrPreconditionViolation = errors.New("violación de precondición en datos de origen")

	// ErrDataSource agrupa fallas transitorias de la fuente de datos (conexión, timeout).
	ErrDataSource = errors.New("error de fuente de datos")
)

// DataSourceError envuelve una falla del almacenamiento con la operación que la produjo.
// errors.Is(err, ErrDataSource) es verdadero para cualquier DataSourceError.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataSource.Error(), e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Is permite comparar contra ErrDataSource sin perder la causa original.
func (e *DataSourceError) Is(target error) bool { return target == ErrDataSource }

// NewDataSourceError construye el error; devuelve nil si err es nil.
func NewDataSourceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DataSourceError{Op: op, Err: err}
}

// Preconditionf construye un error de precondición con detalle.
func Preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPreconditionViolation, fmt.Sprintf(format, args...))
}

// InvalidInputf construye un error de entrada inválida con detalle.
func InvalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
