package catalog

import (
	"errors"
	"fmt"
)

// ErrEmptyResult la API respondió bien pero con un catálogo de cero artículos.
// Se trata como fatal: un snapshot vacío nunca es un estado válido del proveedor.
var ErrEmptyResult = errors.New("la API devolvió un array vacío")

// TransportError fallo de red antes de obtener una respuesta HTTP.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "error de conexión con la API: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError respuesta con status distinto de 200.
type HTTPError struct {
	Code int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("error HTTP %d al conectar con la API", e.Code)
}

// ParseError el cuerpo no es JSON válido o no decodifica a un array.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "respuesta JSON inválida de la API: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }
