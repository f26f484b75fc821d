package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhoicas/sucursal-sync/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(endpoint string) *Client {
	return NewClient(endpoint, "clave-prueba", 2*time.Second, logger.Nop())
}

func TestFetch_DecodificaSnapshotMixto(t *testing.T) {
	// La API real mezcla strings, números y null dentro del mismo artículo.
	body := `[
		{"codigo": " A1 ", "stockmin": "3", "precioventa": 20.5, "preciopromo": null,
		 "stock_espana": "10", "stock_sanber": 0},
		{"codigo": "B2", "stock_espana": ""}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "clave-prueba", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	a := entries[0]
	assert.Equal(t, "A1", a.Codigo, "el código se recorta")
	assert.Equal(t, Value{Raw: "3", Present: true}, a.StockMin)
	assert.Equal(t, Value{Raw: "20.5", Present: true}, a.PrecioVenta, "los números se guardan como literal crudo")
	assert.Equal(t, Value{}, a.PrecioPromo, "null cuenta como ausente")
	assert.Equal(t, Value{Raw: "10", Present: true}, a.Sucursales["stock_espana"])
	assert.Equal(t, Value{Raw: "0", Present: true}, a.Sucursales["stock_sanber"])

	b := entries[1]
	assert.Equal(t, "B2", b.Codigo)
	assert.False(t, b.StockMin.Present)
	assert.Equal(t, Value{Raw: "", Present: true}, b.Sucursales["stock_espana"])
}

func TestFetch_SinAPIKeyNoAgregaParametro(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("apikey"))
		_, _ = w.Write([]byte(`[{"codigo": "A1"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 2*time.Second, logger.Nop())
	_, err := c.Fetch(context.Background())
	require.NoError(t, err)
}

func TestFetch_StatusNoOKDevuelveHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}

func TestFetch_JSONInvalidoDevuelveParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>mantenimiento</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFetch_ObjetoEnLugarDeArrayDevuelveParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "sin resultados"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "no decodifica a un array")
}

func TestFetch_ArrayVacioEsErrEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	assert.True(t, errors.Is(err, ErrEmptyResult))
}

func TestFetch_ServidorCaidoDevuelveTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // cerrado antes de la petición

	_, err := newTestClient(srv.URL).Fetch(context.Background())
	var transErr *TransportError
	require.ErrorAs(t, err, &transErr)
}
