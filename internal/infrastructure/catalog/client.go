package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/sucursal-sync/pkg/logger"
)

// Client cliente HTTP del webservice de artículos del proveedor.
// Hace un único GET acotado por timeout; los reintentos son problema del caller
// (hoy: ninguno, una corrida intenta una sola vez o aborta).
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente con el timeout total de la petición.
func NewClient(endpoint, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Fetch descarga y decodifica el snapshot completo del catálogo.
func (c *Client) Fetch(ctx context.Context) ([]Entry, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if c.apiKey != "" {
		q := u.Query()
		q.Set("apikey", c.apiKey)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drenar el cuerpo para reutilizar la conexión.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &HTTPError{Code: resp.StatusCode}
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ParseError{Err: errors.New("el cuerpo no decodifica a un array de artículos")}
		}
		return nil, &ParseError{Err: err}
	}
	if len(entries) == 0 {
		return nil, ErrEmptyResult
	}

	c.log.Debug().
		Int("articulos", len(entries)).
		Dur("duracion", time.Since(start)).
		Msg("snapshot de catálogo descargado")
	return entries, nil
}
