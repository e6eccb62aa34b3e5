// Package fuenteclient is a thin HTTP client against the fuente module, the
// system of record for collections and facts.
package fuenteclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/facundo-gs/busqueda-api/dto"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type coleccionItem struct {
	Nombre string `json:"nombre"`
}

// ListColecciones returns the names of every known collection.
func (c *Client) ListColecciones(ctx context.Context) ([]string, error) {
	var items []coleccionItem
	if err := c.getJSON(ctx, "/api/colecciones", &items); err != nil {
		return nil, err
	}
	nombres := make([]string, 0, len(items))
	for _, it := range items {
		nombres = append(nombres, it.Nombre)
	}
	return nombres, nil
}

// ListHechos returns every fact published under the collection.
func (c *Client) ListHechos(ctx context.Context, coleccion string) ([]dto.HechoDTO, error) {
	var hechos []dto.HechoDTO
	path := "/api/colecciones/" + url.PathEscape(coleccion) + "/hechos"
	if err := c.getJSON(ctx, path, &hechos); err != nil {
		return nil, err
	}
	return hechos, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("fuente %s: status=%d body=%s", path, resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
