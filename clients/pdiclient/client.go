// Package pdiclient is a thin HTTP client against the PdI module.
package pdiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
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
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListPdIs returns the system-wide PdI list. The sweep filters nothing here:
// unknown facts come back as deferred ingestions downstream.
func (c *Client) ListPdIs(ctx context.Context) ([]dto.PdIDTO, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/pdis", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("pdi /api/pdis: status=%d body=%s", resp.StatusCode, string(b))
	}

	var pdis []dto.PdIDTO
	if err := json.NewDecoder(resp.Body).Decode(&pdis); err != nil {
		return nil, err
	}
	return pdis, nil
}
