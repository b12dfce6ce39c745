package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jmcanizales/papeleria-api/internal/application/salidas"
	"github.com/jmcanizales/papeleria-api/pkg/config"
)

var _ salidas.FirmaStorage = (*SupabaseStorage)(nil)

// SupabaseStorage sube objetos al storage REST de Supabase y devuelve la URL
// pública. El motor nunca vuelve a leer el objeto; solo conserva la URL.
type SupabaseStorage struct {
	baseURL      string
	apiKey       string
	bucketFirmas string
	httpClient   *http.Client
}

// NewSupabaseStorage construye el cliente de storage.
func NewSupabaseStorage(cfg config.StorageConfig) *SupabaseStorage {
	return &SupabaseStorage{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		bucketFirmas: cfg.BucketFirmas,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SubirFirma sube la firma digitalizada al bucket de firmas.
func (s *SupabaseStorage) SubirFirma(ctx context.Context, nombre string, contenido []byte, contentType string) (string, error) {
	return s.subir(ctx, s.bucketFirmas, nombre, contenido, contentType)
}

func (s *SupabaseStorage) subir(ctx context.Context, bucket, nombre string, contenido []byte, contentType string) (string, error) {
	uploadURL := fmt.Sprintf("%s/object/%s/%s", s.baseURL, bucket, nombre)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(contenido))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("apikey", s.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", nombre, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("upload %s: status %d: %s", nombre, resp.StatusCode, string(body))
	}

	return fmt.Sprintf("%s/object/public/%s/%s", s.baseURL, bucket, nombre), nil
}
