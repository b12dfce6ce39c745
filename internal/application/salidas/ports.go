package salidas

import "context"

// FirmaStorage puerto de object storage para la firma digitalizada del
// solicitante. El motor solo conserva la URL retornada.
type FirmaStorage interface {
	SubirFirma(ctx context.Context, nombre string, contenido []byte, contentType string) (string, error)
}
