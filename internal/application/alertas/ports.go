package alertas

import "context"

// Notificador puerto del sink de notificaciones. El motor solo emite; entrega,
// persistencia y estado leído/no-leído son responsabilidad de la implementación.
type Notificador interface {
	Emitir(ctx context.Context, tipo, mensaje, idUsuario string) error
}

// CambioFeed puerto del feed de cambios en tiempo real (opcional). Los
// suscriptores externos observan mutaciones por canal (ítem o usuario
// afectado); no hay más contrato que "algo cambió".
type CambioFeed interface {
	Publicar(ctx context.Context, canal string, payload any) error
}
