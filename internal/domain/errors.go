package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el correo ya está registrado")
	ErrCodigoAlreadyUsed      = errors.New("el código de ítem ya está registrado")
	ErrCategoriaAlreadyExists = errors.New("ya existe una categoría con ese nombre")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto de concurrencia, reintente la operación")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrReasonRequired         = errors.New("un ajuste con cantidad distinta de cero requiere motivo")
	ErrItemReferenced         = errors.New("el ítem tiene movimientos o solicitudes asociadas")
	ErrItemLocked             = errors.New("el ítem está bloqueado por inconsistencia de stock")
	ErrStockInconsistent      = errors.New("el stock almacenado no coincide con el libro de movimientos")
	ErrSessionFinalized       = errors.New("el inventario físico ya fue finalizado")
	ErrRequestClosed          = errors.New("la solicitud ya fue procesada")
	ErrManagerRequired        = errors.New("aprobar una solicitud con ítems de catálogo requiere asignar un gestor")
)

// PartialFailure indica que una operación multi-línea (entrada, salida o
// devolución) aplicó algunas líneas y falló en otra. Cada línea es su propia
// transacción: las ya aplicadas quedan confirmadas y el caller debe saberlo
// para no perderlas ni re-aplicarlas.
type PartialFailure struct {
	Applied []int // índices (base 0) de las líneas confirmadas
	Failed  int   // índice de la línea que falló
	Err     error // causa del fallo en la línea Failed
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("fallo parcial: %d línea(s) aplicadas, línea %d falló: %v", len(e.Applied), e.Failed, e.Err)
}

// Unwrap expone la causa para errors.Is/As (ej. ErrInsufficientStock).
func (e *PartialFailure) Unwrap() error { return e.Err }
