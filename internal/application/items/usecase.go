package items

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmcanizales/papeleria-api/internal/application/alertas"
	"github.com/jmcanizales/papeleria-api/internal/application/dto"
	"github.com/jmcanizales/papeleria-api/internal/application/movimientos"
	"github.com/jmcanizales/papeleria-api/internal/domain"
	"github.com/jmcanizales/papeleria-api/internal/domain/entity"
	"github.com/jmcanizales/papeleria-api/internal/domain/repository"
	"github.com/jmcanizales/papeleria-api/pkg/logger"
)

// ItemUseCase gestiona el catálogo de ítems. El catálogo es el dueño de
// stockReal, pero cualquier cambio de cantidad (incluida la edición directa
// del campo por un gestor) pasa por el mutador como ajuste manual.
type ItemUseCase struct {
	txRunner      movimientos.TxRunner
	itemRepo      repository.ItemRepository
	categoriaRepo repository.CategoriaRepository
	usuarioRepo   repository.UsuarioRepository
	notificador   alertas.Notificador
	feed          alertas.CambioFeed // puede ser nil
	log           *logger.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	txRunner movimientos.TxRunner,
	itemRepo repository.ItemRepository,
	categoriaRepo repository.CategoriaRepository,
	usuarioRepo repository.UsuarioRepository,
	notificador alertas.Notificador,
	feed alertas.CambioFeed,
	log *logger.Logger,
) *ItemUseCase {
	return &ItemUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		categoriaRepo: categoriaRepo,
		usuarioRepo:   usuarioRepo,
		notificador:   notificador,
		feed:          feed,
		log:           log,
	}
}

// Registrar da de alta un ítem. El inventario inicial es la cantidad semilla:
// stockReal arranca igual a él y el libro de movimientos parte de esa base.
func (uc *ItemUseCase) Registrar(ctx context.Context, in dto.RegistrarItemRequest) (*entity.Item, error) {
	existente, err := uc.itemRepo.GetByCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrCodigoAlreadyUsed
	}
	categoria, err := uc.categoriaRepo.GetByID(in.IDCategoria)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	item := &entity.Item{
		ID:                uuid.New().String(),
		Codigo:            in.Codigo,
		Nombre:            in.Nombre,
		IDCategoria:       in.IDCategoria,
		Tipo:              in.Tipo,
		Unidad:            in.Unidad,
		Ubicacion:         in.Ubicacion,
		StockMinimo:       in.StockMinimo,
		InventarioInicial: in.InventarioInicial,
		StockReal:         in.InventarioInicial,
		Imagen:            in.Imagen,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Actualizar modifica los campos descriptivos y, si stock_real viene con un
// valor distinto al vigente, registra un ajuste manual (motivo obligatorio) a
// través del mutador en la misma transacción.
func (uc *ItemUseCase) Actualizar(ctx context.Context, idGestor, idItem string, in dto.ActualizarItemRequest) (*entity.Item, error) {
	gestor, err := uc.usuarioRepo.GetByID(idGestor)
	if err != nil {
		return nil, err
	}
	if gestor == nil {
		return nil, domain.ErrUserNotFound
	}

	var ajustado *entity.Item
	err = uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
		item, err := r.Items.GetForUpdate(idItem)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		item.Nombre = in.Nombre
		item.IDCategoria = in.IDCategoria
		item.Tipo = in.Tipo
		item.Unidad = in.Unidad
		item.Ubicacion = in.Ubicacion
		item.StockMinimo = in.StockMinimo
		if in.Imagen != "" {
			item.Imagen = in.Imagen
		}
		item.UpdatedAt = time.Now()
		if err := r.Items.Update(item); err != nil {
			return err
		}

		if in.StockReal != nil && *in.StockReal != item.StockReal {
			delta := *in.StockReal - item.StockReal
			mov, err := movimientos.AplicarAjuste(r, item.ID, gestor.ID, delta, in.Motivo, entity.AjusteManual,
				fmt.Sprintf("Gestor %s ajustó manualmente el ítem %s", gestor.NombreCompleto(), item.Nombre), time.Now())
			if err != nil {
				return err
			}
			item.StockReal += mov.Cantidad
		}
		ajustado = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.despuesDeMutacion(ctx, idGestor, idItem)
	return ajustado, nil
}

// AjusteManual registra un ajuste directo de stock sin tocar los campos
// descriptivos. Cantidad 0 es un no-op legítimo sin motivo obligatorio; queda
// igualmente asentado en el libro.
func (uc *ItemUseCase) AjusteManual(ctx context.Context, idGestor, idItem string, in dto.AjusteManualRequest) (*entity.Movimiento, error) {
	gestor, err := uc.usuarioRepo.GetByID(idGestor)
	if err != nil {
		return nil, err
	}
	if gestor == nil {
		return nil, domain.ErrUserNotFound
	}

	var mov *entity.Movimiento
	err = uc.txRunner.Run(ctx, func(r movimientos.TxRepos) error {
		item, err := r.Items.GetByID(idItem)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		mov, err = movimientos.AplicarAjuste(r, item.ID, gestor.ID, in.Cantidad, in.Motivo, entity.AjusteManual,
			fmt.Sprintf("Gestor %s ajustó manualmente el ítem %s", gestor.NombreCompleto(), item.Nombre), time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.despuesDeMutacion(ctx, idGestor, idItem)
	return mov, nil
}

// despuesDeMutacion publica el cambio y emite stock_bajo si aplica. Ambos
// efectos son best-effort: un fallo se loguea y nunca revierte la mutación.
func (uc *ItemUseCase) despuesDeMutacion(ctx context.Context, idGestor, idItem string) {
	if uc.feed != nil {
		if err := uc.feed.Publicar(ctx, "items:"+idItem, "stock"); err != nil {
			uc.log.Warn().Err(err).Str("item", idItem).Msg("publicar cambio en feed")
		}
	}
	item, err := uc.itemRepo.GetByID(idItem)
	if err != nil || item == nil {
		return
	}
	if item.StockBajo() {
		if err := uc.notificador.Emitir(ctx, entity.AlertaStockBajo, alertas.MensajeStockBajo(item), idGestor); err != nil {
			uc.log.Warn().Err(err).Str("item", idItem).Str("usuario", idGestor).Msg("emitir alerta de stock bajo")
		}
	}
}

// Eliminar borra un ítem solo si nada lo referencia (movimientos, líneas de
// operaciones o solicitudes); si no, ErrItemReferenced. Las correcciones de
// stock van por ajuste, nunca por borrado.
func (uc *ItemUseCase) Eliminar(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	referenciado, err := uc.itemRepo.HasReferences(id)
	if err != nil {
		return err
	}
	if referenciado {
		return domain.ErrItemReferenced
	}
	return uc.itemRepo.Delete(id)
}

// Detalle obtiene un ítem por id.
func (uc *ItemUseCase) Detalle(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// Listar devuelve el catálogo, filtrado por texto si busqueda no es vacío.
// La comparación ignora mayúsculas y tildes ("papelería" encuentra "papeleria").
func (uc *ItemUseCase) Listar(ctx context.Context, busqueda string) ([]*entity.Item, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(busqueda) == "" {
		return items, nil
	}
	q := normalizar(busqueda)
	filtrados := make([]*entity.Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(normalizar(it.Nombre), q) || strings.Contains(normalizar(it.Codigo), q) {
			filtrados = append(filtrados, it)
		}
	}
	return filtrados, nil
}

// StockBajo deriva los ítems en o por debajo del mínimo. Consulta pura sobre
// el estado vigente; nunca un flag persistido que pueda desfasarse.
func (uc *ItemUseCase) StockBajo(ctx context.Context) ([]*entity.Item, error) {
	return uc.itemRepo.ListStockBajo(ctx)
}

// Desbloquear levanta el veto de un ítem bloqueado por inconsistencia, después
// de que un administrador revisó y corrigió la causa.
func (uc *ItemUseCase) Desbloquear(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.SetBloqueado(id, false)
}

// CrearCategoria da de alta una categoría.
func (uc *ItemUseCase) CrearCategoria(ctx context.Context, nombre string) (*entity.Categoria, error) {
	categoria := &entity.Categoria{
		ID:        uuid.New().String(),
		Nombre:    nombre,
		CreatedAt: time.Now(),
	}
	if err := uc.categoriaRepo.Create(categoria); err != nil {
		return nil, err
	}
	return categoria, nil
}

// ListarCategorias devuelve las categorías ordenadas por nombre.
func (uc *ItemUseCase) ListarCategorias(ctx context.Context) ([]*entity.Categoria, error) {
	return uc.categoriaRepo.List(ctx)
}
