package dto

import "github.com/jmcanizales/papeleria-api/internal/domain/entity"

// RegistrarItemRequest body para POST /api/items.
type RegistrarItemRequest struct {
	Codigo            string `json:"codigo" validate:"required"`
	Nombre            string `json:"nombre" validate:"required"`
	IDCategoria       string `json:"id_categoria" validate:"required,uuid4"`
	Tipo              string `json:"tipo" validate:"omitempty,oneof=consumible devolutivo"`
	Unidad            string `json:"unidad" validate:"required"`
	Ubicacion         string `json:"ubicacion"`
	StockMinimo       int    `json:"stock_minimo" validate:"min=0"`
	InventarioInicial int    `json:"inventario_inicial" validate:"min=0"`
	Imagen            string `json:"imagen" validate:"omitempty,url"`
}

// ActualizarItemRequest body para PUT /api/items/:id.
// StockReal es opcional; si viene y difiere del actual, el cambio pasa por el
// mutador como ajuste manual y Motivo se vuelve obligatorio.
type ActualizarItemRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	IDCategoria string `json:"id_categoria" validate:"required,uuid4"`
	Tipo        string `json:"tipo" validate:"omitempty,oneof=consumible devolutivo"`
	Unidad      string `json:"unidad" validate:"required"`
	Ubicacion   string `json:"ubicacion"`
	StockMinimo int    `json:"stock_minimo" validate:"min=0"`
	Imagen      string `json:"imagen" validate:"omitempty,url"`
	StockReal   *int   `json:"stock_real" validate:"omitempty,min=0"`
	Motivo      string `json:"motivo"`
}

// ItemResponse representación de un ítem en respuestas.
type ItemResponse struct {
	ID                string `json:"id"`
	Codigo            string `json:"codigo"`
	Nombre            string `json:"nombre"`
	IDCategoria       string `json:"id_categoria"`
	Tipo              string `json:"tipo,omitempty"`
	Unidad            string `json:"unidad"`
	Ubicacion         string `json:"ubicacion,omitempty"`
	StockMinimo       int    `json:"stock_minimo"`
	InventarioInicial int    `json:"inventario_inicial"`
	StockReal         int    `json:"stock_real"`
	StockBajo         bool   `json:"stock_bajo"`
	Bloqueado         bool   `json:"bloqueado,omitempty"`
	Imagen            string `json:"imagen,omitempty"`
}

// ToItemResponse mapea la entidad a la respuesta (StockBajo derivado, nunca almacenado).
func ToItemResponse(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:                i.ID,
		Codigo:            i.Codigo,
		Nombre:            i.Nombre,
		IDCategoria:       i.IDCategoria,
		Tipo:              i.Tipo,
		Unidad:            i.Unidad,
		Ubicacion:         i.Ubicacion,
		StockMinimo:       i.StockMinimo,
		InventarioInicial: i.InventarioInicial,
		StockReal:         i.StockReal,
		StockBajo:         i.StockBajo(),
		Bloqueado:         i.Bloqueado,
		Imagen:            i.Imagen,
	}
}

// CrearCategoriaRequest body para POST /api/categorias.
type CrearCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required"`
}

// CategoriaResponse categoría en respuestas.
type CategoriaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// ToCategoriaResponse mapea la entidad a la respuesta.
func ToCategoriaResponse(cat *entity.Categoria) CategoriaResponse {
	return CategoriaResponse{ID: cat.ID, Nombre: cat.Nombre}
}
