package entity

import "time"

// Entrada cabecera de un ingreso de mercancía (factura de compra, donación...).
// Inmutable después de registrarse; las correcciones van por ajuste.
type Entrada struct {
	ID          string
	IDGestor    string
	Factura     string // número de factura o remisión del proveedor
	Observacion string
	Fecha       time.Time
}

// EntradaItem línea de una entrada. Cantidad siempre > 0.
type EntradaItem struct {
	ID        string
	IDEntrada string
	IDItem    string
	Cantidad  int
}
