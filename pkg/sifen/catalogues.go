// Package sifen contiene catálogos y validaciones alineados al Manual
// Técnico del Sistema Integrado de Facturación Electrónica Nacional (SIFEN)
// de la SET (Paraguay).
package sifen

// Estados que devuelve el servicio de recepción.
const (
	EstadoValido    = "VALIDO"
	EstadoRechazado = "RECHAZADO"
)

// Tipos de documento electrónico (campo iTiDE).
const (
	TipoDEFacturaElectronica = "1"
	TipoDEAutofactura        = "4"
	TipoDENotaCredito        = "5"
	TipoDENotaDebito         = "6"
	TipoDERemision           = "7"
)

// Unidades de medida (campo cUniMed), subconjunto de uso corriente del
// catálogo oficial.
const (
	UnidadUnidad          = "77"  // Unidad
	UnidadKilogramo       = "83"  // Kilogramo
	UnidadGramo           = "86"  // Gramo
	UnidadLitro           = "110" // Litro
	UnidadMililitro       = "111" // Mililitro
	UnidadMetro           = "2366" // Metro
	UnidadMetroCuadrado   = "2367" // Metro cuadrado
	UnidadMetroCubico     = "2368" // Metro cúbico
	UnidadCentimetro      = "91"  // Centímetro
	UnidadDocena          = "88"  // Docena
	UnidadCaja            = "89"  // Caja
	UnidadBolsa           = "96"  // Bolsa
	UnidadPar             = "102" // Par
	UnidadTonelada        = "87"  // Tonelada
	UnidadHora            = "105" // Hora (servicios)
	UnidadDia             = "104" // Día
)

// ValidUnidades códigos de unidad de medida aceptados.
var ValidUnidades = map[string]bool{
	UnidadUnidad: true, UnidadKilogramo: true, UnidadGramo: true,
	UnidadLitro: true, UnidadMililitro: true, UnidadMetro: true,
	UnidadMetroCuadrado: true, UnidadMetroCubico: true, UnidadCentimetro: true,
	UnidadDocena: true, UnidadCaja: true, UnidadBolsa: true, UnidadPar: true,
	UnidadTonelada: true, UnidadHora: true, UnidadDia: true,
}

// Condiciones de la operación (campo iCondOpe).
const (
	CondicionOperacionContado = "1"
	CondicionOperacionCredito = "2"
)

// Tipos de impuesto afectado (campo iAfecIVA).
const (
	AfectacionGravado   = "1"
	AfectacionExonerado = "2"
	AfectacionExento    = "3"
)
