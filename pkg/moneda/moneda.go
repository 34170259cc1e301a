// Package moneda formatea montos en guaraníes para comprobantes y reportes.
package moneda

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// Guaranies formatea un monto en guaraníes con separador de miles y sin
// decimales: 1500000 -> "Gs. 1.500.000". El guaraní no maneja céntimos.
func Guaranies(amount decimal.Decimal) string {
	return "Gs. " + printer.Sprintf("%d", amount.Round(0).IntPart())
}

// Numero formatea el monto solo con separador de miles.
func Numero(amount decimal.Decimal) string {
	return printer.Sprintf("%d", amount.Round(0).IntPart())
}

var unidades = []string{"", "un", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve",
	"diez", "once", "doce", "trece", "catorce", "quince", "dieciséis", "diecisiete", "dieciocho", "diecinueve"}

var decenas = []string{"", "", "veinte", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa"}

var centenas = []string{"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos",
	"seiscientos", "setecientos", "ochocientos", "novecientos"}

// EnLetras convierte un monto a su expresión en letras para el KuDE:
// 1500000 -> "un millón quinientos mil guaraníes".
func EnLetras(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	if n == 0 {
		return "cero guaraníes"
	}
	return grupo(n) + " guaraníes"
}

func grupo(n int64) string {
	switch {
	case n < 0:
		return "menos " + grupo(-n)
	case n < 20:
		return unidades[n]
	case n < 100:
		d, u := n/10, n%10
		if u == 0 {
			return decenas[d]
		}
		if d == 2 {
			return "veinti" + unidades[u]
		}
		return decenas[d] + " y " + unidades[u]
	case n < 1000:
		c, resto := n/100, n%100
		if n == 100 {
			return "cien"
		}
		if resto == 0 {
			return centenas[c]
		}
		return centenas[c] + " " + grupo(resto)
	case n < 1_000_000:
		miles, resto := n/1000, n%1000
		prefix := "mil"
		if miles > 1 {
			prefix = grupo(miles) + " mil"
		}
		if resto == 0 {
			return prefix
		}
		return prefix + " " + grupo(resto)
	default:
		millones, resto := n/1_000_000, n%1_000_000
		prefix := "un millón"
		if millones > 1 {
			prefix = grupo(millones) + " millones"
		}
		if resto == 0 {
			return prefix
		}
		return prefix + " " + grupo(resto)
	}
}
