package sifen

import (
	"strings"
	"unicode"
)

// CalcDV calcula el dígito verificador de un RUC paraguayo con el algoritmo
// módulo 11 de la SET: pesos cíclicos 2..11 aplicados de derecha a izquierda.
func CalcDV(base string) int {
	var sum, k int
	k = 2
	for i := len(base) - 1; i >= 0; i-- {
		c := base[i]
		if c < '0' || c > '9' {
			continue
		}
		sum += int(c-'0') * k
		k++
		if k > 11 {
			k = 2
		}
	}
	rest := sum % 11
	if rest > 1 {
		return 11 - rest
	}
	return 0
}

// ValidRUC valida un RUC en formato "80012345-5", "80012345" (sin DV) o con
// puntos de millar. Sin DV explícito solo exige dígitos suficientes.
func ValidRUC(ruc string) bool {
	base, dv := splitRUC(ruc)
	if len(base) < 5 || len(base) > 9 {
		return false
	}
	for _, r := range base {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	if dv == "" {
		return true
	}
	if len(dv) != 1 || dv[0] < '0' || dv[0] > '9' {
		return false
	}
	return int(dv[0]-'0') == CalcDV(base)
}

// BaseRUC devuelve la parte numérica del RUC, sin DV ni separadores.
func BaseRUC(ruc string) string {
	base, _ := splitRUC(ruc)
	return base
}

// RUCDigit devuelve el DV del RUC: el declarado si viene, el calculado si no.
func RUCDigit(ruc string) string {
	base, dv := splitRUC(ruc)
	if dv != "" {
		return dv
	}
	return string(rune('0' + CalcDV(base)))
}

func splitRUC(ruc string) (base, dv string) {
	clean := strings.ReplaceAll(strings.TrimSpace(ruc), ".", "")
	if i := strings.LastIndex(clean, "-"); i >= 0 {
		return clean[:i], clean[i+1:]
	}
	return clean, ""
}
