package sifen

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	pkgsifen "github.com/jhoicas/pos-paraguay/pkg/sifen"
)

var _ ports.FiscalGateway = (*MockGateway)(nil)

// MockGateway simula el servicio de recepción SIFEN para entornos sin
// conectividad: acepta la gran mayoría de los documentos tras una demora
// realista de 1 a 3 segundos.
type MockGateway struct {
	rnd *rand.Rand
}

// NewMockGateway construye el gateway simulado.
func NewMockGateway() *MockGateway {
	return &MockGateway{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Submit simula la validación del documento.
func (g *MockGateway) Submit(ctx context.Context, signedXML string) (*ports.GatewayResult, error) {
	if signedXML == "" {
		return &ports.GatewayResult{
			Estado:  pkgsifen.EstadoRechazado,
			Mensaje: "documento vacío",
		}, nil
	}

	delay := time.Duration(1000+g.rnd.Intn(2000)) * time.Millisecond
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(delay):
	}

	// 9 de cada 10 aceptados, para ejercitar también el camino de rechazo.
	if g.rnd.Intn(10) == 0 {
		return &ports.GatewayResult{
			Estado:  pkgsifen.EstadoRechazado,
			Mensaje: "documento rechazado por validación simulada",
		}, nil
	}

	numero := fmt.Sprintf("%d", 100000000+g.rnd.Intn(900000000))
	return &ports.GatewayResult{
		Estado:  pkgsifen.EstadoValido,
		Mensaje: "documento aceptado",
		Numero:  numero,
		QRURL:   "https://ekuatia.set.gov.py/consultas/qr?nVersion=150&Id=" + numero,
	}, nil
}
