package sifen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/pkg/config"
)

var _ ports.FiscalGateway = (*HTTPGateway)(nil)

// HTTPGateway envía el rDE firmado al servicio de recepción SIFEN.
// El Submit NO debe invocarse dentro de una transacción de base de datos:
// el caso de uso persiste ENVIADO, llama al gateway y registra el resultado
// en una transacción posterior.
type HTTPGateway struct {
	baseURL     string
	apiKey      string
	environment string
	httpClient  *http.Client
}

// NewHTTPGateway construye el cliente con el timeout configurado.
// El servicio de recepción puede tardar varios segundos en responder.
func NewHTTPGateway(cfg config.SIFENConfig) *HTTPGateway {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPGateway{
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		environment: cfg.Environment,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type submitRequest struct {
	Ambiente string `json:"ambiente"`
	XML      string `json:"xml"`
}

type submitResponse struct {
	Estado  string `json:"estado"`
	Mensaje string `json:"mensaje"`
	Numero  string `json:"numero"`
	QRURL   string `json:"qr_url"`
}

// Submit entrega el documento firmado y devuelve el veredicto del servicio.
func (g *HTTPGateway) Submit(ctx context.Context, signedXML string) (*ports.GatewayResult, error) {
	payload, err := json.Marshal(submitRequest{Ambiente: g.environment, XML: signedXML})
	if err != nil {
		return nil, fmt.Errorf("sifen: serializar petición: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/de/recepcion", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("sifen: crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sifen: enviar documento: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("sifen: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sifen: el servicio respondió %d: %s", resp.StatusCode, body)
	}

	var out submitResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("sifen: decodificar respuesta: %w", err)
	}
	return &ports.GatewayResult{
		Estado:  out.Estado,
		Mensaje: out.Mensaje,
		Numero:  out.Numero,
		QRURL:   out.QRURL,
	}, nil
}
