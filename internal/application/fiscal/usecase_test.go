package fiscal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-paraguay/internal/application/cashbox"
	"github.com/jhoicas/pos-paraguay/internal/application/dto"
	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/application/sales"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/internal/infrastructure/memory"
	"github.com/jhoicas/pos-paraguay/pkg/sifen"
)

type stubBuilder struct{ calls int }

func (b *stubBuilder) Build(data *ports.InvoiceData) (string, error) {
	b.calls++
	return "<rDE>" + data.DocumentNumber + "</rDE>", nil
}

type stubSigner struct{ err error }

func (s *stubSigner) Sign(xml string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "<signed>" + xml + "</signed>", nil
}

// stubGateway entrega resultados (o errores) en orden, uno por envío.
type stubGateway struct {
	results []*ports.GatewayResult
	errs    []error
	calls   int
}

func (g *stubGateway) Submit(ctx context.Context, signedXML string) (*ports.GatewayResult, error) {
	i := g.calls
	g.calls++
	if i < len(g.errs) && g.errs[i] != nil {
		return nil, g.errs[i]
	}
	if i < len(g.results) {
		return g.results[i], nil
	}
	return &ports.GatewayResult{Estado: sifen.EstadoValido, Numero: "SET-OK", QRURL: "https://ekuatia.set.gov.py/qr?x=1"}, nil
}

type stubPDF struct{ calls int }

func (p *stubPDF) Generate(data *ports.KudeData) ([]byte, error) {
	p.calls++
	return []byte("%PDF-" + data.DocumentNumber), nil
}

type fixture struct {
	uc      *UseCase
	repos   *ports.Repos
	sale    *entity.Sale
	builder *stubBuilder
	gateway *stubGateway
	pdf     *stubPDF
}

func newFixture(t *testing.T, gateway *stubGateway, signer *stubSigner) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := memory.NewRepos(store)
	now := time.Now()

	require.NoError(t, repos.Companies.Create(&entity.Company{
		ID: "company-1", Name: "Lubricentro Guaraní S.A.", RUC: "80098765", DV: "4",
		Regimen: "GENERAL", ContributorType: "2", Address: "Avda. Mcal. López 1234",
		Active: true,
	}))
	require.NoError(t, repos.Branches.Create(&entity.Branch{
		ID: "branch-1", CompanyID: "company-1", Code: "001", Principal: true, Active: true,
	}))
	require.NoError(t, repos.ExpeditionPoints.Create(&entity.ExpeditionPoint{
		ID: "point-1", BranchID: "branch-1", Code: "001", Active: true,
	}))
	for _, docType := range entity.CanonicalDocTypes {
		require.NoError(t, repos.Sequences.Create(&entity.DocumentSequence{
			ID: "seq-" + docType, ExpeditionPointID: "point-1", DocumentType: docType,
			Prefix: "001-001", Format: entity.SequenceFormat, NextNumber: 1, Active: true,
		}))
	}
	require.NoError(t, repos.Timbrados.Create(&entity.Timbrado{
		ID: "timbrado-1", Number: "12345678", IssueKind: entity.EmisionElectronica,
		ValidFrom: now.AddDate(0, -1, 0), ValidTo: now.AddDate(1, 0, 0),
	}))
	require.NoError(t, repos.Warehouses.Create(&entity.Warehouse{
		ID: "wh-1", BranchID: "branch-1", Name: "Depósito", Principal: true, Active: true,
	}))
	require.NoError(t, repos.Customers.Create(&entity.Customer{
		ID: "cust-1", Name: "María González", DocType: "RUC", DocNumber: "4455667",
		DV: "8", TaxNature: "F", Country: "PRY", Active: true,
	}))
	require.NoError(t, repos.Users.Create(&entity.User{
		ID: "seller-1", Username: "vendedor", Role: "vendedor", Active: true,
	}))
	require.NoError(t, repos.Products.Create(&entity.Product{
		ID: "prod-1", Code: "P001", Name: "Aceite 10W40",
		RetailPrice: decimal.NewFromInt(55000), IVARate: 10, Active: true,
	}))
	require.NoError(t, repos.Stocks.Upsert(&entity.Stock{
		ProductID: "prod-1", WarehouseID: "wh-1", Quantity: decimal.NewFromInt(10),
	}))
	require.NoError(t, repos.CashRegisters.Create(&entity.CashRegister{
		ID: "reg-1", ExpeditionPointID: "point-1", Name: "Caja 1",
		CurrentBalance: decimal.Zero, State: entity.RegisterCerrada,
	}))

	tx := memory.NewTxRunner(store)
	ctx := context.Background()
	_, err := cashbox.New(tx).Open(ctx, "cajero-1", "reg-1", dto.OpenRegisterRequest{
		OpeningBalance: decimal.NewFromInt(100000),
	})
	require.NoError(t, err)

	sale, err := sales.New(tx).Finalize(ctx, "seller-1", dto.FinalizeSaleRequest{
		CustomerID: "cust-1", SellerID: "seller-1", RegisterID: "reg-1",
		DocumentType: entity.DocTypeFactura, Condition: entity.CondicionContado,
		Lines: []dto.SaleLineRequest{
			{ProductID: "prod-1", WarehouseID: "wh-1", Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	if gateway == nil {
		gateway = &stubGateway{}
	}
	if signer == nil {
		signer = &stubSigner{}
	}
	builder := &stubBuilder{}
	pdf := &stubPDF{}
	uc := New(tx, builder, signer, gateway, pdf, 3, zerolog.Nop())
	return &fixture{uc: uc, repos: repos, sale: sale, builder: builder, gateway: gateway, pdf: pdf}
}

func TestGenerate(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	doc, err := f.uc.Generate(ctx, f.sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocValidado, doc.State)
	assert.Contains(t, doc.XML, f.sale.DocumentNumber)
	assert.Contains(t, doc.SignedXML, "<signed>")

	// Idempotente: la segunda llamada no reconstruye el XML.
	again, err := f.uc.Generate(ctx, f.sale.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, again.ID)
	assert.Equal(t, 1, f.builder.calls)
}

func TestGenerateFirmaFallida(t *testing.T) {
	signErr := errors.New("certificado vencido")
	f := newFixture(t, nil, &stubSigner{err: signErr})

	_, err := f.uc.Generate(context.Background(), f.sale.ID)
	require.Error(t, err)

	// El intento fallido queda registrado en BORRADOR con su error.
	doc, derr := f.repos.Documents.GetBySale(f.sale.ID)
	require.NoError(t, derr)
	assert.Equal(t, entity.DocBorrador, doc.State)
	assert.Equal(t, "certificado vencido", doc.Errors)
}

func TestGenerateRequiereFacturaFinalizada(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	// Un TICKET no genera documento electrónico.
	require.NoError(t, f.repos.Sales.Create(&entity.Sale{
		ID: "sale-ticket", Number: "00099", DocumentType: entity.DocTypeTicket,
		State: entity.SaleFinalizada, Date: time.Now(),
	}))
	_, err := f.uc.Generate(ctx, "sale-ticket")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = f.uc.Generate(ctx, "venta-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSendAceptado(t *testing.T) {
	f := newFixture(t, &stubGateway{
		results: []*ports.GatewayResult{
			{Estado: sifen.EstadoValido, Numero: "01-2026-000123", QRURL: "https://ekuatia.set.gov.py/qr?n=123"},
		},
	}, nil)
	ctx := context.Background()

	_, err := f.uc.Generate(ctx, f.sale.ID)
	require.NoError(t, err)

	doc, err := f.uc.Send(ctx, f.sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocAceptado, doc.State)
	assert.Equal(t, "01-2026-000123", doc.SETCode)
	assert.Equal(t, 1, doc.Attempts)
	require.NotNil(t, doc.AcceptedAt)

	// Reenviar un aceptado no vuelve al gateway.
	again, err := f.uc.Send(ctx, f.sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocAceptado, again.State)
	assert.Equal(t, 1, f.gateway.calls)
}

func TestSendRechazoYReintento(t *testing.T) {
	f := newFixture(t, &stubGateway{
		results: []*ports.GatewayResult{
			{Estado: "RECHAZADO", Mensaje: "RUC del receptor inválido"},
			{Estado: sifen.EstadoValido, Numero: "SET-2", QRURL: "https://ekuatia.set.gov.py/qr?n=2"},
		},
	}, nil)
	ctx := context.Background()

	_, err := f.uc.Generate(ctx, f.sale.ID)
	require.NoError(t, err)

	doc, err := f.uc.Send(ctx, f.sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocRechazado, doc.State)
	assert.Equal(t, "RUC del receptor inválido", doc.Errors)

	// El rechazo admite reintento.
	doc, err = f.uc.Send(ctx, f.sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocAceptado, doc.State)
	assert.Equal(t, 2, doc.Attempts)
	assert.Empty(t, doc.Errors)
}

func TestSendAgotaIntentos(t *testing.T) {
	gwErr := errors.New("timeout del servicio")
	f := newFixture(t, &stubGateway{errs: []error{gwErr, gwErr, gwErr, gwErr}}, nil)
	ctx := context.Background()

	_, err := f.uc.Generate(ctx, f.sale.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		doc, err := f.uc.Send(ctx, f.sale.ID)
		assert.ErrorIs(t, err, domain.ErrGateway)
		assert.Equal(t, entity.DocError, doc.State)
	}

	// Al máximo de intentos el documento deja de ser reenviable.
	_, err = f.uc.Send(ctx, f.sale.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 3, f.gateway.calls)
}

func TestRenderKude(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	// Un documento sin generar no tiene KuDE.
	_, err := f.uc.RenderKude(ctx, f.sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Generate(ctx, f.sale.ID)
	require.NoError(t, err)

	// Un documento VALIDADO ya puede imprimirse, aún sin respuesta del SIFEN.
	preliminar, err := f.uc.RenderKude(ctx, f.sale.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, preliminar)
	assert.Equal(t, 1, f.pdf.calls)

	_, err = f.uc.Send(ctx, f.sale.ID)
	require.NoError(t, err)

	// Tras la aceptación se regenera (con QR y código SET) y a partir de ahí
	// queda cacheado.
	pdf, err := f.uc.RenderKude(ctx, f.sale.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 2, f.pdf.calls)

	again, err := f.uc.RenderKude(ctx, f.sale.ID)
	require.NoError(t, err)
	assert.Equal(t, pdf, again)
	assert.Equal(t, 2, f.pdf.calls)
}

func TestResendPending(t *testing.T) {
	f := newFixture(t, &stubGateway{
		results: []*ports.GatewayResult{
			{Estado: "RECHAZADO", Mensaje: "servicio degradado"},
			{Estado: sifen.EstadoValido, Numero: "SET-R", QRURL: "https://ekuatia.set.gov.py/qr?n=9"},
		},
	}, nil)
	ctx := context.Background()

	_, err := f.uc.Generate(ctx, f.sale.ID)
	require.NoError(t, err)
	doc, err := f.uc.Send(ctx, f.sale.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DocRechazado, doc.State)

	sent, err := f.uc.ResendPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	accepted, err := f.repos.Documents.GetBySale(f.sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DocAceptado, accepted.State)

	// Sin pendientes, el reenvío no hace nada.
	sent, err = f.uc.ResendPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
}
