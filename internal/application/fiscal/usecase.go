package fiscal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	"github.com/jhoicas/pos-paraguay/internal/domain"
	"github.com/jhoicas/pos-paraguay/internal/domain/entity"
	"github.com/jhoicas/pos-paraguay/pkg/sifen"
)

// UseCase orquesta el ciclo del documento electrónico SIFEN de una venta:
// NO_GENERADO → BORRADOR (XML) → VALIDADO (firmado) → ENVIADO → ACEPTADO /
// RECHAZADO / ERROR. El envío ocurre fuera de transacción; solo el antes y
// el después del viaje al gateway tocan la base.
type UseCase struct {
	tx          ports.TxRunner
	builder     ports.XMLBuilder
	signer      ports.XMLSigner
	gateway     ports.FiscalGateway
	pdf         ports.KudePDFGenerator
	maxAttempts int
	log         zerolog.Logger
}

// New construye el caso de uso.
func New(tx ports.TxRunner, builder ports.XMLBuilder, signer ports.XMLSigner, gateway ports.FiscalGateway, pdf ports.KudePDFGenerator, maxAttempts int, log zerolog.Logger) *UseCase {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &UseCase{
		tx:          tx,
		builder:     builder,
		signer:      signer,
		gateway:     gateway,
		pdf:         pdf,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Generate construye y firma el XML de la venta, dejando el documento en
// VALIDADO. Idempotente: si ya existe en VALIDADO o posterior lo devuelve.
func (uc *UseCase) Generate(ctx context.Context, saleID string) (*entity.ElectronicDocument, error) {
	var doc *entity.ElectronicDocument
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		sale, err := r.Sales.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale.State != entity.SaleFinalizada {
			return domain.ErrInvalidState
		}
		if sale.DocumentType != entity.DocTypeFactura {
			return domain.ErrInvalidState
		}

		doc, err = r.Documents.GetBySale(saleID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		now := time.Now()
		if doc == nil {
			doc = &entity.ElectronicDocument{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				State:     entity.DocNoGenerado,
				CreatedAt: now,
			}
			if err := r.Documents.Create(doc); err != nil {
				return err
			}
		}
		switch doc.State {
		case entity.DocNoGenerado, entity.DocBorrador:
		default:
			return nil
		}

		data, err := buildInvoiceData(r, sale)
		if err != nil {
			return err
		}
		xml, err := uc.builder.Build(data)
		if err != nil {
			return err
		}
		doc.XML = xml
		doc.State = entity.DocBorrador

		signed, err := uc.signer.Sign(xml)
		if err != nil {
			doc.Errors = err.Error()
			doc.UpdatedAt = now
			if uerr := r.Documents.Update(doc); uerr != nil {
				return uerr
			}
			return err
		}
		doc.SignedXML = signed
		doc.State = entity.DocValidado
		doc.Errors = ""
		doc.UpdatedAt = now
		return r.Documents.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Send envía el documento firmado al gateway. Idempotente sobre ACEPTADO;
// RECHAZADO y ERROR admiten reintento hasta el máximo configurado. El viaje
// al gateway ocurre fuera de cualquier transacción.
func (uc *UseCase) Send(ctx context.Context, saleID string) (*entity.ElectronicDocument, error) {
	var doc *entity.ElectronicDocument

	// Fase 1: marcar ENVIADO y tomar el XML firmado.
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		var err error
		doc, err = r.Documents.GetBySale(saleID)
		if err != nil {
			return err
		}
		if doc.State == entity.DocAceptado {
			return nil
		}
		if !doc.Resendable(uc.maxAttempts) {
			return domain.ErrInvalidState
		}
		now := time.Now()
		doc.State = entity.DocEnviado
		doc.Attempts++
		doc.SentAt = &now
		doc.UpdatedAt = now
		return r.Documents.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	if doc.State == entity.DocAceptado {
		return doc, nil
	}

	// Fase 2: viaje al gateway, sin transacción abierta.
	result, gwErr := uc.gateway.Submit(ctx, doc.SignedXML)

	// Fase 3: registrar el resultado.
	err = uc.tx.Run(ctx, func(r *ports.Repos) error {
		fresh, err := r.Documents.GetBySale(saleID)
		if err != nil {
			return err
		}
		now := time.Now()
		switch {
		case gwErr != nil:
			fresh.State = entity.DocError
			fresh.Errors = gwErr.Error()
			uc.log.Error().Err(gwErr).Str("sale_id", saleID).Int("attempts", fresh.Attempts).Msg("fallo el envío al SIFEN")
		case result.Estado == sifen.EstadoValido:
			fresh.State = entity.DocAceptado
			fresh.SETCode = result.Numero
			fresh.QRURL = result.QRURL
			fresh.Errors = ""
			fresh.AcceptedAt = &now
			uc.log.Info().Str("sale_id", saleID).Str("set_code", result.Numero).Msg("documento aceptado por el SIFEN")
		default:
			fresh.State = entity.DocRechazado
			fresh.Errors = result.Mensaje
			uc.log.Warn().Str("sale_id", saleID).Str("mensaje", result.Mensaje).Msg("documento rechazado por el SIFEN")
		}
		fresh.UpdatedAt = now
		doc = fresh
		return r.Documents.Update(fresh)
	})
	if err != nil {
		return nil, err
	}
	if gwErr != nil {
		return doc, domain.ErrGateway
	}
	return doc, nil
}

// RenderKude genera el PDF KuDE de un documento VALIDADO o ACEPTADO. Hasta
// la aceptación se regenera en cada pedido (para incorporar QR y código SET
// cuando lleguen); a partir de ACEPTADO el PDF queda cacheado.
func (uc *UseCase) RenderKude(ctx context.Context, saleID string) ([]byte, error) {
	var pdf []byte
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		doc, err := r.Documents.GetBySale(saleID)
		if err != nil {
			return err
		}
		switch doc.State {
		case entity.DocValidado, entity.DocEnviado, entity.DocRechazado, entity.DocError, entity.DocAceptado:
		default:
			return domain.ErrInvalidState
		}
		if doc.KudeGenerated {
			pdf = doc.PDF
			return nil
		}
		sale, err := r.Sales.GetByID(saleID)
		if err != nil {
			return err
		}
		data, err := buildKudeData(r, sale, doc)
		if err != nil {
			return err
		}
		pdf, err = uc.pdf.Generate(data)
		if err != nil {
			return err
		}
		doc.PDF = pdf
		if doc.State == entity.DocAceptado {
			doc.KudeGenerated = true
		}
		doc.UpdatedAt = time.Now()
		return r.Documents.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// ResendPending recorre los documentos reenviables y los envía uno a uno.
// Devuelve cuántos terminaron aceptados. Lo usa el comando de reenvío.
func (uc *UseCase) ResendPending(ctx context.Context) (int, error) {
	var pending []*entity.ElectronicDocument
	err := uc.tx.Run(ctx, func(r *ports.Repos) error {
		var err error
		pending, err = r.Documents.ListPending(uc.maxAttempts)
		return err
	})
	if err != nil {
		return 0, err
	}

	accepted := 0
	for _, d := range pending {
		doc, err := uc.Send(ctx, d.SaleID)
		if err != nil {
			uc.log.Error().Err(err).Str("sale_id", d.SaleID).Msg("reenvío fallido")
			continue
		}
		if doc.State == entity.DocAceptado {
			accepted++
		}
	}
	return accepted, nil
}

// buildInvoiceData reúne empresa, timbrado, receptor y líneas de la venta.
func buildInvoiceData(r *ports.Repos, sale *entity.Sale) (*ports.InvoiceData, error) {
	company, err := r.Companies.GetPrincipal()
	if err != nil {
		return nil, err
	}
	timbrado, err := r.Timbrados.GetByID(sale.TimbradoID)
	if err != nil {
		return nil, err
	}
	customer, err := r.Customers.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}

	data := &ports.InvoiceData{
		CompanyRUC:      company.RUC,
		CompanyDV:       company.DV,
		CompanyName:     company.Name,
		CompanyAddress:  company.Address,
		Regimen:         company.Regimen,
		ContributorType: company.ContributorType,
		Timbrado:        timbrado.Number,
		DocumentType:    sale.DocumentType,
		DocumentNumber:  sale.DocumentNumber,
		IssuedAt:        sale.Date.Format(time.RFC3339),
		CustomerDocType: customer.DocType,
		CustomerDoc:     customer.DocNumber,
		CustomerDV:      customer.DV,
		CustomerName:    customer.Name,
		CustomerNature:  customer.TaxNature,
		CustomerCountry: customer.Country,
		Condition:       sale.Condition,
		Subtotal:        sale.Subtotal.StringFixed(0),
		Total:           sale.Total.StringFixed(0),
	}
	for _, d := range sale.Details {
		item := ports.InvoiceItem{
			Quantity:  d.Quantity.StringFixed(3),
			UnitPrice: d.UnitPrice.StringFixed(0),
			Subtotal:  d.Subtotal.StringFixed(0),
			IVARate:   d.IVARate,
			UnitCode:  sifen.UnidadUnidad,
		}
		if d.ProductID != "" {
			product, err := r.Products.GetByID(d.ProductID)
			if err != nil {
				return nil, err
			}
			item.Code = product.Code
			item.Description = product.Name
			if product.UnitID != "" {
				if unit, err := r.UnitMeasures.GetByID(product.UnitID); err == nil {
					item.UnitCode = unit.SifenCode
				}
			}
		} else if d.ServiceID != "" {
			service, err := r.Services.GetByID(d.ServiceID)
			if err != nil {
				return nil, err
			}
			item.Code = service.Code
			item.Description = service.Name
		}
		data.Items = append(data.Items, item)
	}
	return data, nil
}

// buildKudeData arma los datos de la representación gráfica.
func buildKudeData(r *ports.Repos, sale *entity.Sale, doc *entity.ElectronicDocument) (*ports.KudeData, error) {
	inv, err := buildInvoiceData(r, sale)
	if err != nil {
		return nil, err
	}
	data := &ports.KudeData{
		CompanyName:    inv.CompanyName,
		CompanyRUC:     inv.CompanyRUC + "-" + inv.CompanyDV,
		Timbrado:       inv.Timbrado,
		DocumentNumber: inv.DocumentNumber,
		CustomerName:   inv.CustomerName,
		CustomerDoc:    inv.CustomerDoc,
		IssuedAt:       sale.Date.Format("02/01/2006 15:04"),
		Total:          inv.Total,
		SETCode:        doc.SETCode,
		QRURL:          doc.QRURL,
	}
	for _, it := range inv.Items {
		data.Items = append(data.Items, ports.KudeItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return data, nil
}
