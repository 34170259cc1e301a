// Construcción del XML del Documento Electrónico SIFEN (rDE/DE) a partir de
// los datos de la venta. El árbol sigue el Manual Técnico SIFEN v150 en sus
// campos esenciales; el nodo Signature lo inyecta el firmador.

package sifen

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/jhoicas/pos-paraguay/internal/application/ports"
	pkgsifen "github.com/jhoicas/pos-paraguay/pkg/sifen"
)

// Namespaces oficiales SIFEN.
const (
	NsSifen = "http://ekuatia.set.gov.py/sifen/xsd"
	NsXsi   = "http://www.w3.org/2001/XMLSchema-instance"

	schemaLocation = "http://ekuatia.set.gov.py/sifen/xsd siRecepDE_v150.xsd"
)

var _ ports.XMLBuilder = (*XMLBuilderService)(nil)

// XMLBuilderService construye el XML rDE sin firmar.
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el rDE del documento. El CDC (Id del DE) se arma con el RUC
// emisor, el número de documento y el timbrado.
func (s *XMLBuilderService) Build(data *ports.InvoiceData) (string, error) {
	if data == nil {
		return "", fmt.Errorf("sifen: datos de factura vacíos")
	}
	if len(data.Items) == 0 {
		return "", fmt.Errorf("sifen: documento sin ítems")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rde := doc.CreateElement("rDE")
	rde.CreateAttr("xmlns", NsSifen)
	rde.CreateAttr("xmlns:xsi", NsXsi)
	rde.CreateAttr("xsi:schemaLocation", schemaLocation)

	dVerFor := rde.CreateElement("dVerFor")
	dVerFor.SetText("150")

	de := rde.CreateElement("DE")
	de.CreateAttr("Id", buildCDC(data))

	// gOpeDE: datos de la operación
	gOpe := de.CreateElement("gOpeDE")
	gOpe.CreateElement("iTipEmi").SetText("1") // emisión normal
	gOpe.CreateElement("dCodSeg").SetText(securityCode())

	// gTimb: timbrado y numeración
	gTimb := de.CreateElement("gTimb")
	gTimb.CreateElement("iTiDE").SetText(docTypeCode(data.DocumentType))
	gTimb.CreateElement("dNumTim").SetText(data.Timbrado)
	gTimb.CreateElement("dNumDoc").SetText(data.DocumentNumber)
	gTimb.CreateElement("dFeIniT").SetText(data.IssuedAt[:10])

	// gDatGralOpe: fecha de emisión, emisor y receptor
	gDat := de.CreateElement("gDatGralOpe")
	gDat.CreateElement("dFeEmiDE").SetText(data.IssuedAt)

	gEmis := gDat.CreateElement("gEmis")
	gEmis.CreateElement("dRucEm").SetText(data.CompanyRUC)
	gEmis.CreateElement("dDVEmi").SetText(data.CompanyDV)
	gEmis.CreateElement("iTipCont").SetText(data.ContributorType)
	gEmis.CreateElement("dNomEmi").SetText(data.CompanyName)
	gEmis.CreateElement("dDirEmi").SetText(data.CompanyAddress)

	gDatRec := gDat.CreateElement("gDatRec")
	gDatRec.CreateElement("iNatRec").SetText(data.CustomerNature)
	gDatRec.CreateElement("cPaisRec").SetText(data.CustomerCountry)
	if data.CustomerNature == "1" {
		gDatRec.CreateElement("dRucRec").SetText(data.CustomerDoc)
		gDatRec.CreateElement("dDVRec").SetText(data.CustomerDV)
	} else {
		gDatRec.CreateElement("iTipIDRec").SetText(data.CustomerDocType)
		gDatRec.CreateElement("dNumIDRec").SetText(data.CustomerDoc)
	}
	gDatRec.CreateElement("dNomRec").SetText(data.CustomerName)

	// gDtipDE: condición de la operación e ítems
	gDtip := de.CreateElement("gDtipDE")
	gCam := gDtip.CreateElement("gCamCond")
	gCam.CreateElement("iCondOpe").SetText(conditionCode(data.Condition))

	for _, item := range data.Items {
		gItem := gDtip.CreateElement("gCamItem")
		gItem.CreateElement("dCodInt").SetText(item.Code)
		gItem.CreateElement("dDesProSer").SetText(item.Description)
		gItem.CreateElement("cUniMed").SetText(item.UnitCode)
		gItem.CreateElement("dCantProSer").SetText(item.Quantity)

		gValor := gItem.CreateElement("gValorItem")
		gValor.CreateElement("dPUniProSer").SetText(item.UnitPrice)
		gValor.CreateElement("dTotBruOpeItem").SetText(item.Subtotal)

		gIVA := gItem.CreateElement("gCamIVA")
		gIVA.CreateElement("iAfecIVA").SetText(afectacionCode(item.IVARate))
		gIVA.CreateElement("dTasaIVA").SetText(strconv.Itoa(item.IVARate))
	}

	// gTotSub: totales
	gTot := de.CreateElement("gTotSub")
	gTot.CreateElement("dSubExe").SetText("0")
	gTot.CreateElement("dTotOpe").SetText(data.Subtotal)
	gTot.CreateElement("dTotGralOpe").SetText(data.Total)
	gTot.CreateElement("dIVA5").SetText(data.IVA5)
	gTot.CreateElement("dIVA10").SetText(data.IVA10)

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("sifen: serializar XML: %w", err)
	}
	return out, nil
}

// buildCDC arma el Código de Control del documento: tipo + RUC + DV +
// numeración + timbrado + fecha condensada. No incluye el dígito
// verificador final del CDC real; el SET lo recalcula al validar.
func buildCDC(data *ports.InvoiceData) string {
	date := data.IssuedAt
	if len(date) >= 10 {
		date = date[:4] + date[5:7] + date[8:10]
	}
	return fmt.Sprintf("%s%s%s%s%s", docTypeCode(data.DocumentType), data.CompanyRUC, data.CompanyDV,
		compactNumber(data.DocumentNumber), date)
}

// compactNumber quita los separadores del número BBB-PPP-NNNNNNN.
func compactNumber(n string) string {
	out := make([]byte, 0, len(n))
	for i := 0; i < len(n); i++ {
		if n[i] != '-' {
			out = append(out, n[i])
		}
	}
	return string(out)
}

// securityCode genera el código de seguridad dCodSeg (9 dígitos).
func securityCode() string {
	id := uuid.New().ID()
	return fmt.Sprintf("%09d", id%1_000_000_000)
}

func docTypeCode(docType string) string {
	switch docType {
	case "NOTA_CREDITO":
		return pkgsifen.TipoDENotaCredito
	case "NOTA_DEBITO":
		return pkgsifen.TipoDENotaDebito
	default:
		return pkgsifen.TipoDEFacturaElectronica
	}
}

func conditionCode(condition string) string {
	if condition == "CREDITO" {
		return pkgsifen.CondicionOperacionCredito
	}
	return pkgsifen.CondicionOperacionContado
}

func afectacionCode(ivaRate int) string {
	if ivaRate == 0 {
		return pkgsifen.AfectacionExento
	}
	return pkgsifen.AfectacionGravado
}

// FormatIssuedAt formatea la fecha de emisión al formato SIFEN.
func FormatIssuedAt(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
