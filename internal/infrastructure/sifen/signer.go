// Firma digital enveloped del DE (XML-DSig con RSA-SHA256). El digest se
// calcula sobre el documento canonicalizado (C14N) y el nodo Signature se
// inyecta como último hijo del rDE.

package sifen

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/pos-paraguay/internal/application/ports"
)

// Algoritmos XML-DSig.
const (
	NamespaceDS  = "http://www.w3.org/2000/09/xmldsig#"
	AlgC14N      = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	AlgRSASHA256 = "http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"
	AlgSHA256    = "http://www.w3.org/2001/04/xmldsig#sha256"

	TransformEnveloped = "http://www.w3.org/2000/09/xmldsig#enveloped-signature"
)

var _ ports.XMLSigner = (*DigitalSignatureService)(nil)

// DigitalSignatureService firma el rDE. Sin certificado configurado opera en
// modo simulado: inyecta una firma de prueba, suficiente para el ambiente de
// desarrollo donde el receptor también es simulado.
type DigitalSignatureService struct {
	cert      *tls.Certificate
	simulated bool
}

// NewDigitalSignatureService carga el certificado PEM desde las rutas dadas.
// Con rutas vacías devuelve un firmador simulado.
func NewDigitalSignatureService(certPath, keyPath string) (*DigitalSignatureService, error) {
	if certPath == "" || keyPath == "" {
		return &DigitalSignatureService{simulated: true}, nil
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return nil, fmt.Errorf("sifen: cargar certificado: %w", err)
	}
	return &DigitalSignatureService{cert: &cert}, nil
}

// Sign canonicaliza el documento, firma el digest y devuelve el rDE con el
// nodo Signature inyectado.
func (s *DigitalSignatureService) Sign(xmlDoc string) (string, error) {
	if xmlDoc == "" {
		return "", fmt.Errorf("sifen: XML vacío")
	}
	if s.simulated {
		return s.inject(xmlDoc, simulatedSignature())
	}

	priv, ok := s.cert.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return "", fmt.Errorf("sifen: el certificado debe incluir llave privada RSA")
	}

	// 1) Digest del documento canonicalizado (C14N inclusivo).
	canonical, err := c14n.Canonicalize(xml.NewDecoder(strings.NewReader(xmlDoc)))
	if err != nil {
		return "", fmt.Errorf("sifen: canonicalizar: %w", err)
	}
	docDigest := sha256.Sum256(canonical)
	docDigestB64 := base64.StdEncoding.EncodeToString(docDigest[:])

	// 2) SignedInfo con la referencia enveloped al documento.
	signedInfoXML := buildSignedInfo(docDigestB64)

	// 3) Firmar el SignedInfo canonicalizado con RSA-SHA256.
	canonicalInfo, err := c14n.Canonicalize(xml.NewDecoder(strings.NewReader(signedInfoXML)))
	if err != nil {
		return "", fmt.Errorf("sifen: canonicalizar SignedInfo: %w", err)
	}
	infoHash := sha256.Sum256(canonicalInfo)
	signature, err := rsa.SignPKCS1v15(nil, priv, crypto.SHA256, infoHash[:])
	if err != nil {
		return "", fmt.Errorf("sifen: firmar SignedInfo: %w", err)
	}
	signatureB64 := base64.StdEncoding.EncodeToString(signature)

	// 4) Certificado en Base64.
	x509Cert, err := x509.ParseCertificate(s.cert.Certificate[0])
	if err != nil {
		return "", fmt.Errorf("sifen: parsear certificado: %w", err)
	}
	certB64 := base64.StdEncoding.EncodeToString(x509Cert.Raw)

	return s.inject(xmlDoc, buildSignatureXML(signedInfoXML, signatureB64, certB64))
}

func buildSignedInfo(docDigestB64 string) string {
	sb := &strings.Builder{}
	sb.WriteString(`<ds:SignedInfo xmlns:ds="` + NamespaceDS + `">`)
	sb.WriteString(`<ds:CanonicalizationMethod Algorithm="` + AlgC14N + `"/>`)
	sb.WriteString(`<ds:SignatureMethod Algorithm="` + AlgRSASHA256 + `"/>`)
	sb.WriteString(`<ds:Reference URI="">`)
	sb.WriteString(`<ds:Transforms><ds:Transform Algorithm="` + TransformEnveloped + `"/>`)
	sb.WriteString(`<ds:Transform Algorithm="` + AlgC14N + `"/></ds:Transforms>`)
	sb.WriteString(`<ds:DigestMethod Algorithm="` + AlgSHA256 + `"/>`)
	sb.WriteString(`<ds:DigestValue>` + docDigestB64 + `</ds:DigestValue>`)
	sb.WriteString(`</ds:Reference>`)
	sb.WriteString(`</ds:SignedInfo>`)
	return sb.String()
}

func buildSignatureXML(signedInfoXML, signatureB64, certB64 string) string {
	sb := &strings.Builder{}
	sb.WriteString(`<ds:Signature xmlns:ds="` + NamespaceDS + `">`)
	sb.WriteString(signedInfoXML)
	sb.WriteString(`<ds:SignatureValue>` + signatureB64 + `</ds:SignatureValue>`)
	sb.WriteString(`<ds:KeyInfo><ds:X509Data><ds:X509Certificate>` + certB64 + `</ds:X509Certificate></ds:X509Data></ds:KeyInfo>`)
	sb.WriteString(`</ds:Signature>`)
	return sb.String()
}

func simulatedSignature() string {
	return `<ds:Signature xmlns:ds="` + NamespaceDS + `"><ds:SignatureValue>U0lNVUxBREE=</ds:SignatureValue></ds:Signature>`
}

// inject añade el nodo Signature como último hijo del rDE.
func (s *DigitalSignatureService) inject(xmlDoc, signatureXML string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlDoc); err != nil {
		return "", fmt.Errorf("sifen: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return "", fmt.Errorf("sifen: documento sin raíz")
	}

	sigDoc := etree.NewDocument()
	if err := sigDoc.ReadFromString(signatureXML); err != nil {
		return "", fmt.Errorf("sifen: parsear nodo Signature: %w", err)
	}
	if sigRoot := sigDoc.Root(); sigRoot != nil {
		root.AddChild(sigRoot)
	}

	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("sifen: serializar XML firmado: %w", err)
	}
	return out, nil
}
