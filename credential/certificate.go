package credential

import (
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pkcs12"

	errs "github.com/jrsteele09/go-identity-client/internal/errors"
)

// Certificate holds the RSA key material backing signed-assertion
// authentication. The thumbprint goes into the assertion header so the
// authority can select the registered certificate.
type Certificate struct {
	PrivateKey *rsa.PrivateKey
	Thumbprint []byte // SHA-1 over the DER certificate, per the x5t header spec
}

// NewCertificate creates a Certificate from an already-parsed key pair.
func NewCertificate(privateKey *rsa.PrivateKey, cert *x509.Certificate) (*Certificate, error) {
	if privateKey == nil || cert == nil {
		return nil, errs.ErrMissingCertificate
	}
	thumbprint := sha1.Sum(cert.Raw)
	return &Certificate{
		PrivateKey: privateKey,
		Thumbprint: thumbprint[:],
	}, nil
}

// NewCertificateFromPKCS12 loads a Certificate from PKCS#12 data, the format
// authorities hand out certificates in.
func NewCertificateFromPKCS12(pfxData []byte, password string) (*Certificate, error) {
	privateKey, cert, err := pkcs12.Decode(pfxData, password)
	if err != nil {
		return nil, errors.Wrap(err, "[NewCertificateFromPKCS12] failed to decode PKCS#12 data")
	}

	rsaKey, ok := privateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("[NewCertificateFromPKCS12] PKCS#12 private key is not RSA")
	}

	return NewCertificate(rsaKey, cert)
}
