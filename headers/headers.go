// Package headers builds the static request headers sent with every token
// exchange, including the correlation identifier echoed back by the service.
package headers

import (
	"net/http"
	"runtime"

	"github.com/google/uuid"
)

const (
	productName    = "go-identity-client"
	productVersion = "0.1.0"
)

// NewCorrelationID generates the correlation identifier for one logical
// authentication operation. Reuse it across the retries of a polling loop so
// server logs line up.
func NewCorrelationID() string {
	return uuid.New().String()
}

// Default returns the static headers for a token exchange: SDK product
// identification plus the correlation id.
func Default(correlationID string) http.Header {
	header := http.Header{}
	header.Set("x-client-SKU", productName)
	header.Set("x-client-VER", productVersion)
	header.Set("x-client-OS", runtime.GOOS)
	header.Set("x-client-CPU", runtime.GOARCH)
	header.Set("client-request-id", correlationID)
	header.Set("return-client-request-id", "true")
	return header
}
