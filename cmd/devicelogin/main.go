// Command devicelogin authenticates a device using the OAuth2 device
// authorization flow. It demonstrates the caller-owned polling contract: the
// exchange core classifies each poll, the loop here decides when to retry.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-identity-client/authority"
	"github.com/jrsteele09/go-identity-client/credential"
	"github.com/jrsteele09/go-identity-client/exchange"
	"github.com/jrsteele09/go-identity-client/grants"
	"github.com/jrsteele09/go-identity-client/headers"
	"github.com/jrsteele09/go-identity-client/transport"
)

type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int64  `json:"expires_in"`
	Interval        int64  `json:"interval"`
	Message         string `json:"message"`
}

func main() {
	issuer := flag.String("issuer", "", "OIDC issuer URL of the authority")
	clientID := flag.String("client-id", "", "public client id")
	scope := flag.String("scope", "openid offline_access", "requested scopes")
	flag.Parse()

	if *issuer == "" || *clientID == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	displayAppname("device login")

	if err := run(context.Background(), *issuer, *clientID, *scope); err != nil {
		log.Fatal().Err(err).Msg("device login failed")
	}
}

func run(ctx context.Context, issuer, clientID, scope string) error {
	auth, err := authority.Discover(ctx, issuer)
	if err != nil {
		return err
	}

	deviceCode, err := startDeviceFlow(ctx, auth, clientID, scope)
	if err != nil {
		return err
	}
	fmt.Println(deviceCode.Message)

	executor, err := exchange.NewExecutor(transport.New())
	if err != nil {
		return err
	}

	clientAuth, err := credential.NewNone(clientID)
	if err != nil {
		return err
	}

	// One correlation id for the whole polling loop so server logs line up.
	header := headers.Default(headers.NewCorrelationID())
	grant := grants.DeviceCode{DeviceCode: deviceCode.DeviceCode}

	interval := time.Duration(deviceCode.Interval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	deadline := time.Now().Add(time.Duration(deviceCode.ExpiresIn) * time.Second)

	for time.Now().Before(deadline) {
		result, err := executor.Execute(ctx, auth, grant, header, clientAuth)
		if err == nil {
			fmt.Printf("signed in, token expires at %s\n", time.Unix(result.ExpiresOn, 0).Format(time.RFC3339))
			if result.Account != nil {
				fmt.Printf("account: %s (%s)\n", result.Account.Username, result.Account.Key())
			}
			return nil
		}

		var pending *exchange.PendingError
		if errors.As(err, &pending) {
			log.Debug().Msg("authorization pending, polling again")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
			continue
		}
		return err
	}
	return errors.New("device code expired before the user signed in")
}

// startDeviceFlow requests a device code from the authority. AAD-style
// authorities serve the device authorization endpoint next to the token
// endpoint.
func startDeviceFlow(ctx context.Context, auth *authority.Authority, clientID, scope string) (*deviceCodeResponse, error) {
	endpoint := strings.Replace(auth.TokenEndpointURL(), "/token", "/devicecode", 1)

	form := url.Values{}
	form.Set("client_id", clientID)
	form.Set("scope", scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("device authorization request failed with status %d", resp.StatusCode)
	}

	var deviceCode deviceCodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&deviceCode); err != nil {
		return nil, err
	}
	return &deviceCode, nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
