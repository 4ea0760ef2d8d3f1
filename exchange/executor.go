package exchange

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-identity-client/authority"
	"github.com/jrsteele09/go-identity-client/telemetry"
)

// Executor performs token exchanges. It holds no per-exchange state and is
// safe for concurrent use; exchanges never coordinate with each other.
type Executor struct {
	transport Transport
	recorder  telemetry.Recorder
	logger    zerolog.Logger
	nowTime   func() time.Time // nowTime function (injectable for testing)
}

// ExecutorOption defines a function type to modify the Executor instance.
type ExecutorOption func(*Executor)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ExecutorOption {
	return func(e *Executor) {
		e.nowTime = nowFunc
	}
}

// WithRecorder sets the telemetry recorder receiving finalized diagnostic
// records.
func WithRecorder(recorder telemetry.Recorder) ExecutorOption {
	return func(e *Executor) {
		e.recorder = recorder
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor initializes an Executor with the required transport. Optional
// configuration can be provided via options (e.g. WithNowTime for testing).
func NewExecutor(transport Transport, options ...ExecutorOption) (*Executor, error) {
	if transport == nil {
		return nil, errors.New("[NewExecutor] transport is required")
	}

	executor := &Executor{
		transport: transport,
		logger:    log.Logger,
		nowTime:   time.Now,
	}

	for _, opt := range options {
		opt(executor)
	}

	if executor.recorder == nil {
		executor.recorder = telemetry.LogRecorder{Logger: executor.logger}
	}

	return executor, nil
}

// Execute performs one token endpoint round trip and returns the normalized
// result, or one of ConfigurationError, TransportError, PendingError,
// InteractionRequiredError, ServiceError. The diagnostic record is finalized
// exactly once on every path.
func (e *Executor) Execute(ctx context.Context, auth *authority.Authority, grant Grant, header http.Header, clientAuth ClientAuthentication) (*AuthenticationResult, error) {
	event := telemetry.NewHTTPEvent(http.MethodPost)
	if auth != nil {
		if err := event.SetURL(auth.TokenEndpointURL()); err != nil {
			// Non-fatal: path/query are omitted from the record.
			e.logger.Warn().Err(err).Msg("setting URL telemetry fields failed")
		}
	}

	scope := telemetry.OpenScope(e.recorder, event)
	defer scope.Close()

	req, err := BuildRequest(auth, grant, header, clientAuth)
	if err != nil {
		return nil, err
	}

	resp, err := e.transport.Send(ctx, req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	event.RecordResponse(resp.StatusCode, resp.Header)

	if resp.StatusCode != http.StatusOK {
		classified := classifyError(resp)
		event.OAuthErrorCode = classifiedCode(classified)
		return nil, classified
	}

	payload, err := parseSuccess(resp.Body)
	if err != nil {
		return nil, err
	}

	// Single wall-clock sample per exchange so the two expiry timestamps
	// cannot skew against each other.
	result, err := assembleResult(payload, auth, e.nowTime())
	if err != nil {
		return nil, err
	}
	return result, nil
}
