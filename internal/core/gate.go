package core

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"eino_agentic_chat/pkg"

	"github.com/cloudwego/eino/components/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("eino_agentic_chat/gate")

// ErrNoFactory indicates the gate was built without a model factory.
var ErrNoFactory = errors.New("model factory not configured")

// Gate runs the ordered precondition checks that decide whether a request may
// reach the model. Each check is a hard gate: the first failure ends the cycle.
type Gate struct {
	factory ModelFactory
	logger  zerolog.Logger
	newID   func() string
}

// GateOption configures a Gate
type GateOption func(*Gate)

// WithLogger sets the logger used for cycle events
func WithLogger(logger zerolog.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithCycleIDs overrides cycle ID generation
func WithCycleIDs(newID func() string) GateOption {
	return func(g *Gate) {
		g.newID = newID
	}
}

// NewGate creates a gating sequence over the given model factory
func NewGate(factory ModelFactory, opts ...GateOption) *Gate {
	g := &Gate{
		factory: factory,
		logger:  log.Logger,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run validates one request cycle:
//  1. selections must be present, else InputMissingError
//  2. an empty message leaves the cycle idle
//  3. the model client is built from the selected credentials, else ModelInitError
//  4. the model handle must be non-nil, else ModelInitError
//  5. a use case must be selected, else ConfigurationError
//
// On success the cycle is ReadyToDispatch with the model handle and use case.
func (g *Gate) Run(ctx context.Context, selections pkg.Selections, message string) (result Result) {
	result = Result{CycleID: g.newID(), State: StateIdle}
	start := time.Now()

	ctx, span := tracer.Start(ctx, "gate.run",
		trace.WithAttributes(attribute.String("cycle.id", result.CycleID)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer func() {
		span.SetAttributes(attribute.String("cycle.state", string(result.State)))
		if result.Err != nil {
			span.RecordError(result.Err)
			span.SetStatus(codes.Error, string(KindOf(result.Err)))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	logger := g.logger.With().Str("cycle_id", result.CycleID).Logger()

	if len(selections) == 0 {
		return g.fail(logger, result, newGateError(KindInputMissing, MsgMissingInput, nil))
	}
	result.State = StateAwaitingMessage

	if strings.TrimSpace(message) == "" {
		logger.Debug().Msg("No user message, waiting for input")
		return result
	}
	result.State = StateValidating

	creds := selections.Credentials()
	logger.Info().
		Str("provider", creds.Provider).
		Str("model", creds.Model).
		Int("message_length", len(message)).
		Msg("Validating request")

	handle, err := g.buildModel(ctx, creds)
	if err != nil {
		return g.fail(logger, result, newGateError(KindModelInit, MsgModelInitFailed, err))
	}
	if isNil(handle) {
		return g.fail(logger, result, newGateError(KindModelInit, MsgModelUnavailable, nil))
	}

	usecase := selections.Usecase()
	if usecase == "" {
		return g.fail(logger, result, newGateError(KindConfiguration, MsgNoUsecase, nil))
	}

	result.State = StateReadyToDispatch
	result.Model = handle
	result.Usecase = usecase

	logger.Info().
		Str("usecase", usecase).
		Dur("elapsed", time.Since(start)).
		Msg("Request ready to dispatch")

	return result
}

func (g *Gate) fail(logger zerolog.Logger, result Result, gerr *GateError) Result {
	event := logger.Warn().Str("kind", string(gerr.Kind)).Str("state", string(result.State))
	if gerr.Err != nil {
		event = event.AnErr("cause", gerr.Err)
	}
	event.Msg(gerr.Message)

	result.State = StateFailed
	result.Err = gerr
	return result
}

// buildModel calls the factory and turns a panic into an error
func (g *Gate) buildModel(ctx context.Context, creds pkg.Credentials) (m model.BaseChatModel, err error) {
	if g.factory == nil {
		return nil, ErrNoFactory
	}
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("model factory panicked: %v", r)
		}
	}()
	return g.factory.NewChatModel(ctx, creds)
}

// isNil also catches typed nil pointers stored in the interface
func isNil(m model.BaseChatModel) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
