// Package controller implements the client state machine: it turns user
// intents into sentiment service calls and folds their outcomes into the store.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/five82/moodline/internal/logger"
	"github.com/five82/moodline/internal/sentiment"
	"github.com/five82/moodline/internal/state"
)

// User-facing messages for failures that carry no server detail.
const (
	MsgUnreachable        = "Backend not reachable"
	MsgUnexpectedResponse = "Unexpected response from server"
	unconfiguredURL       = "(not configured)"
)

// Command is a discrete user intent dispatched by the rendering layer.
type Command interface {
	isCommand()
}

// CheckHealthCommand asks for a connectivity check (startup or retry).
type CheckHealthCommand struct{}

// AnalyzeCommand submits conversation text for analysis.
type AnalyzeCommand struct {
	Text string
}

func (CheckHealthCommand) isCommand() {}
func (AnalyzeCommand) isCommand()     {}

// Controller owns the transitions of a state.Store.
type Controller struct {
	store   *state.Store
	service sentiment.Service
	log     logrus.FieldLogger
}

// New builds a Controller. A nil log discards output.
func New(store *state.Store, service sentiment.Service, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{store: store, service: service, log: log}
}

// Store returns the store the controller writes to.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Dispatch routes cmd to its operation. It reports whether the command
// resulted in a network call.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) bool {
	switch cmd := cmd.(type) {
	case CheckHealthCommand:
		c.CheckHealth(ctx)
		return true
	case AnalyzeCommand:
		return c.Analyze(ctx, cmd.Text)
	default:
		c.log.WithField("command", fmt.Sprintf("%T", cmd)).Warn("ignoring unknown command")
		return false
	}
}

// CheckHealth probes the service once and records the outcome.
func (c *Controller) CheckHealth(ctx context.Context) {
	if err := c.service.Health(ctx); err != nil {
		entry := c.log.WithError(err).WithField("base_url", c.service.BaseURL())
		if sentiment.IsUnreachable(err) {
			entry.Warn("sentiment service unreachable")
		} else {
			entry.Warn("health check rejected")
		}
		c.store.SetHealth(false, HealthMessage(c.service.BaseURL()))
		return
	}
	c.log.Debug("health check ok")
	c.store.SetHealth(true, "")
}

// Analyze submits rawText. It returns false without touching the network when
// the text holds no sentences, a request is already in flight, or the service
// is in error.
func (c *Controller) Analyze(ctx context.Context, rawText string) bool {
	sentences := sentiment.SplitConversation(rawText)
	if len(sentences) == 0 {
		return false
	}
	if !c.store.BeginAnalysis() {
		c.log.Debug("analysis refused: busy or service in error")
		return false
	}

	entry := c.log.WithField("sentences", len(sentences))
	results, err := c.service.Predict(ctx, sentences)
	if err != nil {
		msg := FailureMessage(err)
		entry.WithError(err).WithField("message", msg).Warn("analysis failed")
		c.store.FailAnalysis(msg)
		return true
	}
	entry.WithField("results", len(results)).Info("analysis complete")
	c.store.FinishAnalysis(results)
	return true
}

// HealthMessage is the diagnostic shown when the service at baseURL cannot be
// reached.
func HealthMessage(baseURL string) string {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = unconfiguredURL
	}
	return "Cannot reach sentiment service at " + baseURL
}

// FailureMessage converts a Predict error into the message shown to the user.
func FailureMessage(err error) string {
	var statusErr *sentiment.StatusError
	switch {
	case errors.As(err, &statusErr):
		if statusErr.Detail != "" {
			return statusErr.Detail
		}
		return fmt.Sprintf("Server error %d", statusErr.StatusCode)
	case errors.Is(err, sentiment.ErrMalformedResponse):
		return MsgUnexpectedResponse
	default:
		return MsgUnreachable
	}
}
