package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/solvewise/internal/content"
	"github.com/abhisek/solvewise/internal/tutorapi"
)

// Sender performs one request against the tutoring API.
type Sender interface {
	Send(ctx context.Context, message string, rc tutorapi.RequestContext) (any, error)
}

// Options configures a Controller.
type Options struct {
	SessionID string
	Topic     string
	Logger    *zap.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string

	// NoWelcome skips the greeting turn.
	NoWelcome bool
}

// Controller owns the conversation state and applies its transitions.
type Controller struct {
	mu     sync.Mutex
	state  State
	sender Sender
	rc     tutorapi.RequestContext
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewController creates a Controller that talks through sender.
func NewController(sender Sender, opts Options) *Controller {
	c := &Controller{
		sender: sender,
		rc:     tutorapi.RequestContext{SessionID: opts.SessionID, Topic: opts.Topic},
		logger: opts.Logger,
		now:    opts.Now,
		newID:  opts.NewID,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = func() string { return uuid.New().String() }
	}
	if !opts.NoWelcome {
		c.state.append(WelcomeTurn(c.now()))
	}
	return c
}

// SessionID returns the session identifier sent with every request.
func (c *Controller) SessionID() string {
	return c.rc.SessionID
}

// Topic returns the topic sent with every request.
func (c *Controller) Topic() string {
	return c.rc.Topic
}

// Turns returns a snapshot of the turns in display order.
func (c *Controller) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Turns()
}

// Pending reports whether a reply is outstanding.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Pending()
}

// Begin appends the user's turn and marks a request as in flight.
func (c *Controller) Begin(text string) (Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Turn{}, ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Pending() {
		return Turn{}, ErrRequestPending
	}

	turn := Turn{
		ID:      c.newID(),
		Role:    RoleUser,
		Content: content.PlainText{Text: text},
		Time:    c.now(),
	}
	c.state.append(turn)
	c.state.setPending(true)
	return turn, nil
}

// Fetch sends text and classifies the reply. It never touches the
// conversation state, so it can run off the UI goroutine. Failures are
// returned as ErrorContent.
func (c *Controller) Fetch(ctx context.Context, text string) content.Content {
	raw, err := c.sender.Send(ctx, strings.TrimSpace(text), c.rc)
	if err != nil {
		c.logger.Warn("tutor request failed",
			zap.Error(err),
			zap.String("session_id", c.rc.SessionID),
		)
		return ErrorContentFor(err)
	}
	return content.Classify(raw)
}

// Complete appends the assistant turn and clears the pending flag.
func (c *Controller) Complete(reply content.Content) Turn {
	if reply == nil {
		reply = content.PlainText{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	turn := Turn{
		ID:      c.newID(),
		Role:    RoleAssistant,
		Content: reply,
		Time:    c.now(),
	}
	c.state.append(turn)
	c.state.setPending(false)
	return turn
}

// Send runs a full exchange synchronously and returns the assistant turn.
func (c *Controller) Send(ctx context.Context, text string) (Turn, error) {
	if _, err := c.Begin(text); err != nil {
		return Turn{}, err
	}
	return c.Complete(c.Fetch(ctx, text)), nil
}

// ErrorContentFor converts a request failure into a displayable turn body.
func ErrorContentFor(err error) content.ErrorContent {
	var te *tutorapi.TransportError
	if errors.As(err, &te) {
		return content.ErrorContent{Explanation: te.Message}
	}
	var fe *tutorapi.FormatError
	if errors.As(err, &fe) {
		return content.ErrorContent{Explanation: fe.Message()}
	}
	return content.ErrorContent{Explanation: err.Error()}
}
