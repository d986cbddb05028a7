package booking

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"
)

// State of the booking flow. Verified is terminal.
type State string

const (
	StateDraft                State = "draft"
	StateSubmitting           State = "submitting"
	StateAwaitingVerification State = "awaiting_verification"
	StateVerifying            State = "verifying"
	StateVerified             State = "verified"
)

// CountdownSeconds is the resend window shown after a submit or resend.
const CountdownSeconds = 90

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

var (
	// ErrNotSignedIn blocks submission before any network call when no
	// identity is available.
	ErrNotSignedIn = errors.New("sign in to make a reservation")
	// ErrInvalidCode rejects malformed OTP input before any network call.
	ErrInvalidCode = errors.New("verification code must be 6 digits")
	// ErrResendUnavailable rejects a resend while the countdown is running.
	ErrResendUnavailable = errors.New("wait for the countdown before resending")
	// ErrBadState rejects an operation the current state does not allow.
	ErrBadState = errors.New("operation not allowed in the current state")
	// ErrClosed is returned once the flow has been torn down.
	ErrClosed = errors.New("booking flow closed")
)

// ValidationError carries field-level failures, either from the local draft
// rules or mapped back from a server response.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string { return "reservation data is invalid" }

// TickerFactory returns a tick channel plus its cancel func. Production uses
// time.Ticker; tests drive the channel by hand.
type TickerFactory func(d time.Duration) (<-chan time.Time, func())

func defaultTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Controller owns one reservation attempt end to end:
//
//	Draft -> Submitting -> AwaitingVerification -> Verifying -> Verified
//
// Submitting and Verifying fall back to their preceding state on failure.
// The countdown ticker is owned by the controller and cancelled on every
// transition out of AwaitingVerification and on Close.
type Controller struct {
	api       API
	identity  IdentityProvider
	validator DraftValidator
	newTicker TickerFactory

	mu               sync.Mutex
	closed           bool
	state            State
	reservationID    uint
	confirmationCode string
	countdown        int
	timerGen         int
	stopTicker       func()
	fieldErrors      FieldErrors
	onTick           func(secondsLeft int)
}

// Option configures a Controller.
type Option func(*Controller)

// WithTicker replaces the countdown ticker source.
func WithTicker(f TickerFactory) Option {
	return func(c *Controller) { c.newTicker = f }
}

// WithTickObserver registers a callback invoked after every countdown
// decrement, for rendering.
func WithTickObserver(f func(secondsLeft int)) Option {
	return func(c *Controller) { c.onTick = f }
}

// WithClock pins the validator's calendar, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.validator.Now = now }
}

func NewController(api API, identity IdentityProvider, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		identity:  identity,
		newTicker: defaultTicker,
		state:     StateDraft,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Countdown returns the seconds left before resend becomes available.
func (c *Controller) Countdown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown
}

// ReservationID is set exactly once per draft, by a successful submit, and
// never mutated afterwards.
func (c *Controller) ReservationID() uint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reservationID
}

// ConfirmationCode returns the human-shown code of the created reservation.
func (c *Controller) ConfirmationCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmationCode
}

// FieldErrors returns the current field-level errors for rendering.
func (c *Controller) FieldErrors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrors
}

// Submit validates the draft, requires a signed-in identity, and creates the
// pending reservation. On success the flow enters AwaitingVerification with a
// fresh 90s countdown. Validation and authentication failures never reach the
// network; server field errors are mapped back onto the draft and the state
// returns to Draft so the user can correct and resubmit.
func (c *Controller) Submit(ctx context.Context, d Draft) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateDraft {
		c.mu.Unlock()
		return ErrBadState
	}

	if errs := c.validator.Validate(d); len(errs) > 0 {
		c.fieldErrors = errs
		c.mu.Unlock()
		return &ValidationError{Fields: errs}
	}

	if _, ok := c.identity.Current(); !ok {
		c.mu.Unlock()
		return ErrNotSignedIn
	}

	c.fieldErrors = nil
	c.state = StateSubmitting
	c.mu.Unlock()

	res, err := c.api.CreateRoomReservation(ctx, d)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// The flow was abandoned while the request was in flight.
		return ErrClosed
	}

	if err != nil {
		c.state = StateDraft
		var reqErr *RequestError
		if errors.As(err, &reqErr) && len(reqErr.FieldErrors) > 0 {
			fields := FieldErrors{}
			for name, msg := range reqErr.FieldErrors {
				fields[name] = FieldError{Code: "server", Message: msg}
			}
			c.fieldErrors = fields
			return &ValidationError{Fields: fields}
		}
		return err
	}

	c.reservationID = res.ID
	c.confirmationCode = res.ConfirmationCode
	c.state = StateAwaitingVerification
	c.startCountdownLocked()
	return nil
}

// Verify checks the code shape locally (exactly 6 digits, no network call
// otherwise) and asks the server to confirm the reservation. A failed attempt
// returns to AwaitingVerification and leaves the countdown untouched; only an
// explicit resend restarts the clock. Success is terminal.
func (c *Controller) Verify(ctx context.Context, code string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateAwaitingVerification {
		c.mu.Unlock()
		return ErrBadState
	}
	if !otpPattern.MatchString(code) {
		c.mu.Unlock()
		return ErrInvalidCode
	}
	id := c.reservationID
	c.state = StateVerifying
	c.mu.Unlock()

	err := c.api.VerifyRoomReservation(ctx, id, code)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	if err != nil {
		c.state = StateAwaitingVerification
		return err
	}

	c.state = StateVerified
	c.cancelTickerLocked()
	return nil
}

// Resend requests a fresh OTP. It is a local no-op error while the countdown
// is still running; the server is only asked once the window has elapsed. On
// success the countdown restarts at 90s, on failure it stays untouched.
func (c *Controller) Resend(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != StateAwaitingVerification {
		c.mu.Unlock()
		return ErrBadState
	}
	if c.countdown > 0 {
		c.mu.Unlock()
		return ErrResendUnavailable
	}
	id := c.reservationID
	c.mu.Unlock()

	err := c.api.ResendRoomOTP(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if err != nil {
		return err
	}
	if c.state == StateAwaitingVerification {
		c.startCountdownLocked()
	}
	return nil
}

// Close tears the flow down: the countdown stops and late responses from any
// in-flight request are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelTickerLocked()
}

// startCountdownLocked resets the countdown to 90s and replaces the ticker.
// Caller holds c.mu.
func (c *Controller) startCountdownLocked() {
	c.cancelTickerLocked()
	c.countdown = CountdownSeconds

	ch, stop := c.newTicker(time.Second)
	c.stopTicker = stop
	c.timerGen++
	gen := c.timerGen

	go func() {
		for range ch {
			c.mu.Lock()
			if c.timerGen != gen {
				c.mu.Unlock()
				return
			}
			// Paused while a verify attempt is in flight.
			if c.state != StateAwaitingVerification {
				c.mu.Unlock()
				continue
			}
			if c.countdown > 0 {
				c.countdown--
			}
			left := c.countdown
			observer := c.onTick
			done := left == 0
			c.mu.Unlock()

			if observer != nil {
				observer(left)
			}
			if done {
				// The window has elapsed; release the ticker so it does
				// not keep firing into an unread channel.
				c.mu.Lock()
				if c.timerGen == gen {
					c.cancelTickerLocked()
				}
				c.mu.Unlock()
				return
			}
		}
	}()
}

// cancelTickerLocked stops the active ticker, if any. Caller holds c.mu.
func (c *Controller) cancelTickerLocked() {
	if c.stopTicker != nil {
		c.stopTicker()
		c.stopTicker = nil
	}
	c.timerGen++
}
