// Package booking drives the multi-step room booking flow: draft validation,
// submission, OTP verification with its resend countdown, and the price
// projection shown while the user picks dates.
package booking

import "time"

// Field error codes surfaced by draft validation.
const (
	CodeMissingField  = "missing_field"
	CodePastDate      = "past_date"
	CodeInvertedRange = "inverted_range"
)

// FieldError is one validation failure attached to a named field.
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrors maps wire field names (check_in, check_out, guests) to their
// current error.
type FieldErrors map[string]FieldError

// Draft is the client-held reservation proposal. It exists from the first
// render of the booking form until submission succeeds or the user leaves.
type Draft struct {
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

// DraftValidator checks a draft against the booking rules. Now is injectable
// so tests can pin the calendar.
type DraftValidator struct {
	Now func() time.Time
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Validate evaluates every rule independently and reports all violations, so
// the form can flag both dates at once. An empty result means the draft is
// submittable. No I/O; safe to call on every keystroke.
func (v DraftValidator) Validate(d Draft) FieldErrors {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	today := dateOnly(now())

	errs := FieldErrors{}

	if d.CheckIn.IsZero() {
		errs["check_in"] = FieldError{Code: CodeMissingField, Message: "check-in date is required"}
	}
	if d.CheckOut.IsZero() {
		errs["check_out"] = FieldError{Code: CodeMissingField, Message: "check-out date is required"}
	}

	// Date-only comparison; time of day is ignored.
	if !d.CheckIn.IsZero() && dateOnly(d.CheckIn).Before(today) {
		errs["check_in"] = FieldError{Code: CodePastDate, Message: "check-in cannot be in the past"}
	}

	if !d.CheckIn.IsZero() && !d.CheckOut.IsZero() {
		if !dateOnly(d.CheckIn).Before(dateOnly(d.CheckOut)) {
			errs["check_out"] = FieldError{Code: CodeInvertedRange, Message: "check-out must be after check-in"}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
