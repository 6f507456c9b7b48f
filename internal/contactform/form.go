// Package contactform models the portfolio contact form: three bound
// fields, a submitting gate, and the status shown after each attempt.
package contactform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"portfolio-contact-api/internal/domain"
)

const (
	MsgSent          = "メッセージを送信しました！"
	MsgSendFailed    = "送信に失敗しました"
	MsgNetworkError  = "ネットワークエラーが発生しました"
	MsgFillAllFields = "全ての項目を入力してください"
)

var (
	// ErrAlreadySubmitting is returned while a submission is in flight
	ErrAlreadySubmitting = errors.New("contactform: submission already in progress")
	// ErrIncomplete is returned when a field is empty; nothing is sent
	ErrIncomplete = errors.New("contactform: all fields are required")
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Status is what the form shows under the submit button
type Status struct {
	State   State
	Message string
}

// Snapshot is a consistent copy of the form passed to change observers
type Snapshot struct {
	Values domain.ContactRequest
	Status Status
}

// Submitter posts a contact request to the endpoint. A non-nil error means
// the request never got an HTTP response.
type Submitter interface {
	PostContact(ctx context.Context, req domain.ContactRequest) (*Result, error)
}

// Result is the endpoint's answer
type Result struct {
	StatusCode int
	// Error is the endpoint's error message, empty when it sent none
	Error string
}

func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

type Form struct {
	mu        sync.Mutex
	values    domain.ContactRequest
	status    Status
	submitter Submitter
	onChange  func(Snapshot)
}

type Option func(*Form)

// WithOnChange registers an observer called after every state transition
func WithOnChange(fn func(Snapshot)) Option {
	return func(f *Form) {
		f.onChange = fn
	}
}

func New(submitter Submitter, opts ...Option) *Form {
	f := &Form{
		submitter: submitter,
		status:    Status{State: StateIdle},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Set updates one bound field
func (f *Form) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldName:
		f.values.Name = value
	case FieldEmail:
		f.values.Email = value
	case FieldMessage:
		f.values.Message = value
	default:
		return fmt.Errorf("contactform: unknown field %q", field)
	}
	return nil
}

func (f *Form) Values() domain.ContactRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submitting reports whether the submit control should be disabled
func (f *Form) Submitting() bool {
	return f.Status().State == StateSubmitting
}

// Submit sends the current values once and records the outcome. Fields are
// cleared only on success. There is no retry; the caller resubmits.
// The form always leaves StateSubmitting, even if the submitter panics.
func (f *Form) Submit(ctx context.Context) (st Status, err error) {
	f.mu.Lock()
	if f.status.State == StateSubmitting {
		f.mu.Unlock()
		return Status{State: StateSubmitting}, ErrAlreadySubmitting
	}
	if f.values.Name == "" || f.values.Email == "" || f.values.Message == "" {
		cur := f.status
		f.mu.Unlock()
		return cur, ErrIncomplete
	}
	req := f.values
	f.status = Status{State: StateSubmitting}
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)

	// unless a reply says otherwise the attempt counts as a network failure
	st = Status{State: StateError, Message: MsgNetworkError}
	sent := false
	defer func() {
		f.mu.Lock()
		f.status = st
		if sent {
			f.values = domain.ContactRequest{}
		}
		snap := f.snapshotLocked()
		f.mu.Unlock()
		f.notify(snap)
	}()

	res, postErr := f.submitter.PostContact(ctx, req)
	switch {
	case postErr != nil, res == nil:
	case res.OK():
		st = Status{State: StateSuccess, Message: MsgSent}
		sent = true
	default:
		msg := res.Error
		if msg == "" {
			msg = MsgSendFailed
		}
		st = Status{State: StateError, Message: msg}
	}

	return st, nil
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{Values: f.values, Status: f.status}
}

func (f *Form) notify(s Snapshot) {
	if f.onChange != nil {
		f.onChange(s)
	}
}
