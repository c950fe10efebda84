// Package login implements the login form workflow: credential entry,
// local validation, the remote login call and the decision of where to go
// (or what to show) once it resolves.
//
// A Workflow is driven from a single event loop. Submit never blocks: it
// returns a Call the host runs off the loop, and the host hands the Result
// back through Complete.
package login

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/carelogin/internal/auth"
)

// DefaultToastDuration is how long a failure notification stays visible.
const DefaultToastDuration = 2500 * time.Millisecond

// ErrNoPatients marks a success payload without any patient identifier.
var ErrNoPatients = errors.New("login: response has no patients")

// Field identifies one of the two form inputs.
type Field int

const (
	FieldUsername Field = iota
	FieldPassword
)

// State is the workflow's position in a login attempt.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateAwaitingResponse
	StateNavigatedAway
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAwaitingResponse:
		return "awaiting_response"
	case StateNavigatedAway:
		return "navigated_away"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Credentials are the raw field values.
type Credentials struct {
	Username string
	Password string
}

// Validation holds the per-field error flags.
type Validation struct {
	UsernameInvalid bool
	PasswordInvalid bool
}

// Valid reports whether neither flag is set.
func (v Validation) Valid() bool { return !v.UsernameInvalid && !v.PasswordInvalid }

// OutcomeKind tags an Outcome.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeFailure
)

// Outcome is the classified result of one remote login call.
type Outcome struct {
	Kind      OutcomeKind
	PatientID string    // set on success
	Failure   auth.Kind // set on failure
	Err       error     // underlying cause on failure, for logging only
}

// Success builds a successful outcome.
func Success(patientID string) Outcome {
	return Outcome{Kind: OutcomeSuccess, PatientID: patientID}
}

// Failure builds a failed outcome classified from err.
func Failure(err error) Outcome {
	return Outcome{Kind: OutcomeFailure, Failure: auth.KindOf(err), Err: err}
}

// outcomeOf classifies a login response.
func outcomeOf(resp auth.LoginResponse, err error) Outcome {
	if err != nil {
		return Failure(err)
	}
	// TODO: support accounts with several patients; only the first is used.
	if len(resp.User.Patients) == 0 {
		return Failure(auth.Generic("login", 0, ErrNoPatients))
	}
	return Success(resp.User.Patients[0])
}

// Result pairs an outcome with the attempt that produced it.
type Result struct {
	Attempt uuid.UUID
	Outcome Outcome
}

// Call performs the remote call of one attempt. It touches no workflow
// state and is safe to run on another goroutine.
type Call func(ctx context.Context) Result

// Notification is a transient message for the notification collaborator.
type Notification struct {
	Text     string
	Duration time.Duration
}

type Navigator interface {
	// Reset replaces the navigation history with a single route.
	Reset(Route)
	Navigate(Screen)
}

type Notifier interface {
	Show(Notification)
}

type Translator interface {
	T(key string) string
}

type Locale interface {
	IsUS() bool
}

type FocusRequester interface {
	RequestFocus(Field)
}

// Deps are the collaborators a Workflow drives.
type Deps struct {
	Auth          auth.Client
	Navigator     Navigator
	Notifier      Notifier
	Translator    Translator
	Locale        Locale
	Focus         FocusRequester
	Logger        zerolog.Logger
	ToastDuration time.Duration
}

// Workflow owns the state of one mounted login screen.
type Workflow struct {
	deps Deps

	creds      Credentials
	validation Validation
	state      State
	errMessage string
	attempt    uuid.UUID
}

func New(deps Deps) *Workflow {
	if deps.ToastDuration <= 0 {
		deps.ToastDuration = DefaultToastDuration
	}
	return &Workflow{deps: deps, state: StateIdle}
}

func (w *Workflow) Credentials() Credentials { return w.creds }
func (w *Workflow) Validation() Validation   { return w.validation }
func (w *Workflow) State() State             { return w.state }
func (w *Workflow) InFlight() bool           { return w.state == StateAwaitingResponse }

// ErrorMessage is the translated message of the last failed attempt.
func (w *Workflow) ErrorMessage() string { return w.errMessage }

// SetUsername stores the raw value and clears the username flag.
func (w *Workflow) SetUsername(v string) {
	w.creds.Username = v
	if w.validation.UsernameInvalid {
		w.validation.UsernameInvalid = false
	}
}

// SetPassword stores the raw value and clears the password flag.
func (w *Workflow) SetPassword(v string) {
	w.creds.Password = v
	if w.validation.PasswordInvalid {
		w.validation.PasswordInvalid = false
	}
}

// UsernameDone handles the "next" action on the username field.
func (w *Workflow) UsernameDone() {
	if w.deps.Focus != nil {
		w.deps.Focus.RequestFocus(FieldPassword)
	}
}

func (w *Workflow) CreateAccount() {
	if w.deps.Navigator != nil && w.state != StateClosed {
		w.deps.Navigator.Navigate(ScreenRegister)
	}
}

func (w *Workflow) ForgotPassword() {
	if w.deps.Navigator != nil && w.state != StateClosed {
		w.deps.Navigator.Navigate(ScreenResetPassword)
	}
}

// Close marks the screen as unmounted. Results arriving later are dropped.
func (w *Workflow) Close() {
	w.state = StateClosed
	w.attempt = uuid.Nil
}

// Submit validates the form and, when it passes, returns the remote call to
// run. It returns nil when the form is invalid, when a call is already in
// flight, or when the workflow can no longer submit.
func (w *Workflow) Submit() Call {
	switch w.state {
	case StateAwaitingResponse:
		w.deps.Logger.Debug().Str("attempt", w.attempt.String()).Msg("submit ignored: login in flight")
		return nil
	case StateClosed, StateNavigatedAway:
		return nil
	}

	w.state = StateValidating
	w.errMessage = ""
	username := strings.TrimSpace(w.creds.Username)
	password := w.creds.Password
	w.validation = Validation{
		UsernameInvalid: username == "",
		PasswordInvalid: password == "",
	}
	if !w.validation.Valid() {
		w.state = StateIdle
		w.deps.Logger.Debug().
			Bool("username_invalid", w.validation.UsernameInvalid).
			Bool("password_invalid", w.validation.PasswordInvalid).
			Msg("login form rejected")
		return nil
	}

	attempt := uuid.New()
	w.attempt = attempt
	w.state = StateAwaitingResponse
	w.deps.Logger.Info().Str("attempt", attempt.String()).Msg("login submitted")

	client := w.deps.Auth
	return func(ctx context.Context) Result {
		if client == nil {
			return Result{Attempt: attempt, Outcome: Failure(errors.New("login: no auth client configured"))}
		}
		resp, err := client.Login(ctx, username, password)
		return Result{Attempt: attempt, Outcome: outcomeOf(resp, err)}
	}
}

// Complete applies a resolved call. Results for a closed workflow or for an
// attempt other than the one in flight are ignored.
func (w *Workflow) Complete(r Result) {
	if w.state != StateAwaitingResponse || r.Attempt != w.attempt {
		w.deps.Logger.Debug().
			Str("attempt", r.Attempt.String()).
			Str("state", w.state.String()).
			Msg("stale login result dropped")
		return
	}
	w.attempt = uuid.Nil

	log := w.deps.Logger.With().Str("attempt", r.Attempt.String()).Logger()
	switch r.Outcome.Kind {
	case OutcomeSuccess:
		target := TargetFor(w.deps.Locale)
		w.state = StateNavigatedAway
		log.Info().Str("target", string(target)).Msg("login succeeded")
		if w.deps.Navigator != nil {
			w.deps.Navigator.Reset(Route{Screen: target, Params: Params{PatientID: r.Outcome.PatientID}})
		}
	default:
		w.state = StateIdle
		w.errMessage = w.translate(MessageKey(r.Outcome.Failure))
		log.Warn().Err(r.Outcome.Err).Str("kind", r.Outcome.Failure.String()).Msg("login failed")
		if w.deps.Notifier != nil {
			w.deps.Notifier.Show(Notification{Text: w.errMessage, Duration: w.deps.ToastDuration})
		}
	}
}

// Run submits and waits for the result on the calling goroutine.
func (w *Workflow) Run(ctx context.Context) {
	call := w.Submit()
	if call == nil {
		return
	}
	w.Complete(call(ctx))
}

func (w *Workflow) translate(key string) string {
	if w.deps.Translator == nil {
		return key
	}
	return w.deps.Translator.T(key)
}
