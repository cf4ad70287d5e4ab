// Package wizard holds the state of the two-step create-load form: raw input
// values, which fields the user has visited, validation and the payload built
// on submit. It has no rendering; the TUI drives it.
package wizard

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/drumkit/drumkit/internal/load"
)

// Result tells the caller what Next did.
type Result int

const (
	// Blocked: the active step has errors; its fields are now touched.
	Blocked Result = iota
	// Advanced: moved from step 1 to step 2.
	Advanced
	// Submit: the payload is ready and the wizard is submitting.
	Submit
	// Busy: a submission is already in flight.
	Busy
)

func (r Result) String() string {
	switch r {
	case Blocked:
		return "blocked"
	case Advanced:
		return "advanced"
	case Submit:
		return "submit"
	case Busy:
		return "busy"
	default:
		return "unknown"
	}
}

// Outcome is returned by Next. Payload is set only for Submit.
type Outcome struct {
	Result  Result
	Payload load.Load
}

type Wizard struct {
	validate *validator.Validate
	loc      *time.Location

	step       Step
	values     map[Field]string
	touched    map[Field]bool
	submitting bool
	submitErr  error
}

// New returns a blank wizard on step 1. Dates are read in loc.
func New(loc *time.Location) *Wizard {
	if loc == nil {
		loc = time.Local
	}
	w := &Wizard{validate: load.Validator, loc: loc}
	w.reset()
	return w
}

func (w *Wizard) reset() {
	w.step = StepParties
	w.values = initialValues()
	w.touched = map[Field]bool{}
	w.submitting = false
	w.submitErr = nil
}

func (w *Wizard) Step() Step               { return w.step }
func (w *Wizard) Location() *time.Location { return w.loc }
func (w *Wizard) Submitting() bool         { return w.submitting }

// SubmitErr is the error from the last failed submission, if any.
func (w *Wizard) SubmitErr() error { return w.submitErr }

// Progress is the fraction of steps reached, 0.5 on step 1 and 1 on step 2.
func (w *Wizard) Progress() float64 { return float64(w.step) * 0.5 }

func (w *Wizard) Value(f Field) string { return w.values[f] }

// Set stores a raw input value. Unknown fields are ignored.
func (w *Wizard) Set(f Field, v string) {
	if _, ok := specByName[f]; !ok {
		return
	}
	w.values[f] = v
}

func (w *Wizard) Touched(f Field) bool { return w.touched[f] }

// Blur marks a field touched, as when focus leaves its input.
func (w *Wizard) Blur(f Field) {
	if _, ok := specByName[f]; ok {
		w.touched[f] = true
	}
}

// Errors validates the whole form.
func (w *Wizard) Errors() map[Field]string {
	_, errs := evaluate(w.validate, w.values, w.loc)
	return errs
}

// StepErrors is Errors restricted to the fields of step s.
func (w *Wizard) StepErrors(s Step) map[Field]string {
	errs := w.Errors()
	return lo.PickByKeys(errs, StepFieldNames(s))
}

// VisibleErrors are the errors of the active step's touched fields.
func (w *Wizard) VisibleErrors() map[Field]string {
	return lo.PickBy(w.StepErrors(w.step), func(f Field, _ string) bool { return w.touched[f] })
}

// Next validates the active step. With errors it touches exactly that step's
// fields and stays; otherwise it advances from step 1 or, on step 2, builds
// the payload and enters the submitting state.
func (w *Wizard) Next() Outcome {
	if w.submitting {
		return Outcome{Result: Busy}
	}
	fm, errs := evaluate(w.validate, w.values, w.loc)
	names := StepFieldNames(w.step)
	if lo.SomeBy(names, func(f Field) bool { _, bad := errs[f]; return bad }) {
		for _, f := range names {
			w.touched[f] = true
		}
		return Outcome{Result: Blocked}
	}
	if w.step == StepParties {
		w.step = StepSchedule
		return Outcome{Result: Advanced}
	}
	w.submitting = true
	w.submitErr = nil
	return Outcome{Result: Submit, Payload: compose(fm)}
}

// Previous returns to step 1 keeping every value. It is refused while
// submitting.
func (w *Wizard) Previous() bool {
	if w.submitting || w.step == StepParties {
		return false
	}
	w.step = StepParties
	return true
}

// Close discards all input and returns to a blank step 1. A submission
// still in flight is forgotten; its outcome is ignored.
func (w *Wizard) Close() { w.reset() }

// Succeeded ends a submission and resets the form.
func (w *Wizard) Succeeded() {
	if !w.submitting {
		return
	}
	w.reset()
}

// Failed ends a submission, keeping the data and step.
func (w *Wizard) Failed(err error) {
	if !w.submitting {
		return
	}
	w.submitting = false
	w.submitErr = err
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// compose builds the create payload. Missing dates become "".
func compose(fm form) load.Load {
	return load.Load{
		Pickup: load.Stop{
			Name:     fm.PickupName,
			ApptTime: load.ISOTimestamp(fm.PickupDate),
			City:     fm.PickupCity,
			State:    fm.PickupState,
			Country:  load.DefaultCountry,
		},
		Consignee: load.Stop{
			Name:     fm.ConsigneeName,
			ApptTime: load.ISOTimestamp(fm.DeliveryDate),
			City:     fm.ConsigneeCity,
			State:    fm.ConsigneeState,
			Country:  load.DefaultCountry,
		},
		Status: load.Status(fm.Status),
		Customer: load.CustomerRef{
			Name:          fm.CustomerName,
			ExternalTMSID: fm.CustomerTMSID,
		},
		Specifications: load.Specifications{
			MinTempFahrenheit: deref(fm.MinTemp),
			MaxTempFahrenheit: deref(fm.MaxTemp),
		},
		TotalWeight: deref(fm.TotalWeight),
	}
}
