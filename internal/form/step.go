package form

// Step identifies the pending question of a form session. Steps advance
// strictly in the order listed here; the three trailing values are
// terminal.
type Step string

const (
	StepVehicleID Step = "vehicle_id"
	StepCondition Step = "condition"
	StepKind      Step = "kind"
	StepDate      Step = "date"
	StepTime      Step = "time"
	StepMeridiem  Step = "meridiem"
	StepAmount    Step = "amount"
	StepDriver1   Step = "driver1"
	StepDriver2   Step = "driver2"
	StepNote      Step = "note"
	StepTonnage   Step = "tonnage"

	// StepCompleted means all eleven fields were accepted and a record
	// was finalized.
	StepCompleted Step = "completed"
	// StepCancelled means the operator aborted the form.
	StepCancelled Step = "cancelled"
	// StepRejected means the open-period rule refused the chosen kind.
	// Unlike validation failures this ends the session; the operator
	// has to begin again.
	StepRejected Step = "rejected"
)

// Terminal reports whether no further input is expected for this step.
func (s Step) Terminal() bool {
	switch s {
	case StepCompleted, StepCancelled, StepRejected:
		return true
	}
	return false
}
