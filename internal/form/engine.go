// Package form implements the eleven-step wizard that collects one
// vehicle condition record. The engine is a pure request/response state
// machine: it never talks to Telegram itself, it only returns the
// messages the transport adapter should send. The single external
// dependency is a recency lookup used by the open-period rule.
package form

import (
	"context"
	"fmt"

	"github.com/Awindblowsggggg/Telegrambot/core/logger"
	"github.com/Awindblowsggggg/Telegrambot/internal/catalog"
	"github.com/Awindblowsggggg/Telegrambot/internal/record"
	"log/slog"
)

// Message is one outbound reply produced by a transition. Choices, when
// present, are suggestion rows for a reply keyboard; RemoveChoices asks
// the transport to take a previously shown keyboard down.
type Message struct {
	Text          string
	Choices       [][]string
	RemoveChoices bool
}

// Result is what a single Handle call produced: the replies to send
// and, only when the session just completed, the finalized record.
type Result struct {
	Messages []Message
	Record   *record.Record
}

// RecentLookup answers "what is the latest record for this vehicle".
// The record store satisfies it.
type RecentLookup interface {
	MostRecentFor(ctx context.Context, vehicleID string) (record.Record, bool, error)
}

// Engine drives form sessions. It is stateless apart from its
// configuration; all per-conversation state lives in the Session.
type Engine struct {
	catalog *catalog.Catalog
	recent  RecentLookup
}

// NewEngine builds an engine over the option catalog and a recency lookup.
func NewEngine(cat *catalog.Catalog, recent RecentLookup) *Engine {
	return &Engine{catalog: cat, recent: recent}
}

// Begin creates a session positioned at the first question and returns
// it together with the opening prompt.
func (e *Engine) Begin(chatID int64, submittedBy string) (*Session, Message) {
	sess := &Session{
		ChatID:      chatID,
		SubmittedBy: submittedBy,
		Step:        StepVehicleID,
	}
	return sess, Message{
		Text:    "Hello! Let's fill in the form 🧾.\n\n1️⃣ Pick the vehicle ID 🚛:",
		Choices: e.catalog.VehicleRows,
	}
}

// Prompt returns the question for the session's current step, used to
// re-show the pending question when the operator re-issues begin.
func (e *Engine) Prompt(s *Session) Message {
	return e.prompt(s.Step)
}

// Cancel moves the session to the cancelled terminal step. No record is
// produced and nothing is persisted.
func (e *Engine) Cancel(s *Session) Message {
	s.Step = StepCancelled
	return Message{Text: "Form cancelled.", RemoveChoices: true}
}

// Handle feeds one text answer into the session. Validation failures
// re-prompt and keep the step; the open-period rule at the kind step is
// the only failure that terminates the session. The returned error is
// reserved for store lookup faults, in which case the step is held so
// the answer can be retried.
func (e *Engine) Handle(ctx context.Context, s *Session, input string) (Result, error) {
	switch s.Step {
	case StepVehicleID:
		s.Draft.VehicleID = input
		return e.advance(s, StepCondition), nil

	case StepCondition:
		s.Draft.Condition = input
		return e.advance(s, StepKind), nil

	case StepKind:
		return e.handleKind(ctx, s, input)

	case StepDate:
		if !validDate(input) {
			return retry(Message{Text: "That is not a valid date. Try again 📆 (day/month/year):"}), nil
		}
		s.Draft.Date = input
		return e.advance(s, StepTime), nil

	case StepTime:
		if !validTime(input) {
			return retry(Message{Text: "Wrong format. Try again ⏰ (hour:minutes):"}), nil
		}
		s.Draft.Time = input
		return e.advance(s, StepMeridiem), nil

	case StepMeridiem:
		s.Draft.Meridiem = input
		return e.advance(s, StepAmount), nil

	case StepAmount:
		n, ok := parseAmount(input)
		if !ok {
			return retry(Message{Text: "The amount must be a number. Try again:"}), nil
		}
		s.Draft.Amount = n
		return e.advance(s, StepDriver1), nil

	case StepDriver1:
		s.Draft.Driver1 = input
		return e.advance(s, StepDriver2), nil

	case StepDriver2:
		s.Draft.Driver2 = input
		return e.advance(s, StepNote), nil

	case StepNote:
		s.Draft.Note = input
		return e.advance(s, StepTonnage), nil

	case StepTonnage:
		n, ok := parseTonnage(input)
		if !ok {
			return retry(Message{Text: "The value must be a number between 1 and 100. Try again:"}), nil
		}
		s.Draft.Tonnage = n
		s.Draft.SubmittedBy = s.SubmittedBy
		s.Step = StepCompleted
		rec := s.Draft
		logger.Info(ctx, "service.form", "form.completed",
			slog.String("status", "ok"),
			slog.String("vehicle_id", rec.VehicleID),
			slog.String("kind", string(rec.Kind)),
		)
		return Result{Record: &rec}, nil
	}

	return Result{}, fmt.Errorf("form: no input expected in step %q", s.Step)
}

// handleKind validates the Start/End answer and applies the open-period
// rule against the latest stored record for the chosen vehicle.
func (e *Engine) handleKind(ctx context.Context, s *Session, input string) (Result, error) {
	kind, ok := record.ParseKind(input)
	if !ok {
		return retry(Message{
			Text:    "Choose the type (✅Start/❌End):",
			Choices: [][]string{{string(record.KindStart), string(record.KindEnd)}},
		}), nil
	}

	last, found, err := e.recent.MostRecentFor(ctx, s.Draft.VehicleID)
	if err != nil {
		return Result{}, fmt.Errorf("form: recency lookup for %s: %w", s.Draft.VehicleID, err)
	}

	switch kind {
	case record.KindStart:
		if found && last.Kind == record.KindStart {
			return e.reject(ctx, s, fmt.Sprintf(
				"A new form cannot be started for vehicle 🚛 %s: a Start from %s %s is still open. Please end the previous condition before starting a new one.",
				s.Draft.VehicleID, last.Date, last.TimeLabel(),
			))
		}
	case record.KindEnd:
		if !found {
			return e.reject(ctx, s, fmt.Sprintf(
				"Vehicle 🚛 %s has no open condition to end. Start one first.",
				s.Draft.VehicleID,
			))
		}
		if last.Kind == record.KindEnd {
			return e.reject(ctx, s, fmt.Sprintf(
				"Vehicle 🚛 %s has no open condition to end: the last record (%s %s) is already an End.",
				s.Draft.VehicleID, last.Date, last.TimeLabel(),
			))
		}
	}

	s.Draft.Kind = kind
	res := e.advance(s, StepDate)
	if kind == record.KindEnd {
		res.Messages = append([]Message{{
			Text:          "Closing the condition. Please fill in the remaining fields.",
			RemoveChoices: true,
		}}, res.Messages...)
	}
	return res, nil
}

func (e *Engine) reject(ctx context.Context, s *Session, text string) (Result, error) {
	s.Step = StepRejected
	logger.Warn(ctx, "service.form", "form.rejected",
		slog.String("status", "fail"),
		slog.String("vehicle_id", s.Draft.VehicleID),
	)
	return Result{Messages: []Message{{Text: text, RemoveChoices: true}}}, nil
}

func (e *Engine) advance(s *Session, next Step) Result {
	s.Step = next
	return Result{Messages: []Message{e.prompt(next)}}
}

func retry(msg Message) Result {
	return Result{Messages: []Message{msg}}
}

func (e *Engine) prompt(step Step) Message {
	switch step {
	case StepVehicleID:
		return Message{
			Text:    "1️⃣ Pick the vehicle ID 🚛:",
			Choices: e.catalog.VehicleRows,
		}
	case StepCondition:
		return Message{
			Text:    "2️⃣ Pick the condition ♻️:",
			Choices: e.catalog.ConditionRows,
		}
	case StepKind:
		return Message{
			Text:    "3️⃣ Choose the type (✅Start/❌End):",
			Choices: [][]string{{string(record.KindStart), string(record.KindEnd)}},
		}
	case StepDate:
		return Message{
			Text:          "4️⃣ Enter the date as day/month/year 📆 (example: 16/03/2025):",
			RemoveChoices: true,
		}
	case StepTime:
		return Message{Text: "5️⃣ Enter the time as hour:minutes ⏰ (example: 02:30):"}
	case StepMeridiem:
		return Message{
			Text:    "Is that AM or PM?",
			Choices: [][]string{{"AM", "PM"}},
		}
	case StepAmount:
		return Message{
			Text:          "6️⃣ Enter the amount as a number:",
			RemoveChoices: true,
		}
	case StepDriver1:
		return Message{
			Text:    "7️⃣ Pick Driver 1:",
			Choices: e.catalog.DriverRows(),
		}
	case StepDriver2:
		return Message{
			Text:    "8️⃣ Pick Driver 2:",
			Choices: e.catalog.DriverRows(),
		}
	case StepNote:
		return Message{
			Text:          "9. Write any note:",
			RemoveChoices: true,
		}
	case StepTonnage:
		return Message{Text: "10. Enter the tonnage (1-100):"}
	}
	return Message{}
}
