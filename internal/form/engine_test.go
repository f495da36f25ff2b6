package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Awindblowsggggg/Telegrambot/internal/catalog"
	"github.com/Awindblowsggggg/Telegrambot/internal/record"
)

type stubLookup struct {
	rec   record.Record
	found bool
	err   error
}

func (s stubLookup) MostRecentFor(context.Context, string) (record.Record, bool, error) {
	return s.rec, s.found, s.err
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		VehicleRows:   [][]string{{"4227", "4242"}},
		ConditionRows: [][]string{{"Listo", "MC"}},
		Drivers:       []string{"Raidel Castel Neyra", "Serguei Lago López"},
	}
}

func feed(t *testing.T, e *Engine, s *Session, input string) Result {
	t.Helper()
	res, err := e.Handle(context.Background(), s, input)
	require.NoError(t, err)
	return res
}

func TestFullWalkthrough(t *testing.T) {
	e := NewEngine(testCatalog(), stubLookup{})
	s, greeting := e.Begin(100, "Ana")

	assert.Equal(t, StepVehicleID, s.Step)
	assert.Contains(t, greeting.Text, "vehicle ID")
	assert.NotEmpty(t, greeting.Choices)

	feed(t, e, s, "4227")
	assert.Equal(t, StepCondition, s.Step)

	feed(t, e, s, "Listo")
	assert.Equal(t, StepKind, s.Step)

	feed(t, e, s, "Start")
	assert.Equal(t, StepDate, s.Step)

	feed(t, e, s, "16/03/2025")
	assert.Equal(t, StepTime, s.Step)

	feed(t, e, s, "2:30")
	assert.Equal(t, StepMeridiem, s.Step)

	feed(t, e, s, "PM")
	assert.Equal(t, StepAmount, s.Step)

	feed(t, e, s, "1500")
	assert.Equal(t, StepDriver1, s.Step)

	feed(t, e, s, "Raidel Castel Neyra")
	assert.Equal(t, StepDriver2, s.Step)

	feed(t, e, s, "Serguei Lago López")
	assert.Equal(t, StepNote, s.Step)

	feed(t, e, s, "all good")
	assert.Equal(t, StepTonnage, s.Step)

	res := feed(t, e, s, "20")
	assert.Equal(t, StepCompleted, s.Step)
	require.NotNil(t, res.Record)

	rec := *res.Record
	assert.Equal(t, "4227", rec.VehicleID)
	assert.Equal(t, "Listo", rec.Condition)
	assert.Equal(t, record.KindStart, rec.Kind)
	assert.Equal(t, "16/03/2025", rec.Date)
	assert.Equal(t, "2:30 PM", rec.TimeLabel())
	assert.Equal(t, int64(1500), rec.Amount)
	assert.Equal(t, 20, rec.Tonnage)
	assert.Equal(t, "Ana", rec.SubmittedBy)
}

func TestInvalidAnswersKeepStep(t *testing.T) {
	e := NewEngine(testCatalog(), stubLookup{})
	s, _ := e.Begin(100, "Ana")
	feed(t, e, s, "4227")
	feed(t, e, s, "Listo")
	feed(t, e, s, "Start")

	res := feed(t, e, s, "31/02/2025")
	assert.Equal(t, StepDate, s.Step)
	assert.Contains(t, res.Messages[0].Text, "not a valid date")

	feed(t, e, s, "16/03/2025")
	res = feed(t, e, s, "2:3")
	assert.Equal(t, StepTime, s.Step)
	assert.Contains(t, res.Messages[0].Text, "Wrong format")

	feed(t, e, s, "02:30")
	feed(t, e, s, "AM")

	res = feed(t, e, s, "12a")
	assert.Equal(t, StepAmount, s.Step)
	assert.Contains(t, res.Messages[0].Text, "must be a number")
}

func TestKindRetryOnUnknownLabel(t *testing.T) {
	e := NewEngine(testCatalog(), stubLookup{})
	s, _ := e.Begin(100, "Ana")
	feed(t, e, s, "4227")
	feed(t, e, s, "Listo")

	res := feed(t, e, s, "maybe")
	assert.Equal(t, StepKind, s.Step)
	assert.Contains(t, res.Messages[0].Text, "Choose the type")
}

func TestStartRejectedWhileOpen(t *testing.T) {
	open := record.Record{
		VehicleID: "4227", Kind: record.KindStart,
		Date: "10/03/2025", Time: "9:00", Meridiem: "AM",
	}
	e := NewEngine(testCatalog(), stubLookup{rec: open, found: true})
	s, _ := e.Begin(100, "Ana")
	feed(t, e, s, "4227")
	feed(t, e, s, "Listo")

	res := feed(t, e, s, "Start")
	assert.Equal(t, StepRejected, s.Step)
	require.Len(t, res.Messages, 1)
	assert.Contains(t, res.Messages[0].Text, "4227")
	assert.Contains(t, res.Messages[0].Text, "10/03/2025")
	assert.Contains(t, res.Messages[0].Text, "9:00 AM")
	assert.True(t, res.Messages[0].RemoveChoices)
	assert.Nil(t, res.Record)
}

func TestEndRejectedWithoutOpen(t *testing.T) {
	t.Run("no records at all", func(t *testing.T) {
		e := NewEngine(testCatalog(), stubLookup{})
		s, _ := e.Begin(100, "Ana")
		feed(t, e, s, "4227")
		feed(t, e, s, "Listo")

		res := feed(t, e, s, "End")
		assert.Equal(t, StepRejected, s.Step)
		assert.Contains(t, res.Messages[0].Text, "no open condition")
	})

	t.Run("latest is already an End", func(t *testing.T) {
		closed := record.Record{
			VehicleID: "4227", Kind: record.KindEnd,
			Date: "10/03/2025", Time: "5:00", Meridiem: "PM",
		}
		e := NewEngine(testCatalog(), stubLookup{rec: closed, found: true})
		s, _ := e.Begin(100, "Ana")
		feed(t, e, s, "4227")
		feed(t, e, s, "Listo")

		res := feed(t, e, s, "End")
		assert.Equal(t, StepRejected, s.Step)
		assert.Contains(t, res.Messages[0].Text, "already an End")
	})
}

func TestEndAfterOpenProceeds(t *testing.T) {
	open := record.Record{
		VehicleID: "4227", Kind: record.KindStart,
		Date: "10/03/2025", Time: "9:00", Meridiem: "AM",
	}
	e := NewEngine(testCatalog(), stubLookup{rec: open, found: true})
	s, _ := e.Begin(100, "Ana")
	feed(t, e, s, "4227")
	feed(t, e, s, "Listo")

	res := feed(t, e, s, "End")
	assert.Equal(t, StepDate, s.Step)
	require.GreaterOrEqual(t, len(res.Messages), 2)
	assert.Contains(t, res.Messages[0].Text, "Closing the condition")
}

func TestLookupErrorHoldsStep(t *testing.T) {
	e := NewEngine(testCatalog(), stubLookup{err: errors.New("disk gone")})
	s, _ := e.Begin(100, "Ana")
	feed(t, e, s, "4227")
	feed(t, e, s, "Listo")

	_, err := e.Handle(context.Background(), s, "Start")
	require.Error(t, err)
	assert.Equal(t, StepKind, s.Step)
}

func TestCancel(t *testing.T) {
	e := NewEngine(testCatalog(), stubLookup{})
	s, _ := e.Begin(100, "Ana")
	feed(t, e, s, "4227")

	msg := e.Cancel(s)
	assert.Equal(t, StepCancelled, s.Step)
	assert.Equal(t, "Form cancelled.", msg.Text)
	assert.True(t, msg.RemoveChoices)
	assert.True(t, s.Step.Terminal())
}

func TestSessionsRegistry(t *testing.T) {
	reg := NewSessions()
	assert.False(t, reg.Active(1))

	reg.Put(&Session{ChatID: 1, Step: StepVehicleID})
	assert.True(t, reg.Active(1))
	sess, ok := reg.Get(1)
	require.True(t, ok)
	assert.Equal(t, StepVehicleID, sess.Step)

	reg.Remove(1)
	assert.False(t, reg.Active(1))
}
