package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Awindblowsggggg/Telegrambot/internal/record"
)

func TestSummary(t *testing.T) {
	rec := record.Record{
		VehicleID:   "4227",
		Condition:   "Listo",
		Kind:        record.KindStart,
		Date:        "16/03/2025",
		Time:        "2:30",
		Meridiem:    "PM",
		Amount:      1500,
		Driver1:     "Raidel Castel Neyra",
		Driver2:     "Serguei Lago López",
		Note:        "all good",
		Tonnage:     20,
		SubmittedBy: "Ana",
	}

	got := Summary(rec)
	lines := strings.Split(got, "\n")
	assert.Equal(t, "Form completed by: Ana", lines[0])
	assert.Equal(t, "1. Vehicle ID: 4227", lines[1])
	assert.Equal(t, "3. Type: Start", lines[3])
	assert.Equal(t, "5. Time: 2:30 PM", lines[5])
	assert.Equal(t, "10. Tonnage: 20", lines[10])
	assert.Len(t, lines, 11)
}

func TestStatusEmpty(t *testing.T) {
	assert.Equal(t, "No records yet.", Status(nil))
	assert.Equal(t, "No records yet.", Status(map[string]record.Record{}))
}

func TestStatusSplitsOpenAndClosed(t *testing.T) {
	latest := map[string]record.Record{
		"VW1": {
			VehicleID: "VW1", Condition: "MC", Kind: record.KindStart,
			Date: "10/03/2025", Time: "9:00", Meridiem: "AM",
		},
		"4227": {
			VehicleID: "4227", Condition: "Listo", Kind: record.KindEnd,
			Date: "11/03/2025", Time: "2:30", Meridiem: "PM",
		},
	}

	got := Status(latest)
	assert.Contains(t, got, "🟢 Open conditions:")
	assert.Contains(t, got, "• VW1 — MC since 10/03/2025 9:00 AM")
	assert.Contains(t, got, "🔴 Closed conditions:")
	assert.Contains(t, got, "• 4227 — Listo, ended 11/03/2025 2:30 PM")

	openIdx := strings.Index(got, "🟢")
	closedIdx := strings.Index(got, "🔴")
	assert.Less(t, openIdx, closedIdx)
}

func TestStatusNoneMarkers(t *testing.T) {
	onlyOpen := map[string]record.Record{
		"VW1": {
			VehicleID: "VW1", Condition: "MC", Kind: record.KindStart,
			Date: "10/03/2025", Time: "9:00", Meridiem: "AM",
		},
	}
	got := Status(onlyOpen)
	assert.Contains(t, got, "(none)")
}
