// Package report renders read-only views over the record store: the
// completion summary sent after each submitted form and the /status
// overview of open and closed condition periods.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Awindblowsggggg/Telegrambot/internal/record"
)

// Summary renders the human-readable recap of one finalized record,
// broadcast to the requester and the configured group chat.
func Summary(rec record.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Form completed by: %s\n", rec.SubmittedBy)
	fmt.Fprintf(&b, "1. Vehicle ID: %s\n", rec.VehicleID)
	fmt.Fprintf(&b, "2. Condition: %s\n", rec.Condition)
	fmt.Fprintf(&b, "3. Type: %s\n", rec.Kind)
	fmt.Fprintf(&b, "4. Date: %s\n", rec.Date)
	fmt.Fprintf(&b, "5. Time: %s\n", rec.TimeLabel())
	fmt.Fprintf(&b, "6. Amount: %d\n", rec.Amount)
	fmt.Fprintf(&b, "7. Driver 1: %s\n", rec.Driver1)
	fmt.Fprintf(&b, "8. Driver 2: %s\n", rec.Driver2)
	fmt.Fprintf(&b, "9. Note: %s\n", rec.Note)
	fmt.Fprintf(&b, "10. Tonnage: %d", rec.Tonnage)
	return b.String()
}

// Status renders the open/closed overview from the latest record per
// vehicle. A vehicle whose latest record is a Start has a pending
// condition; a latest End means the last period was closed.
func Status(latest map[string]record.Record) string {
	if len(latest) == 0 {
		return "No records yet."
	}

	ids := make([]string, 0, len(latest))
	for id := range latest {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var open, closed []string
	for _, id := range ids {
		rec := latest[id]
		line := fmt.Sprintf("• %s — %s since %s %s", id, rec.Condition, rec.Date, rec.TimeLabel())
		if rec.Kind == record.KindStart {
			open = append(open, line)
		} else {
			closed = append(closed, fmt.Sprintf("• %s — %s, ended %s %s", id, rec.Condition, rec.Date, rec.TimeLabel()))
		}
	}

	var b strings.Builder
	b.WriteString("📊 Vehicle condition status\n")
	b.WriteString("\n🟢 Open conditions:\n")
	if len(open) == 0 {
		b.WriteString("(none)\n")
	} else {
		b.WriteString(strings.Join(open, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("\n🔴 Closed conditions:\n")
	if len(closed) == 0 {
		b.WriteString("(none)")
	} else {
		b.WriteString(strings.Join(closed, "\n"))
	}
	return strings.TrimRight(b.String(), "\n")
}
