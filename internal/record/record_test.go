package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(vehicle, date, tm, mer string, kind Kind) Record {
	return Record{VehicleID: vehicle, Kind: kind, Date: date, Time: tm, Meridiem: mer}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("Start")
	assert.True(t, ok)
	assert.Equal(t, KindStart, k)

	k, ok = ParseKind("End")
	assert.True(t, ok)
	assert.Equal(t, KindEnd, k)

	for _, in := range []string{"start", "END", "Begin", ""} {
		_, ok := ParseKind(in)
		assert.False(t, ok, "kind %q", in)
	}
}

func TestKey(t *testing.T) {
	r := rec("4227", "16/03/2025", "2:30", "PM", KindStart)
	assert.Equal(t, "4227_16/03/2025_2:30 PM", r.Key())
}

func TestMoreRecentAcrossDates(t *testing.T) {
	older := rec("4227", "10/03/2025", "11:00", "PM", KindStart)
	newer := rec("4227", "11/03/2025", "1:00", "AM", KindEnd)

	assert.True(t, MoreRecent(newer, older))
	assert.False(t, MoreRecent(older, newer))
}

func TestMoreRecentSameDayTieBreak(t *testing.T) {
	// Same-day ordering is a plain string comparison on the time label.
	// "9:00 AM" compares above "10:15 AM" even though it is earlier.
	nine := rec("4227", "10/03/2025", "9:00", "AM", KindStart)
	tenFifteen := rec("4227", "10/03/2025", "10:15", "AM", KindEnd)

	assert.True(t, MoreRecent(nine, tenFifteen))
	assert.False(t, MoreRecent(tenFifteen, nine))

	// Zero-padded hours on the same meridiem order as expected.
	twoThirty := rec("4227", "10/03/2025", "02:30", "PM", KindStart)
	fourOhFive := rec("4227", "10/03/2025", "04:05", "PM", KindEnd)
	assert.True(t, MoreRecent(fourOhFive, twoThirty))
}

func TestMoreRecentUnparseableDatesSortFirst(t *testing.T) {
	good := rec("4227", "10/03/2025", "9:00", "AM", KindStart)
	bad := rec("4227", "not-a-date", "9:00", "AM", KindEnd)

	assert.True(t, MoreRecent(good, bad))
	assert.False(t, MoreRecent(bad, good))
}

func TestLatestByVehicleInsertionOrderIndependent(t *testing.T) {
	a1 := rec("4227", "10/03/2025", "9:00", "AM", KindStart)
	a2 := rec("4227", "11/03/2025", "8:00", "AM", KindEnd)
	b1 := rec("VW1", "05/03/2025", "1:00", "PM", KindStart)

	forward := latestByVehicle([]Record{a1, a2, b1})
	backward := latestByVehicle([]Record{b1, a2, a1})

	assert.Equal(t, forward, backward)
	assert.Equal(t, KindEnd, forward["4227"].Kind)
	assert.Equal(t, KindStart, forward["VW1"].Kind)
	assert.Len(t, forward, 2)
}
