package pipeline

import (
	"time"

	"github.com/theirongolddev/fleetbill/internal/model"
)

// MergedRecord is one distinct history record and the periods it was seen in.
type MergedRecord struct {
	LicensePlate   string
	OdometerMeters float64
	Timestamp      time.Time
	InStart        bool
	InEnd          bool
}

// In reports whether the record was seen in the fetch for p.
func (m MergedRecord) In(p model.Period) bool {
	switch p {
	case model.PeriodStart:
		return m.InStart
	case model.PeriodEnd:
		return m.InEnd
	}
	return false
}

type recordKey struct {
	plate    string
	odometer float64
	sec      int64
	nsec     int
}

func keyOf(r model.HistoryRecord) recordKey {
	return recordKey{
		plate:    r.LicensePlate,
		odometer: r.OdometerMeters,
		sec:      r.Timestamp.Unix(),
		nsec:     r.Timestamp.Nanosecond(),
	}
}

// MergeHistory returns the set union of the start and end snapshots, keyed by
// full record content. Order is start records then end records, first
// occurrence wins. A record present in both sets yields one entry tagged with
// both periods. The Period field of the inputs is ignored; the argument
// position decides the tag.
func MergeHistory(start, end []model.HistoryRecord) []MergedRecord {
	merged := make([]MergedRecord, 0, len(start)+len(end))
	index := make(map[recordKey]int, len(start)+len(end))

	add := func(r model.HistoryRecord, p model.Period) {
		k := keyOf(r)
		i, ok := index[k]
		if !ok {
			i = len(merged)
			index[k] = i
			merged = append(merged, MergedRecord{
				LicensePlate:   r.LicensePlate,
				OdometerMeters: r.OdometerMeters,
				Timestamp:      r.Timestamp,
			})
		}
		if p == model.PeriodStart {
			merged[i].InStart = true
		} else {
			merged[i].InEnd = true
		}
	}

	for _, r := range start {
		add(r, model.PeriodStart)
	}
	for _, r := range end {
		add(r, model.PeriodEnd)
	}
	return merged
}
