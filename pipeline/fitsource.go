package pipeline

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/tormoder/fit"

	"github.com/lucasjlepore/powerdash"
)

// SeriesFromFITFile decodes an activity FIT file into a cleaned sample
// series.
func SeriesFromFITFile(path string) (*powerdash.SampleSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read FIT file: %w", err)
	}
	return SeriesFromFITBytes(data)
}

// SeriesFromFITBytes decodes an activity FIT payload into a cleaned sample
// series. Record timestamps become elapsed seconds from the first valid
// record; sentinel-invalid power and heart-rate readings become missing
// values so the engine can treat them uniformly.
func SeriesFromFITBytes(data []byte) (*powerdash.SampleSeries, error) {
	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}

	records := make([]*fit.RecordMsg, 0, len(activity.Records))
	for _, rec := range activity.Records {
		if rec == nil {
			continue
		}
		if ts := validTimeOrZero(rec.Timestamp); ts.IsZero() {
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("activity file has no timestamped record messages")
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})

	start := records[0].Timestamp
	timeS := make([]float64, 0, len(records))
	powerW := make([]float64, 0, len(records))
	hrBPM := make([]float64, 0, len(records))
	for _, rec := range records {
		timeS = append(timeS, rec.Timestamp.Sub(start).Seconds())
		powerW = append(powerW, recordPower(rec))
		hrBPM = append(hrBPM, recordHeartRate(rec))
	}

	series := powerdash.NewSampleSeries(timeS, powerW, hrBPM)
	if series == nil {
		return nil, fmt.Errorf("record messages yielded no usable samples")
	}
	return series, nil
}

func recordPower(rec *fit.RecordMsg) float64 {
	if rec.Power == math.MaxUint16 {
		return math.NaN()
	}
	return float64(rec.Power)
}

func recordHeartRate(rec *fit.RecordMsg) float64 {
	if rec.HeartRate == math.MaxUint8 {
		return math.NaN()
	}
	return float64(rec.HeartRate)
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}

// sampleRows projects a cleaned series into the canonical sample table.
func sampleRows(s *powerdash.SampleSeries) []SampleRow {
	rows := make([]SampleRow, 0, s.Len())
	for i, t := range s.TimeS {
		row := SampleRow{TimeS: t}
		if p := s.PowerW[i]; !math.IsNaN(p) {
			row.PowerW = floatPtr(p)
		}
		if len(s.HRBPM) == len(s.TimeS) {
			if h := s.HRBPM[i]; !math.IsNaN(h) {
				row.HRBPM = floatPtr(h)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func floatPtr(v float64) *float64 {
	out := v
	return &out
}
