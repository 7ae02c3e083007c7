//go:build !js

package pipeline

import (
	"math"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lucasjlepore/powerdash"
)

type sampleParquetRow struct {
	TimeS      float64 `parquet:"name=time_s, type=DOUBLE"`
	PowerW     float64 `parquet:"name=power_w, type=DOUBLE"`
	HRBPM      float64 `parquet:"name=hr_bpm, type=DOUBLE"`
	ValidPower bool    `parquet:"name=valid_power, type=BOOLEAN"`
	ValidHR    bool    `parquet:"name=valid_hr, type=BOOLEAN"`
}

type curveParquetRow struct {
	DurationS int64   `parquet:"name=duration_s, type=INT64"`
	PowerW    float64 `parquet:"name=power_w, type=DOUBLE"`
}

func marshalSamplesParquet(rows []SampleRow) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(sampleParquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, s := range rows {
		row := sampleParquetRow{
			TimeS:      s.TimeS,
			PowerW:     valueOrNaN(s.PowerW),
			HRBPM:      valueOrNaN(s.HRBPM),
			ValidPower: s.PowerW != nil,
			ValidHR:    s.HRBPM != nil,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

func marshalCurveParquet(curve powerdash.PowerCurve) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(curveParquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, pt := range curve {
		if err := pw.Write(curveParquetRow{DurationS: pt.DurationS, PowerW: pt.PowerW}); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
