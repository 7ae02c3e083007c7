//go:build js

package pipeline

import (
	"fmt"

	"github.com/lucasjlepore/powerdash"
)

// The parquet writer stack does not build for js/wasm; the browser entry
// point requests csv instead.

func marshalSamplesParquet([]SampleRow) ([]byte, error) {
	return nil, fmt.Errorf("parquet output is unavailable in wasm builds (use csv)")
}

func marshalCurveParquet(powerdash.PowerCurve) ([]byte, error) {
	return nil, fmt.Errorf("parquet output is unavailable in wasm builds (use csv)")
}
