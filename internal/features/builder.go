package features

import (
	"math"

	"TrendSentinel/internal/calculator"
)

// Categories holds the numeric encodings of a roulette number.
type Categories struct {
	Color  float64
	Parity float64
	Half   float64
	Dozen  float64
	Column float64
}

// Row is the derived feature row of one observation.
type Row struct {
	Index     int
	Value     float64
	Mean3     float64
	Mean5     float64
	Std3      float64
	Std5      float64
	PctChange float64
	Lag1      float64
	Lag2      float64
	Lag3      float64
	Cat       *Categories
}

// Vector returns the model input of the row. The raw value itself is not part
// of it.
func (r Row) Vector() []float64 {
	v := []float64{
		r.Mean3, r.Mean5, r.Std3, r.Std5, r.PctChange,
		r.Lag1, r.Lag2, r.Lag3, float64(r.Index),
	}
	if r.Cat != nil {
		v = append(v, r.Cat.Color, r.Cat.Parity, r.Cat.Half, r.Cat.Dozen, r.Cat.Column)
	}
	return v
}

// Encoder maps a raw observation to its categorical encodings.
type Encoder func(value float64) Categories

// Build derives one row per observation. Rows holding a non-finite value are
// dropped. The table is rebuilt from scratch on every call.
func Build(values []float64, enc Encoder) []Row {
	if len(values) == 0 {
		return nil
	}
	mean3 := calculator.RollingMean(values, 3)
	mean5 := calculator.RollingMean(values, 5)
	std3 := calculator.RollingStd(values, 3)
	std5 := calculator.RollingStd(values, 5)
	pct := calculator.PctChange(values)
	lag1 := calculator.Lag(values, 1)
	lag2 := calculator.Lag(values, 2)
	lag3 := calculator.Lag(values, 3)

	rows := make([]Row, 0, len(values))
	for i, v := range values {
		row := Row{
			Index:     i,
			Value:     v,
			Mean3:     mean3[i],
			Mean5:     mean5[i],
			Std3:      std3[i],
			Std5:      std5[i],
			PctChange: pct[i],
			Lag1:      lag1[i],
			Lag2:      lag2[i],
			Lag3:      lag3[i],
		}
		if enc != nil {
			c := enc(v)
			row.Cat = &c
		}
		if !finite(row.Vector()) {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// Matrix returns the model inputs of rows in order.
func Matrix(rows []Row) [][]float64 {
	m := make([][]float64, len(rows))
	for i, r := range rows {
		m[i] = r.Vector()
	}
	return m
}

func finite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
