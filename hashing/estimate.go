package hashing

import (
	"math"
	"time"
)

// Reference point of the linear cost model: N=2^16, r=8, p=1 takes about
// 200 ms on a typical server core.
const (
	referenceN  = 1 << 16
	referenceR  = 8
	referenceMS = 200
)

// EstimateTimeMS predicts the wall-clock cost of one derivation in
// milliseconds:
//
//	round(200 · (N / 2^16) · (r / 8) · p)
//
// It is a capacity-planning heuristic only; real cost depends on hardware.
func EstimateTimeMS(p ScryptParams) int64 {
	ms := referenceMS *
		(float64(p.N) / referenceN) *
		(float64(p.R) / referenceR) *
		float64(p.P)
	return int64(math.Round(ms))
}

// EstimateDuration is [EstimateTimeMS] as a time.Duration.
func EstimateDuration(p ScryptParams) time.Duration {
	return time.Duration(EstimateTimeMS(p)) * time.Millisecond
}
