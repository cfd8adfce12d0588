// Package types contains common types used across the application
package types

import "time"

// Status is a consistent view of the controller captured between two scan
// cycles. Every map is owned by the caller.
type Status struct {
	Inputs        map[string]bool    `json:"inputs"`
	Outputs       map[string]bool    `json:"outputs"`
	AnalogInputs  map[string]float64 `json:"analog_inputs"`
	AnalogOutputs map[string]float64 `json:"analog_outputs"`
	Timers        map[string]float64 `json:"timers"` // elapsed seconds
	Counters      map[string]uint64  `json:"counters"`
	ScanTime      float64            `json:"scan_time"` // seconds
	Running       bool               `json:"running"`
	Cycles        uint64             `json:"cycles"`
	RunID         string             `json:"run_id,omitempty"`
	TakenAt       time.Time          `json:"taken_at"`
}

// PointInfo lists one registered point.
type PointInfo struct {
	Name    string `json:"name"`
	Signal  string `json:"signal"` // "digital" or "analog"
	Kind    string `json:"kind"`   // "input" or "output"
	Address string `json:"address,omitempty"`
}
