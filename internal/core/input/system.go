// Package input implements the engine-owned input subsystem: raw events
// injected by the platform driver, drained into per-frame state once per
// Update.
package input

import (
	"github.com/google/uuid"

	"github.com/caldera-engine/caldera/internal/core/observability/log"
)

type DeviceKind uint8

const (
	DeviceKeyboard DeviceKind = iota
	DeviceMouse
	DeviceGamepad
)

// Event is a single raw input sample.
type Event struct {
	ID     uuid.UUID
	Device DeviceKind
	Code   int
	Value  float64
}

// System buffers injected events and folds them into queryable state on
// Update. Not thread-safe; driven from the frame loop goroutine.
type System struct {
	log     log.Log
	pending []Event
	down    map[int]bool
	axes    map[int]float64
}

func NewSystem(logger log.Log) (*System, error) {
	return &System{
		log:  logger,
		down: make(map[int]bool),
		axes: make(map[int]float64),
	}, nil
}

// Inject queues a raw event for the next Update.
func (s *System) Inject(device DeviceKind, code int, value float64) {
	s.pending = append(s.pending, Event{
		ID:     uuid.New(),
		Device: device,
		Code:   code,
		Value:  value,
	})
}

// Update drains the pending queue into button and axis state.
func (s *System) Update(dt float64) {
	_ = dt
	for _, ev := range s.pending {
		switch ev.Device {
		case DeviceKeyboard:
			s.down[ev.Code] = ev.Value != 0
		case DeviceMouse, DeviceGamepad:
			s.axes[ev.Code] = ev.Value
		}
	}
	s.pending = s.pending[:0]
}

// IsDown reports whether a key is currently held.
func (s *System) IsDown(code int) bool { return s.down[code] }

// Axis returns the last sampled value of an analog axis.
func (s *System) Axis(code int) float64 { return s.axes[code] }

// Destroy clears all state. Part of the engine's fixed teardown order.
func (s *System) Destroy() {
	s.pending = nil
	s.down = nil
	s.axes = nil
}
