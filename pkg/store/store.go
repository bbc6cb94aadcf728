package store

import (
	"fmt"

	"github.com/ericogr/fader-to-midi/pkg/fader"
)

// Record layout, byte addresses. The flag byte is written last so a
// torn write leaves a stale flag rather than a committed record with
// garbage bounds; the checksum catches the remaining cases on load.
const (
	addrFlag     = 0
	addrMin      = 1
	addrMax      = 3
	addrChecksum = 5

	// RecordSize is the total persisted record size in bytes.
	RecordSize = 6
)

const (
	flagCalibrated = 0x01
	flagReset      = 0x02
)

// ByteStore is the narrow persistence interface: individual byte
// reads and writes, synchronous and individually reliable but not
// atomic as a group.
type ByteStore interface {
	ReadByte(addr int) (byte, error)
	WriteByte(addr int, b byte) error
}

// CalibrationStore persists the calibration record through a
// ByteStore.
type CalibrationStore struct {
	dev ByteStore
}

func New(dev ByteStore) *CalibrationStore {
	return &CalibrationStore{dev: dev}
}

// Load reads the persisted record. Anything suspect (unreadable
// storage, an unknown flag, a checksum mismatch, degenerate bounds)
// degrades to the default bounds; corrupted calibration is never
// fatal.
func (s *CalibrationStore) Load() (fader.Bounds, fader.CalState) {
	flag, err := s.dev.ReadByte(addrFlag)
	if err != nil {
		return fader.DefaultBounds(), fader.StateUninitialized
	}

	switch flag {
	case flagReset:
		return fader.DefaultBounds(), fader.StateReset
	case flagCalibrated:
	default:
		return fader.DefaultBounds(), fader.StateUninitialized
	}

	raw, err := s.readBytes(addrMin, 4)
	if err != nil {
		return fader.DefaultBounds(), fader.StateUninitialized
	}
	sum, err := s.dev.ReadByte(addrChecksum)
	if err != nil || sum != checksum(raw) {
		return fader.DefaultBounds(), fader.StateUninitialized
	}

	min := clamp(int(decode16(raw[0], raw[1])), 0, fader.SensorRange)
	max := clamp(int(decode16(raw[2], raw[3])), 0, fader.SensorRange)
	if min >= max {
		return fader.DefaultBounds(), fader.StateUninitialized
	}
	return fader.Bounds{Min: min, Max: max}, fader.StateCalibrated
}

// Save writes bounds and checksum first and commits by flipping the
// flag byte last.
func (s *CalibrationStore) Save(b fader.Bounds, state fader.CalState) error {
	minHi, minLo := encode16(uint16(b.Min))
	maxHi, maxLo := encode16(uint16(b.Max))
	payload := []byte{minLo, minHi, maxLo, maxHi}

	for i, v := range payload {
		if err := s.dev.WriteByte(addrMin+i, v); err != nil {
			return fmt.Errorf("write bounds: %w", err)
		}
	}
	if err := s.dev.WriteByte(addrChecksum, checksum(payload)); err != nil {
		return fmt.Errorf("write checksum: %w", err)
	}

	flag := byte(flagReset)
	if state == fader.StateCalibrated {
		flag = flagCalibrated
	}
	if err := s.dev.WriteByte(addrFlag, flag); err != nil {
		return fmt.Errorf("write flag: %w", err)
	}
	return nil
}

func (s *CalibrationStore) readBytes(addr, n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		b, err := s.dev.ReadByte(addr + i)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func encode16(v uint16) (hi, lo byte) {
	return byte(v >> 8), byte(v & 0xFF)
}

func decode16(lo, hi byte) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

func checksum(payload []byte) byte {
	sum := byte(0x5A)
	for _, b := range payload {
		sum ^= b
	}
	return sum
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
