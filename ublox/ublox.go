// Package ublox implements the UBX side of a u-blox MAX-M8 GNSS receiver:
// NAV-PVT frame parsing, receiver configuration frames, and a receiver that
// hands exactly one fresh fix to the application per arrival.
package ublox

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// FrameLen is the length of a NAV-PVT frame on the wire, including sync,
// header and checksum.
const FrameLen = 100

const (
	sync1 = 0xB5
	sync2 = 0x62

	classNav = 0x01
	idPVT    = 0x07
	pvtLen   = 92
)

var (
	ErrBadSync     = errors.New("ublox: bad sync bytes")
	ErrBadClassID  = errors.New("ublox: bad class or id")
	ErrBadLength   = errors.New("ublox: bad length")
	ErrBadChecksum = errors.New("ublox: bad checksum")
	ErrSameTOW     = errors.New("ublox: duplicate iTOW")
)

// NoPVTError is returned while no fresh fix is available. N counts how many
// times it has been returned since the last fix, which lets the application
// tell a brief gap from a dead receiver.
type NoPVTError struct {
	N uint8
}

func (e *NoPVTError) Error() string {
	return fmt.Sprintf("ublox: no pvt (%d polls)", e.N)
}

// PVT is one parsed NAV-PVT navigation solution.
type PVT struct {
	ITOW   uint32
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8

	ValidDate     bool
	ValidTime     bool
	FullyResolved bool
	Fix           bool
	NumSV         uint8
}

// Usable reports whether the solution is trustworthy enough to discipline
// the clock from.
func (p PVT) Usable() bool {
	return p.Fix && p.ValidDate && p.ValidTime && p.FullyResolved
}

// ParsePVT parses a 100-byte NAV-PVT frame.
func ParsePVT(buf []byte) (PVT, error) {
	if len(buf) < FrameLen {
		return PVT{}, ErrBadLength
	}
	if buf[0] != sync1 || buf[1] != sync2 {
		return PVT{}, ErrBadSync
	}
	if buf[2] != classNav || buf[3] != idPVT {
		return PVT{}, ErrBadClassID
	}
	if buf[4] != pvtLen || buf[5] != 0 {
		return PVT{}, ErrBadLength
	}
	a, b := Checksum(buf[:98])
	if buf[98] != a || buf[99] != b {
		return PVT{}, ErrBadChecksum
	}

	p := buf[6:98]
	return PVT{
		ITOW:          binary.LittleEndian.Uint32(p[0:4]),
		Year:          binary.LittleEndian.Uint16(p[4:6]),
		Month:         p[6],
		Day:           p[7],
		Hour:          p[8],
		Minute:        p[9],
		Second:        p[10],
		ValidDate:     p[11]&0b0001 != 0,
		ValidTime:     p[11]&0b0010 != 0,
		FullyResolved: p[11]&0b0100 != 0,
		Fix:           p[20] > 1,
		NumSV:         p[23],
	}, nil
}

// EncodePVT builds a valid NAV-PVT frame carrying p. Fields the clock never
// reads are left zero. Used by the host receiver simulation and tests.
func EncodePVT(p PVT) []byte {
	buf := make([]byte, FrameLen)
	buf[0], buf[1] = sync1, sync2
	buf[2], buf[3] = classNav, idPVT
	buf[4], buf[5] = pvtLen, 0

	body := buf[6:98]
	binary.LittleEndian.PutUint32(body[0:4], p.ITOW)
	binary.LittleEndian.PutUint16(body[4:6], p.Year)
	body[6] = p.Month
	body[7] = p.Day
	body[8] = p.Hour
	body[9] = p.Minute
	body[10] = p.Second
	if p.ValidDate {
		body[11] |= 0b0001
	}
	if p.ValidTime {
		body[11] |= 0b0010
	}
	if p.FullyResolved {
		body[11] |= 0b0100
	}
	if p.Fix {
		body[20] = 3
	}
	body[23] = p.NumSV

	buf[98], buf[99] = Checksum(buf[:98])
	return buf
}

// Checksum computes the UBX Fletcher checksum over msg, which includes the
// sync bytes but no trailing checksum space. The sync bytes themselves are
// excluded from the sum.
func Checksum(msg []byte) (a, b uint8) {
	for _, c := range msg[2:] {
		a += c
		b += a
	}
	return a, b
}

// Receiver accumulates frames from the wire and hands out at most one fresh
// PVT per arrival.
type Receiver struct {
	pvt      PVT
	err      error
	lastITOW uint32
	haveTOW  bool
}

// NewReceiver returns a receiver that reports no fix until a frame arrives.
func NewReceiver() *Receiver {
	return &Receiver{err: &NoPVTError{}}
}

// Frame consumes one received frame. A frame repeating the previous iTOW is
// rejected so a duplicate is never processed as a new second.
func (r *Receiver) Frame(buf []byte) {
	pvt, err := ParsePVT(buf)
	if err != nil {
		r.err = err
		return
	}
	if r.haveTOW && pvt.ITOW == r.lastITOW {
		r.err = ErrSameTOW
		return
	}
	r.pvt = pvt
	r.err = nil
	r.lastITOW = pvt.ITOW
	r.haveTOW = true
}

// PVT takes the pending solution. After a successful take it returns
// NoPVTError with an incrementing count until the next frame arrives.
func (r *Receiver) PVT() (PVT, error) {
	pvt, err := r.pvt, r.err
	if nerr, ok := err.(*NoPVTError); ok {
		n := nerr.N
		if n < 255 {
			n++
		}
		r.err = &NoPVTError{N: n}
	} else {
		r.err = &NoPVTError{}
	}
	return pvt, err
}
