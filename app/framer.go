package app

import "walkclock/ublox"

// framer reassembles fixed-length NAV-PVT frames from an arbitrary byte
// stream by hunting for the sync pair.
type framer struct {
	buf [ublox.FrameLen]byte
	n   int
}

func (f *framer) Feed(data []byte, emit func([]byte)) {
	for _, b := range data {
		switch f.n {
		case 0:
			if b != 0xB5 {
				continue
			}
		case 1:
			if b != 0x62 {
				f.n = 0
				if b == 0xB5 {
					f.n = 1
				}
				continue
			}
		}
		f.buf[f.n] = b
		f.n++
		if f.n == ublox.FrameLen {
			f.n = 0
			emit(f.buf[:])
		}
	}
}
