package ublox

// Receiver configuration frames. Each is a complete UBX message minus the
// checksum; ConfigFrames appends the checksum before handing them out.

// cfgPRT puts USART1 at 9600 8n1 with UBX-only protocol in both directions,
// which silences the NMEA chatter the chip boots with.
var cfgPRT = []byte{
	0xB5, 0x62, 0x06, 0x00, 20, 0,
	// portID = 1 (USART1), reserved, txReady = 0
	0x01, 0x00, 0x00, 0x00,
	// mode = 8n1
	0b1100_0000, 0b0000_1000, 0x00, 0x00,
	// baudRate = 9600
	0x80, 0x25, 0x00, 0x00,
	// inProtoMask = UBX only
	0x01, 0x00,
	// outProtoMask = UBX only
	0x01, 0x00,
	// flags, reserved
	0x00, 0x00, 0x00, 0x00,
}

// cfgNAV5 selects the stationary dynamic model; the antenna never moves, so
// the filter can assume zero velocity.
var cfgNAV5 = []byte{
	0xB5, 0x62, 0x06, 0x24, 36, 0,
	// mask = apply dynamic model only
	0x01, 0x00,
	// dynModel = stationary
	2,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// cfgTP5 enables a 50 Hz, 50 % duty, GNSS-locked timepulse on TIMEPULSE0.
// The pulse train is the frequency reference for RTC calibration.
var cfgTP5 = []byte{
	0xB5, 0x62, 0x06, 0x31, 32, 0,
	// tpIdx = 0, version = 1, reserved
	0x00, 0x01, 0x00, 0x00,
	// antCableDelay, rfGroupDelay
	0x00, 0x00, 0x00, 0x00,
	// freqPeriod = 50 Hz
	0x32, 0x00, 0x00, 0x00,
	// freqPeriodLock = 50 Hz
	0x32, 0x00, 0x00, 0x00,
	// pulseLenRatio = 50 % duty
	0x00, 0x00, 0x00, 0x80,
	// pulseLenRatioLock = 50 % duty
	0x00, 0x00, 0x00, 0x80,
	// userConfigDelay = 0
	0x00, 0x00, 0x00, 0x00,
	// flags: active, lockGnssFreq, isFreq, rising edge, UTC grid
	0b0100_1011, 0b0000_0000, 0, 0,
}

// cfgMSG enables NAV-PVT at one message per navigation epoch (1 Hz).
var cfgMSG = []byte{
	0xB5, 0x62, 0x06, 0x01, 3, 0,
	0x01, 0x07, 1,
}

// ConfigFrames returns the configuration messages to send after receiver
// reset, in order, each with its checksum appended.
func ConfigFrames() [][]byte {
	frames := make([][]byte, 0, 4)
	for _, msg := range [][]byte{cfgPRT, cfgNAV5, cfgTP5, cfgMSG} {
		out := make([]byte, 0, len(msg)+2)
		out = append(out, msg...)
		a, b := Checksum(msg)
		out = append(out, a, b)
		frames = append(frames, out)
	}
	return frames
}
