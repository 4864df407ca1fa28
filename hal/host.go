//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger  *hostLogger
	matrix  *hostMatrix
	lcd     *hostLCD
	buttons *hostButtons
	gnss    *hostGNSS
	rtc     *hostRTC
	backup  *hostBackup
	freq    *hostFreqRef
}

// New returns a host HAL implementation.
func New() HAL {
	logger := &hostLogger{w: os.Stdout}
	lcd := &hostLCD{}
	if os.Getenv("WALKCLOCK_SPI_LCD") != "" && newPlatformLCD != nil {
		hw, err := newPlatformLCD()
		if err != nil {
			logger.WriteLineString("lcd: " + err.Error())
		} else {
			lcd.hw = hw
		}
	}
	return &hostHAL{
		logger:  logger,
		matrix:  newHostMatrix(),
		lcd:     lcd,
		buttons: &hostButtons{},
		gnss:    newHostGNSS(),
		rtc:     &hostRTC{},
		backup:  newHostBackup(),
		freq:    &hostFreqRef{},
	}
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) Matrix() MatrixPort { return h.matrix }
func (h *hostHAL) LCD() LCD           { return h.lcd }
func (h *hostHAL) Buttons() Buttons   { return h.buttons }
func (h *hostHAL) GNSS() GNSS         { return h.gnss }
func (h *hostHAL) RTC() RTC           { return h.rtc }
func (h *hostHAL) Backup() Backup     { return h.backup }
func (h *hostHAL) FreqRef() FreqRef   { return h.freq }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
