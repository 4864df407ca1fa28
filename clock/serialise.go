package clock

// Settings persistence. The menu serialises to one uint16 per setting;
// word 0 carries the menu version and word 1 a checksum, and the words pack
// in pairs into the 32-word backup store.

// SerialisedWords is how many uint32 backup words the settings occupy.
const SerialisedWords = 8

// Serialise writes the settings into data and clears the needs-saving flag.
// data must hold at least SerialisedWords words.
func (c *Clock) Serialise(data []uint32) {
	c.needsSaving = false

	var words [SerialisedWords * 2]uint16
	words[0] = menuVersion
	n := c.menu.Serialise(words[2:])
	words[1] = crc16(words[2 : 2+n])

	for i := range data[:SerialisedWords] {
		data[i] = uint32(words[2*i]) | uint32(words[2*i+1])<<16
	}
}

// Deserialise applies previously saved settings. Words with the wrong
// version or checksum are ignored, leaving the defaults.
func (c *Clock) Deserialise(data []uint32) {
	if len(data) < SerialisedWords {
		return
	}

	var words [SerialisedWords * 2]uint16
	for i := 0; i < SerialisedWords; i++ {
		words[2*i] = uint16(data[i])
		words[2*i+1] = uint16(data[i] >> 16)
	}

	n := c.menu.NumSettings()
	if words[0] != menuVersion || words[1] != crc16(words[2:2+n]) {
		return
	}
	c.menu.Deserialise(words[2 : 2+n])
	c.processMenuUpdate()
	// Restoring settings is not an edit; nothing new to write back.
	c.needsSaving = false
}

// crc16 runs CRC-16 poly 0x1021, init 0xFFFF, xorout 0xFFFF over the words
// as a big-endian byte stream.
func crc16(data []uint16) uint16 {
	crc := uint16(0xFFFF)
	for _, word := range data {
		crc ^= word
		for i := 0; i < 16; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc ^ 0xFFFF
}
