package types

// Flags represents DNP3 quality flags
type Flags uint8

// DNP3 quality flag bits
const (
	FlagOnline       Flags = 0x01
	FlagRestart      Flags = 0x02
	FlagCommLost     Flags = 0x04
	FlagRemoteForced Flags = 0x08
	FlagLocalForced  Flags = 0x10
	FlagOverRange    Flags = 0x20
	FlagReferenceErr Flags = 0x40
)

// IsOnline returns true if the point is marked as online
func (f Flags) IsOnline() bool {
	return f&FlagOnline != 0
}

// HasRestart returns true if a device restart was detected
func (f Flags) HasRestart() bool {
	return f&FlagRestart != 0
}

// WithOnline returns a copy of flags with the online bit set or cleared
func (f Flags) WithOnline(online bool) Flags {
	if online {
		return f | FlagOnline
	}
	return f &^ FlagOnline
}

// WithRestart returns a copy of flags with the restart bit set or cleared
func (f Flags) WithRestart(restart bool) Flags {
	if restart {
		return f | FlagRestart
	}
	return f &^ FlagRestart
}
