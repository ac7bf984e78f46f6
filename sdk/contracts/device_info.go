package contracts

// DeviceInfo describes a MIDI port visible to the transport.
type DeviceInfo struct {
	Name   string // Port name as reported by the driver.
	Input  bool   // The port accepts inbound traffic.
	Output bool   // The port accepts outbound traffic.
}
