package contracts

// Deck identifies one of the two logical control surfaces on the device.
type Deck uint8

const (
	Deck1 Deck = 1
	Deck2 Deck = 2
)

// Decks lists both decks in order, for callers that iterate the surface.
var Decks = []Deck{Deck1, Deck2}

// ControlKind identifies a controllable element on the device. The set is
// closed: kinds are defined by the static address tables and never
// constructed from raw input.
type ControlKind uint8

const (
	// Basic transport controls, one note per deck.
	ControlPlay ControlKind = iota
	ControlSync
	ControlCue
	ControlPFLCue
	ControlBPMUp
	ControlBPMDown
	ControlKeylock
	ControlWheelButton
	ControlSlip
	ControlDeckActive
	ControlRateDisplay

	// Multi-note groups; one kind addresses several LEDs at once.
	ControlHotcue
	ControlHotcueExtended
	ControlAutoloop
	ControlLoop

	// Pad-mode indicators.
	ControlPadModeHotcue
	ControlPadModeAutoloop
	ControlPadModeFaderCuts
	ControlPadModeSample1
	ControlPadModeSample2
	ControlPadModeHotcue2
	ControlPadModeBeatjump
	ControlPadModeAutoloop2
	ControlPadModeKeyplay
	ControlPadModeFaderCuts2
	ControlPadModeFaderCuts3
	ControlPadModeAutoloop3
	ControlPadModeStems

	// Individual performance pads.
	ControlPad1
	ControlPad2
	ControlPad3
	ControlPad4
	ControlPad5
	ControlPad6
	ControlPad7
	ControlPad8
	ControlPad9
	ControlPad10
	ControlPad11
	ControlPad12
	ControlPad13
	ControlPad14
	ControlPad15
	ControlPad16

	// Effect slot buttons.
	ControlEffect1
	ControlEffect2
	ControlEffect3
	ControlEffect4
	ControlEffect5
	ControlEffect6

	numControlKinds // sentinel, keep last
)

// AllControlKinds returns every defined kind in declaration order.
func AllControlKinds() []ControlKind {
	kinds := make([]ControlKind, 0, numControlKinds)
	for k := ControlKind(0); k < numControlKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Grouped reports whether the kind addresses several notes at once.
func (k ControlKind) Grouped() bool {
	return k >= ControlHotcue && k <= ControlLoop
}

// Basic reports whether the kind is a single-note transport control.
func (k ControlKind) Basic() bool {
	return k <= ControlRateDisplay
}

// PadMode reports whether the kind is a pad-mode indicator.
func (k ControlKind) PadMode() bool {
	return k >= ControlPadModeHotcue && k <= ControlPadModeStems
}

// Pad reports whether the kind is an individual performance pad.
func (k ControlKind) Pad() bool {
	return k >= ControlPad1 && k <= ControlPad16
}

// Effect reports whether the kind is an effect slot button.
func (k ControlKind) Effect() bool {
	return k >= ControlEffect1 && k <= ControlEffect6
}

var controlKindNames = map[ControlKind]string{
	ControlPlay:              "play",
	ControlSync:              "sync",
	ControlCue:               "cue",
	ControlPFLCue:            "pfl_cue",
	ControlBPMUp:             "bpm_up",
	ControlBPMDown:           "bpm_down",
	ControlKeylock:           "keylock",
	ControlWheelButton:       "wheel_button",
	ControlSlip:              "slip",
	ControlDeckActive:        "deck_active",
	ControlRateDisplay:       "rate_display",
	ControlHotcue:            "hotcue",
	ControlHotcueExtended:    "hotcue_extended",
	ControlAutoloop:          "autoloop",
	ControlLoop:              "loop",
	ControlPadModeHotcue:     "pad_mode_hotcue",
	ControlPadModeAutoloop:   "pad_mode_autoloop",
	ControlPadModeFaderCuts:  "pad_mode_fadercuts",
	ControlPadModeSample1:    "pad_mode_sample1",
	ControlPadModeSample2:    "pad_mode_sample2",
	ControlPadModeHotcue2:    "pad_mode_hotcue2",
	ControlPadModeBeatjump:   "pad_mode_beatjump",
	ControlPadModeAutoloop2:  "pad_mode_autoloop2",
	ControlPadModeKeyplay:    "pad_mode_keyplay",
	ControlPadModeFaderCuts2: "pad_mode_fadercuts2",
	ControlPadModeFaderCuts3: "pad_mode_fadercuts3",
	ControlPadModeAutoloop3:  "pad_mode_autoloop3",
	ControlPadModeStems:      "pad_mode_stems",
	ControlPad1:              "pad1",
	ControlPad2:              "pad2",
	ControlPad3:              "pad3",
	ControlPad4:              "pad4",
	ControlPad5:              "pad5",
	ControlPad6:              "pad6",
	ControlPad7:              "pad7",
	ControlPad8:              "pad8",
	ControlPad9:              "pad9",
	ControlPad10:             "pad10",
	ControlPad11:             "pad11",
	ControlPad12:             "pad12",
	ControlPad13:             "pad13",
	ControlPad14:             "pad14",
	ControlPad15:             "pad15",
	ControlPad16:             "pad16",
	ControlEffect1:           "effect1",
	ControlEffect2:           "effect2",
	ControlEffect3:           "effect3",
	ControlEffect4:           "effect4",
	ControlEffect5:           "effect5",
	ControlEffect6:           "effect6",
}

// String returns the canonical lower-case name of the kind.
func (k ControlKind) String() string {
	if name, ok := controlKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// RingType selects one of the two independent ring indicators around each
// jog wheel.
type RingType uint8

const (
	// RingSpinner is the red spinner ring (offset-based device range).
	RingSpinner RingType = iota
	// RingPosition is the white position ring (linear device range).
	RingPosition
)

// DisplayType selects one of the per-deck numeric displays.
type DisplayType uint8

const (
	DisplayBPM DisplayType = iota
	DisplayTime
	DisplayRate
)

// InputEvent is a classified inbound frame. Concrete types are PressEvent
// and FxPressEvent.
type InputEvent interface {
	inputEvent()
}

// PressEvent is a qualified button press on a deck-scoped control.
type PressEvent struct {
	Deck    Deck
	Kind    ControlKind
	Channel uint8 // Raw inbound channel.
	Note    uint8 // Raw inbound note.
}

func (PressEvent) inputEvent() {}

// FxPressEvent is a press on an FX pad. FX pads live on their own channels
// and are not deck-scoped in the address model.
type FxPressEvent struct {
	Channel uint8
	Note    uint8
}

func (FxPressEvent) inputEvent() {}

// InputObserver receives every raw inbound frame, before classification.
// Observers must not block; long work belongs on the observer's own
// goroutine.
type InputObserver func(frame Frame)
