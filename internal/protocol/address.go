package protocol

import (
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// ChannelCategory selects one of the device's three channel groups.
type ChannelCategory uint8

const (
	// CategoryDeckTransport covers channels 0/1 (buttons, rings, VU meters).
	CategoryDeckTransport ChannelCategory = iota
	// CategoryExtendedLED covers the LED write channels (ChannelOffset+deck-1).
	CategoryExtendedLED
	// CategoryFX covers the effect pad channels 8/9.
	CategoryFX
)

const fxChannelBase = 8

// Note tables, per the Mixxx mapping. Basic controls carry one note per
// deck (the stock firmware uses the same note on both decks and varies the
// channel); groups address several LEDs at once.
var (
	basicNotes = map[contracts.ControlKind][2]uint8{
		contracts.ControlPlay:        {0, 0},
		contracts.ControlSync:        {2, 2},
		contracts.ControlCue:         {5, 5},
		contracts.ControlPFLCue:      {27, 27},
		contracts.ControlBPMUp:       {11, 11},
		contracts.ControlBPMDown:     {12, 12},
		contracts.ControlKeylock:     {13, 13},
		contracts.ControlWheelButton: {7, 7},
		contracts.ControlSlip:        {15, 15},
		contracts.ControlDeckActive:  {8, 8},
		contracts.ControlRateDisplay: {14, 14},
	}

	groupNotes = map[contracts.ControlKind][]uint8{
		contracts.ControlHotcue:         {24, 25, 26, 27},
		contracts.ControlHotcueExtended: {32, 33, 34, 35},
		contracts.ControlAutoloop:       {20, 21, 22, 23, 28, 29, 30, 31},
		contracts.ControlLoop:           {50, 51, 52, 53, 56, 57},
	}

	padModeNotes = map[contracts.ControlKind]uint8{
		contracts.ControlPadModeHotcue:     0,
		contracts.ControlPadModeAutoloop:   13,
		contracts.ControlPadModeFaderCuts:  7,
		contracts.ControlPadModeSample1:    11,
		contracts.ControlPadModeSample2:    15,
		contracts.ControlPadModeHotcue2:    2,
		contracts.ControlPadModeBeatjump:   1,
		contracts.ControlPadModeAutoloop2:  14,
		contracts.ControlPadModeKeyplay:    12,
		contracts.ControlPadModeFaderCuts2: 3,
		contracts.ControlPadModeFaderCuts3: 4,
		contracts.ControlPadModeAutoloop3:  5,
		contracts.ControlPadModeStems:      6,
	}
)

func padNote(k contracts.ControlKind) uint8 {
	// Pads 1-16 map to notes 20-35.
	return uint8(k-contracts.ControlPad1) + 20
}

func effectNote(k contracts.ControlKind) uint8 {
	// Effect slots 1-6 map to notes 0-5.
	return uint8(k - contracts.ControlEffect1)
}

// Reverse-lookup orders, one per channel group. Basic transport controls
// live on the deck-transport channels only; groups, pads, effects and
// pad-mode indicators live on the extended LED channels only, so note
// collisions across the two groups never compete. Within the LED channels
// several notes appear in more than one table (hotcue notes double as pads,
// effect notes double as pad-mode indicators); multi-note groups win over
// pads, which win over effects and pad-mode tables, in that order.
var (
	transportClassifyOrder = func() []contracts.ControlKind {
		order := make([]contracts.ControlKind, 0, 16)
		for k := contracts.ControlPlay; k <= contracts.ControlRateDisplay; k++ {
			order = append(order, k)
		}
		return order
	}()

	ledClassifyOrder = func() []contracts.ControlKind {
		order := []contracts.ControlKind{
			contracts.ControlHotcue,
			contracts.ControlHotcueExtended,
			contracts.ControlAutoloop,
			contracts.ControlLoop,
		}
		for k := contracts.ControlPad1; k <= contracts.ControlPad16; k++ {
			order = append(order, k)
		}
		for k := contracts.ControlEffect1; k <= contracts.ControlEffect6; k++ {
			order = append(order, k)
		}
		for k := contracts.ControlPadModeHotcue; k <= contracts.ControlPadModeStems; k++ {
			order = append(order, k)
		}
		return order
	}()
)

// AddressTable maps logical control identifiers to wire addresses and back.
// All lookups are pure reads over static tables; unknown inputs yield
// "no mapping", never an error, since unmapped traffic is expected.
type AddressTable struct {
	cfg Config

	// reverse[note] lists the kinds owning that note on a channel group, in
	// that group's classify order.
	reverseTransport map[uint8][]contracts.ControlKind
	reverseLED       map[uint8][]contracts.ControlKind
}

// NewAddressTable builds the lookup tables for the given wire constants.
func NewAddressTable(cfg Config) *AddressTable {
	t := &AddressTable{
		cfg:              cfg,
		reverseTransport: make(map[uint8][]contracts.ControlKind),
		reverseLED:       make(map[uint8][]contracts.ControlKind),
	}
	for _, kind := range transportClassifyOrder {
		for _, note := range t.kindNotes(kind) {
			t.reverseTransport[note] = append(t.reverseTransport[note], kind)
		}
	}
	for _, kind := range ledClassifyOrder {
		for _, note := range t.kindNotes(kind) {
			t.reverseLED[note] = append(t.reverseLED[note], kind)
		}
	}
	return t
}

// kindNotes returns every note a kind can occupy, deck-independent.
func (t *AddressTable) kindNotes(kind contracts.ControlKind) []uint8 {
	switch {
	case kind.Basic():
		pair := basicNotes[kind]
		if pair[0] == pair[1] {
			return []uint8{pair[0]}
		}
		return []uint8{pair[0], pair[1]}
	case kind.Grouped():
		return groupNotes[kind]
	case kind.Pad():
		return []uint8{padNote(kind)}
	case kind.Effect():
		return []uint8{effectNote(kind)}
	case kind.PadMode():
		return []uint8{padModeNotes[kind]}
	}
	return nil
}

// Notes returns the ordered note list of a multi-note group, or nil for
// kinds without a static multi-note mapping.
func (t *AddressTable) Notes(kind contracts.ControlKind) []uint8 {
	return groupNotes[kind]
}

// Note returns the single wire note of a kind on the given deck. Grouped
// kinds have no single note and report ok=false.
func (t *AddressTable) Note(kind contracts.ControlKind, deck contracts.Deck) (uint8, bool) {
	switch {
	case kind.Basic():
		if deck != contracts.Deck1 && deck != contracts.Deck2 {
			return 0, false
		}
		return basicNotes[kind][deck-1], true
	case kind.Pad():
		return padNote(kind), true
	case kind.Effect():
		return effectNote(kind), true
	case kind.PadMode():
		return padModeNotes[kind], true
	}
	return 0, false
}

// Channel returns the wire channel of a deck within a category.
func (t *AddressTable) Channel(deck contracts.Deck, cat ChannelCategory) uint8 {
	switch cat {
	case CategoryExtendedLED:
		return t.cfg.ChannelOffset + uint8(deck) - 1
	case CategoryFX:
		return fxChannelBase + uint8(deck) - 1
	default:
		return uint8(deck) - 1
	}
}

// DeckForChannel maps an inbound channel to its logical deck. FX channels
// resolve to a deck as well, though FX traffic is classified separately.
func (t *AddressTable) DeckForChannel(channel uint8) (contracts.Deck, bool) {
	switch channel {
	case 0, t.cfg.ChannelOffset, fxChannelBase:
		return contracts.Deck1, true
	case 1, t.cfg.ChannelOffset + 1, fxChannelBase + 1:
		return contracts.Deck2, true
	}
	return 0, false
}

// FXChannel reports whether the channel carries FX pad traffic.
func (t *AddressTable) FXChannel(channel uint8) bool {
	return channel == fxChannelBase || channel == fxChannelBase+1
}

// Classify resolves an inbound (channel, note) pair to its logical deck and
// control. The channel decides which reverse table applies: deck-transport
// channels carry basic controls only, extended LED channels carry the group,
// pad, effect and pad-mode tables. Within a table the first kind in classify
// order owning the note wins. Unmapped pairs return ok=false.
func (t *AddressTable) Classify(channel, note uint8) (contracts.Deck, contracts.ControlKind, bool) {
	if t.FXChannel(channel) {
		return 0, 0, false
	}
	deck, ok := t.DeckForChannel(channel)
	if !ok {
		return 0, 0, false
	}

	reverse := t.reverseTransport
	if channel == t.cfg.ChannelOffset || channel == t.cfg.ChannelOffset+1 {
		reverse = t.reverseLED
	}
	kinds := reverse[note]
	if len(kinds) == 0 {
		return 0, 0, false
	}
	return deck, kinds[0], true
}
