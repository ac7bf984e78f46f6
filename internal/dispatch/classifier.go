package dispatch

import (
	"github.com/leandrodaf/mixtrack/internal/protocol"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// Classifier resolves inbound frames to logical press events. Only Note On
// frames with nonzero velocity qualify as presses: the device signals
// releases as Note On with velocity 0 (or plain Note Off), and releases
// carry no useful semantics for the feedback path.
type Classifier struct {
	table *protocol.AddressTable
}

// NewClassifier builds a classifier over the given address table.
func NewClassifier(table *protocol.AddressTable) *Classifier {
	return &Classifier{table: table}
}

// Classify returns the press event a frame represents, or nil for releases,
// continuous-value traffic and unmapped notes. FX-channel presses classify
// as FxPressEvent without deck resolution, since FX pads are not deck-scoped
// in the address model.
func (c *Classifier) Classify(frame contracts.Frame) contracts.InputEvent {
	if frame.Kind != contracts.FrameNote || frame.Data2 == 0 {
		return nil
	}

	if c.table.FXChannel(frame.Channel) {
		return contracts.FxPressEvent{Channel: frame.Channel, Note: frame.Data1}
	}

	deck, kind, ok := c.table.Classify(frame.Channel, frame.Data1)
	if !ok {
		return nil
	}
	return contracts.PressEvent{
		Deck:    deck,
		Kind:    kind,
		Channel: frame.Channel,
		Note:    frame.Data1,
	}
}
