package main

import (
	"fmt"
	"time"

	"github.com/leandrodaf/mixtrack/internal/logger"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
	"github.com/leandrodaf/mixtrack/sdk/mixtrack"
)

func main() {
	log := logger.NewZapLogger()

	client, err := mixtrack.New(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
	)
	if err != nil {
		log.Error("Failed to initialize controller client", log.Field().Error("error", err))
		return
	}

	if err := client.Connect(); err != nil {
		log.Error("Failed to connect to controller", log.Field().Error("error", err))
		return
	}
	defer client.Disconnect()

	// Light a few LEDs and paint the screens.
	client.SetLED(contracts.Deck1, contracts.ControlPlay, true)
	client.SetLED(contracts.Deck2, contracts.ControlHotcue, true)
	client.SetBPMDisplay(contracts.Deck1, 128.5)
	client.SetRateDisplay(contracts.Deck2, -3.2)
	client.SetCurrentTimeDisplay(contracts.Deck1, time.Now())

	// Sweep the rings and VU meters from empty to full.
	for percent := 0.0; percent <= 100; percent += 10 {
		client.SetRingPercentage(contracts.Deck1, contracts.RingSpinner, percent)
		client.SetRingPercentage(contracts.Deck2, contracts.RingPosition, percent)
		client.SetVUMeter(contracts.Deck1, percent)
		client.SetVUMeter(contracts.Deck2, percent)
		time.Sleep(100 * time.Millisecond)
	}

	// Log every classified button press for ten seconds.
	client.RegisterInputObserver("log", func(frame contracts.Frame) {
		event := client.Classify(frame)
		if press, ok := event.(contracts.PressEvent); ok {
			log.Info("Button pressed",
				log.Field().Uint8("deck", uint8(press.Deck)),
				log.Field().String("control", press.Kind.String()),
			)
		}
	})

	if err := client.Start(); err != nil {
		log.Error("Failed to start event loop", log.Field().Error("error", err))
		return
	}

	fmt.Println("Press buttons on the controller... exiting in 10 seconds.")
	time.Sleep(10 * time.Second)
	client.ClearAllLEDs()
}
