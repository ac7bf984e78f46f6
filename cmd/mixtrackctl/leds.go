package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

var flagSweepDelay time.Duration

var ledsCmd = &cobra.Command{
	Use:   "leds",
	Short: "Sweep every LED to verify the address mapping",
	Long: `Lights each control on each deck in turn, prints its name, and turns
it off again. Watch the controller to confirm the names match the hardware.`,
	RunE: sweepLEDs,
}

func init() {
	ledsCmd.Flags().DurationVar(&flagSweepDelay, "delay", 300*time.Millisecond,
		"how long each LED stays lit")
	rootCmd.AddCommand(ledsCmd)
}

func sweepLEDs(cmd *cobra.Command, args []string) error {
	client, err := newConnectedClient()
	if err != nil {
		return err
	}
	defer client.Disconnect()

	for _, deck := range contracts.Decks {
		for _, kind := range contracts.AllControlKinds() {
			fmt.Printf("deck %d: %s\n", deck, kind)
			client.SetLED(deck, kind, true)
			time.Sleep(flagSweepDelay)
			client.SetLED(deck, kind, false)
		}
	}

	client.ClearAllLEDs()
	return nil
}
