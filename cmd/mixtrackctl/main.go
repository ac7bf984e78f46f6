// mixtrackctl drives a Numark Mixtrack Platinum FX from the command line:
// listing ports, running the input-feedback loop with optional system
// monitoring, sweeping LEDs to verify wiring, and toggling EasyEffects.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
	"github.com/leandrodaf/mixtrack/sdk/mixtrack"
)

var (
	flagPort  string
	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "mixtrackctl",
	Short: "Control a Numark Mixtrack Platinum FX",
	Long: `mixtrackctl talks to a Numark Mixtrack Platinum FX over MIDI.

It can run the button-feedback loop, mirror system vitals onto the
controller's rings and displays, sweep LEDs to verify the wiring, and
toggle EasyEffects stream-input processing.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPort, "port", mixtrack.DefaultPortPattern,
		"substring matched against MIDI port names")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"enable debug logging")
}

// newConnectedClient builds a client from the shared flags and connects it.
func newConnectedClient() (*mixtrack.Client, error) {
	level := contracts.InfoLevel
	if flagDebug {
		level = contracts.DebugLevel
	}
	client, err := mixtrack.New(
		contracts.WithPortPattern(flagPort),
		contracts.WithLogLevel(level),
	)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(); err != nil {
		return nil, err
	}
	return client, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
