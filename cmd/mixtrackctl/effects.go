package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/mixtrack/internal/effects"
	"github.com/leandrodaf/mixtrack/internal/logger"
)

var effectsCmd = &cobra.Command{
	Use:       "effects {on|off|toggle|status}",
	Short:     "Control EasyEffects stream-input processing",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off", "toggle", "status"},
	RunE:      runEffects,
}

func init() {
	rootCmd.AddCommand(effectsCmd)
}

func runEffects(cmd *cobra.Command, args []string) error {
	e := effects.NewEasyEffects(logger.NewZapLogger())

	switch args[0] {
	case "on":
		return e.SetEnabled(true)
	case "off":
		return e.SetEnabled(false)
	case "toggle":
		enabled, err := e.Toggle()
		if err != nil {
			return err
		}
		fmt.Println(stateWord(enabled))
		return nil
	case "status":
		enabled, err := e.Enabled()
		if err != nil {
			return err
		}
		fmt.Println(stateWord(enabled))
		return nil
	default:
		return fmt.Errorf("unknown action %q", args[0])
	}
}

func stateWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
