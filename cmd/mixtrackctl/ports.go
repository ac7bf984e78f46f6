package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/mixtrack/internal/midiport"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available MIDI ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports := midiport.ListPorts()
		if len(ports) == 0 {
			fmt.Println("no MIDI ports found")
			return nil
		}
		for _, port := range ports {
			direction := ""
			if port.Input {
				direction += "in"
			}
			if port.Output {
				if direction != "" {
					direction += "/"
				}
				direction += "out"
			}
			fmt.Printf("%-8s %s\n", direction, port.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
