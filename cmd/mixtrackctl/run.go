package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/mixtrack/internal/logger"
	"github.com/leandrodaf/mixtrack/sdk/contracts"
	"github.com/leandrodaf/mixtrack/sdk/monitor"
)

var (
	flagMonitor  bool
	flagInterval time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the input-feedback loop until interrupted",
	Long: `Connects to the controller, lights button LEDs as they are pressed
and, with --monitor, mirrors system vitals onto the rings and displays.`,
	RunE: runLoop,
}

func init() {
	runCmd.Flags().BoolVar(&flagMonitor, "monitor", false,
		"mirror system vitals onto the controller")
	runCmd.Flags().DurationVar(&flagInterval, "interval", time.Second,
		"telemetry update interval")
	rootCmd.AddCommand(runCmd)
}

func runLoop(cmd *cobra.Command, args []string) error {
	client, err := newConnectedClient()
	if err != nil {
		return err
	}
	defer client.Disconnect()

	if err := client.Start(); err != nil {
		return err
	}

	if flagMonitor {
		m := monitor.New(client, logger.NewZapLogger())
		m.RegisterAlertObserver("stderr", func(state contracts.AlertState) {
			fmt.Fprintf(os.Stderr, "alert: cpu_temp=%t gpu_temp=%t cpu=%t mem=%t\n",
				state.CPUTemp, state.GPUTemp, state.CPUUsage, state.MemoryUsage)
		})
		m.StartMonitoring(flagInterval)
		defer m.StopMonitoring()
	}

	fmt.Println("running, press Ctrl+C to stop")
	wait := make(chan os.Signal, 1)
	signal.Notify(wait, syscall.SIGINT, syscall.SIGTERM)
	<-wait
	fmt.Println("stopping")
	return nil
}
