// Package effects toggles the EasyEffects stream-input processing chain
// through gsettings, so a controller button can mute or restore microphone
// effects without touching the EasyEffects UI.
package effects

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

const (
	gsettingsSchema = "com.github.wwmm.easyeffects"
	gsettingsKey    = "enable-all-streaminputs"
)

// runner executes a command and returns its combined stdout. Swapped out in
// tests.
type runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// EasyEffects drives the desktop gsettings switch that enables or disables
// effects on all stream inputs.
type EasyEffects struct {
	run runner
	log contracts.Logger
}

func NewEasyEffects(log contracts.Logger) *EasyEffects {
	return &EasyEffects{run: execRunner, log: log}
}

// Enabled reports whether stream input effects are currently on.
func (e *EasyEffects) Enabled() (bool, error) {
	out, err := e.run("gsettings", "get", gsettingsSchema, gsettingsKey)
	if err != nil {
		return false, fmt.Errorf("read easyeffects state: %w", err)
	}
	return strings.TrimSpace(string(out)) == "true", nil
}

// SetEnabled flips the gsettings switch.
func (e *EasyEffects) SetEnabled(enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	if _, err := e.run("gsettings", "set", gsettingsSchema, gsettingsKey, value); err != nil {
		return fmt.Errorf("set easyeffects state: %w", err)
	}
	e.log.Info("easyeffects stream inputs switched",
		e.log.Field().Bool("enabled", enabled))
	return nil
}

// Toggle inverts the current state and returns the new one.
func (e *EasyEffects) Toggle() (bool, error) {
	enabled, err := e.Enabled()
	if err != nil {
		return false, err
	}
	if err := e.SetEnabled(!enabled); err != nil {
		return false, err
	}
	return !enabled, nil
}
