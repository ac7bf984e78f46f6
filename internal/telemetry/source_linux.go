//go:build linux

package telemetry

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/leandrodaf/mixtrack/sdk/contracts"
)

// cpuSensorKeywords matches hwmon names and thermal zone types that report
// a CPU package temperature.
var cpuSensorKeywords = []string{"k10temp", "coretemp", "core", "cpu", "amd"}

type cpuTimes struct {
	busy  uint64
	total uint64
}

// SystemSource reads host vitals from procfs, sysfs and the nvidia-smi
// tool when an NVIDIA card is the only GPU sensor available.
type SystemSource struct {
	log contracts.Logger

	mu   sync.Mutex
	prev cpuTimes
	seen bool

	cpuTempPath string
	gpuTempPath string
	probed      bool
}

func NewSystemSource(log contracts.Logger) *SystemSource {
	return &SystemSource{log: log}
}

func (s *SystemSource) Vitals() (contracts.Vitals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.probed {
		s.cpuTempPath = findCPUTempPath()
		s.gpuTempPath = findGPUTempPath()
		s.probed = true
	}

	vitals := contracts.Vitals{Timestamp: time.Now()}

	cpu, err := s.cpuUsage()
	if err != nil {
		return vitals, fmt.Errorf("cpu usage: %w", err)
	}
	vitals.CPUUsage = cpu

	mem, err := memoryUsage()
	if err != nil {
		return vitals, fmt.Errorf("memory usage: %w", err)
	}
	vitals.MemoryUsage = mem

	if s.cpuTempPath != "" {
		if temp, err := readMillidegrees(s.cpuTempPath); err == nil {
			vitals.CPUTemp = temp
		} else {
			s.log.Debug("cpu temperature read failed", s.log.Field().Error("error", err))
		}
	}

	vitals.GPUTemp = s.gpuTemp()
	return vitals, nil
}

// cpuUsage derives a busy percentage from two consecutive /proc/stat
// snapshots. The first call has no baseline and reports zero.
func (s *SystemSource) cpuUsage() (float64, error) {
	current, err := readCPUTimes()
	if err != nil {
		return 0, err
	}
	prev, seen := s.prev, s.seen
	s.prev, s.seen = current, true
	if !seen {
		return 0, nil
	}

	totalDelta := current.total - prev.total
	if totalDelta == 0 {
		return 0, nil
	}
	busyDelta := current.busy - prev.busy
	return float64(busyDelta) / float64(totalDelta) * 100, nil
}

func readCPUTimes() (cpuTimes, error) {
	file, err := os.Open("/proc/stat")
	if err != nil {
		return cpuTimes{}, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		return cpuTimes{}, fmt.Errorf("empty /proc/stat")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) < 5 || fields[0] != "cpu" {
		return cpuTimes{}, fmt.Errorf("unexpected /proc/stat line %q", scanner.Text())
	}

	var times cpuTimes
	for i, raw := range fields[1:] {
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return cpuTimes{}, fmt.Errorf("parse /proc/stat column %d: %w", i+1, err)
		}
		times.total += value
		// Columns 4 and 5 are idle and iowait.
		if i != 3 && i != 4 {
			times.busy += value
		}
	}
	return times, nil
}

func memoryUsage() (float64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	total := float64(info.Totalram) * float64(info.Unit)
	if total == 0 {
		return 0, nil
	}
	free := float64(info.Freeram+info.Bufferram) * float64(info.Unit)
	return (total - free) / total * 100, nil
}

// findCPUTempPath scans hwmon devices first and thermal zones second for a
// sensor whose name looks like a CPU package sensor.
func findCPUTempPath() string {
	entries, _ := filepath.Glob("/sys/class/hwmon/hwmon*")
	for _, dir := range entries {
		name := readTrimmed(filepath.Join(dir, "name"))
		if matchesCPUSensor(name) {
			if path := firstTempInput(dir); path != "" {
				return path
			}
		}
	}

	zones, _ := filepath.Glob("/sys/class/thermal/thermal_zone*")
	for _, dir := range zones {
		if matchesCPUSensor(readTrimmed(filepath.Join(dir, "type"))) {
			return filepath.Join(dir, "temp")
		}
	}
	return ""
}

func findGPUTempPath() string {
	entries, _ := filepath.Glob("/sys/class/hwmon/hwmon*")
	for _, dir := range entries {
		if readTrimmed(filepath.Join(dir, "name")) == "amdgpu" {
			if path := firstTempInput(dir); path != "" {
				return path
			}
		}
	}
	return ""
}

func matchesCPUSensor(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range cpuSensorKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func firstTempInput(dir string) string {
	inputs, _ := filepath.Glob(filepath.Join(dir, "temp*_input"))
	if len(inputs) == 0 {
		return ""
	}
	return inputs[0]
}

func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readMillidegrees(path string) (float64, error) {
	raw := readTrimmed(path)
	if raw == "" {
		return 0, fmt.Errorf("read %s: empty", path)
	}
	milli, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return milli / 1000, nil
}

// gpuTemp prefers the amdgpu hwmon sensor and falls back to nvidia-smi.
// Either path failing leaves the reading at zero rather than erroring out
// the whole sample.
func (s *SystemSource) gpuTemp() float64 {
	if s.gpuTempPath != "" {
		if temp, err := readMillidegrees(s.gpuTempPath); err == nil {
			return temp
		}
	}

	out, err := exec.Command("nvidia-smi",
		"--query-gpu=temperature.gpu", "--format=csv,noheader,nounits").Output()
	if err != nil {
		return 0
	}
	temp, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0
	}
	return temp
}
