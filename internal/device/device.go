// Package device picks the compute device a model is bound to for the
// lifetime of the process: an accelerator when one is present, otherwise the
// general-purpose processor.
package device

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"

	"textgen/pkg/types"
)

// Kind names a class of compute device.
type Kind string

const (
	KindAuto  Kind = "auto"
	KindCPU   Kind = "cpu"
	KindCUDA  Kind = "cuda"
	KindMetal Kind = "metal"
)

// allLayers asks llama.cpp to offload every layer to the accelerator.
const allLayers = 999

// Device is the resolved compute device.
type Device struct {
	Kind      Kind
	Name      string
	Threads   int
	GPULayers int
}

// Accelerated reports whether model layers are offloaded off the CPU.
func (d Device) Accelerated() bool { return d.Kind != KindCPU && d.GPULayers > 0 }

func (d Device) String() string {
	if d.Accelerated() {
		return fmt.Sprintf("%s (%s, %d layers offloaded, %d threads)", d.Kind, d.Name, d.GPULayers, d.Threads)
	}
	return fmt.Sprintf("%s (%s, %d threads)", d.Kind, d.Name, d.Threads)
}

// Info is the wire form reported by GET /info and `textgen device`.
func (d Device) Info() types.DeviceInfo {
	return types.DeviceInfo{Kind: string(d.Kind), Name: d.Name, Threads: d.Threads, GPULayers: d.GPULayers}
}

// Options constrain detection. Zero values mean "detect".
type Options struct {
	// Kind forces a device kind; empty or "auto" detects.
	Kind Kind
	// Threads overrides the CPU thread count.
	Threads int
	// GPULayers overrides how many layers are offloaded when accelerated.
	GPULayers int
}

// ParseKind validates a device kind string from configuration.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "", KindAuto:
		return KindAuto, nil
	case KindCPU, KindCUDA, KindMetal:
		return k, nil
	default:
		return "", fmt.Errorf("unknown device %q (want auto|cpu|cuda|metal)", s)
	}
}

// Probes are swapped in tests.
var (
	cudaPresent  = detectCUDA
	metalPresent = detectMetal
)

// cudaProbePaths are files the NVIDIA kernel driver exposes when a device is usable.
var cudaProbePaths = []string{
	"/proc/driver/nvidia/version",
	"/dev/nvidia0",
}

func detectCUDA() bool {
	// CUDA_VISIBLE_DEVICES="" or "-1" hides every device from the runtime.
	if v, ok := os.LookupEnv("CUDA_VISIBLE_DEVICES"); ok {
		v = strings.TrimSpace(v)
		if v == "" || v == "-1" {
			return false
		}
	}
	for _, p := range cudaProbePaths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

func detectMetal() bool {
	return runtime.GOOS == "darwin" && runtime.GOARCH == "arm64"
}

// Detect resolves the compute device. An explicitly requested accelerator
// that is not present is an error; startup treats it as fatal.
func Detect(opts Options) (Device, error) {
	kind := opts.Kind
	if kind == "" {
		kind = KindAuto
	}
	d := Device{Kind: KindCPU, Name: cpuName(), Threads: cpuThreads(opts.Threads)}

	switch kind {
	case KindCPU:
		return d, nil
	case KindCUDA:
		if !cudaPresent() {
			return Device{}, fmt.Errorf("device cuda requested but no NVIDIA device is visible")
		}
		d.Kind, d.Name = KindCUDA, "NVIDIA GPU"
	case KindMetal:
		if !metalPresent() {
			return Device{}, fmt.Errorf("device metal requested but not running on Apple silicon")
		}
		d.Kind, d.Name = KindMetal, "Apple GPU"
	case KindAuto:
		switch {
		case cudaPresent():
			d.Kind, d.Name = KindCUDA, "NVIDIA GPU"
		case metalPresent():
			d.Kind, d.Name = KindMetal, "Apple GPU"
		default:
			return d, nil
		}
	default:
		return Device{}, fmt.Errorf("unknown device %q", kind)
	}
	d.GPULayers = allLayers
	if opts.GPULayers > 0 {
		d.GPULayers = opts.GPULayers
	}
	return d, nil
}

func cpuName() string {
	if name := strings.TrimSpace(cpuid.CPU.BrandName); name != "" {
		return name
	}
	return runtime.GOARCH + " cpu"
}

func cpuThreads(override int) int {
	if override > 0 {
		return override
	}
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}
