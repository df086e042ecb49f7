package device

import "testing"

func withProbes(t *testing.T, cuda, metal bool) {
	t.Helper()
	oc, om := cudaPresent, metalPresent
	cudaPresent = func() bool { return cuda }
	metalPresent = func() bool { return metal }
	t.Cleanup(func() { cudaPresent, metalPresent = oc, om })
}

func TestDetect_AutoPrefersCUDA(t *testing.T) {
	withProbes(t, true, true)
	d, err := Detect(Options{})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if d.Kind != KindCUDA || !d.Accelerated() || d.GPULayers != allLayers {
		t.Fatalf("unexpected device: %+v", d)
	}
}

func TestDetect_AutoFallsBackToCPU(t *testing.T) {
	withProbes(t, false, false)
	d, err := Detect(Options{Threads: 3})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if d.Kind != KindCPU || d.Accelerated() || d.GPULayers != 0 {
		t.Fatalf("unexpected device: %+v", d)
	}
	if d.Threads != 3 {
		t.Fatalf("threads override ignored: %d", d.Threads)
	}
}

func TestDetect_AutoMetal(t *testing.T) {
	withProbes(t, false, true)
	d, err := Detect(Options{GPULayers: 12})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if d.Kind != KindMetal || d.GPULayers != 12 {
		t.Fatalf("unexpected device: %+v", d)
	}
}

func TestDetect_ForcedCPUIgnoresAccelerator(t *testing.T) {
	withProbes(t, true, false)
	d, err := Detect(Options{Kind: KindCPU})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if d.Kind != KindCPU || d.Accelerated() {
		t.Fatalf("expected cpu, got %+v", d)
	}
}

func TestDetect_ForcedMissingAcceleratorFails(t *testing.T) {
	withProbes(t, false, false)
	if _, err := Detect(Options{Kind: KindCUDA}); err == nil {
		t.Fatalf("expected error for missing cuda")
	}
	if _, err := Detect(Options{Kind: KindMetal}); err == nil {
		t.Fatalf("expected error for missing metal")
	}
}

func TestDetect_DefaultThreadsPositive(t *testing.T) {
	withProbes(t, false, false)
	d, err := Detect(Options{})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if d.Threads <= 0 || d.Name == "" {
		t.Fatalf("expected detected threads and name, got %+v", d)
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{"": KindAuto, "auto": KindAuto, "CPU": KindCPU, " cuda ": KindCUDA, "metal": KindMetal}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseKind("tpu"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestDetectCUDA_HiddenByEnv(t *testing.T) {
	t.Setenv("CUDA_VISIBLE_DEVICES", "-1")
	if detectCUDA() {
		t.Fatalf("expected CUDA hidden when CUDA_VISIBLE_DEVICES=-1")
	}
}
