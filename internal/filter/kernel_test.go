package filter

import (
	"math"
	"testing"
)

func TestGaussianKernelIdentity(t *testing.T) {
	for _, sigma := range []float64{0, -5} {
		kernel := GaussianKernel(sigma)
		if len(kernel) != 1 || kernel[0] != 1.0 {
			t.Errorf("GaussianKernel(%v) = %v, want [1]", sigma, kernel)
		}
	}
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{1, 2, 3, 5, 10} {
		var sum float32
		for _, v := range GaussianKernel(sigma) {
			sum += v
		}
		if math.Abs(float64(sum)-1.0) > 0.001 {
			t.Errorf("GaussianKernel(%v) sum = %v, want ~1.0", sigma, sum)
		}
	}
}

func TestGaussianKernelSymmetric(t *testing.T) {
	kernel := GaussianKernel(5)
	n := len(kernel)

	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if math.Abs(float64(kernel[i]-kernel[j])) > 0.0001 {
			t.Errorf("kernel[%d] = %v != kernel[%d] = %v (asymmetric)", i, kernel[i], j, kernel[j])
		}
	}
}

func TestGaussianKernelSize(t *testing.T) {
	tests := []struct {
		sigma    float64
		wantSize int
	}{
		{0.5, 5},
		{1.0, 7},
		{5.0, 31},
		{10.0, 61},
	}

	for _, tt := range tests {
		if got := len(GaussianKernel(tt.sigma)); got != tt.wantSize {
			t.Errorf("GaussianKernel(%v) len = %d, want %d", tt.sigma, got, tt.wantSize)
		}
	}
}

func TestGaussianKernelPeakAtCenter(t *testing.T) {
	kernel := GaussianKernel(5)
	center := len(kernel) / 2

	maxIdx := 0
	for i, v := range kernel {
		if v > kernel[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != center {
		t.Errorf("kernel peak at %d, want %d (center)", maxIdx, center)
	}
}

func TestCachedGaussianKernel(t *testing.T) {
	k1 := CachedGaussianKernel(5.0)
	k2 := CachedGaussianKernel(5.0)

	if len(k1) != len(k2) {
		t.Fatalf("cached kernel len mismatch: %d != %d", len(k1), len(k2))
	}
	for i := range k1 {
		if k1[i] != k2[i] {
			t.Errorf("cached kernel[%d] mismatch: %v != %v", i, k1[i], k2[i])
		}
	}

	if len(CachedGaussianKernel(10.0)) == len(k1) {
		t.Error("different sigmas should produce different kernel sizes")
	}
}

func TestKernelCacheEvicts(t *testing.T) {
	c := newKernelCache(4)
	for i := 1; i <= 10; i++ {
		c.get(float64(i))
	}
	if len(c.cache) > 4 {
		t.Errorf("cache holds %d kernels, want <= 4", len(c.cache))
	}
}

func BenchmarkGaussianKernel(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = GaussianKernel(10)
	}
}
