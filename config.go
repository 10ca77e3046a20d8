// Package guda configuration constants
package guda

// Cache sizes for different levels (in bytes)
const (
	// L1 cache size per core (typical for modern CPUs)
	L1CacheSize = 32 * 1024 // 32KB
	
	// L2 cache size per core (typical for modern CPUs)
	L2CacheSize = 256 * 1024 // 256KB
	
	// L3 cache size (shared, typical for modern CPUs)
	L3CacheSize = 8 * 1024 * 1024 // 8MB
)

// SIMD vector sizes
const (
	// AVX2 vector width in float32 elements; also the NEON/SSE-width
	// default NchwcBlockSize falls back to when AVX-512 isn't available.
	AVX2VectorSize = 8

	// AVX512 vector width in float32 elements; NchwcBlockSize's block
	// factor B on AVX-512 hosts.
	AVX512VectorSize = 16

	// Default SIMD alignment in bytes; MemoryPool.Allocate rounds every
	// allocation up to this boundary.
	SIMDAlignment = 64
)

// Numerical constants
const (
	// Machine epsilon for float32
	Float32Epsilon = 1.192092896e-07
	
	// Maximum ULP difference for float32 comparisons
	MaxULPDiff = 4
)