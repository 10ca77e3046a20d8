package guda

// Package-level constants for the blocked NCHWc convolution/pooling engine.
//
// The engine reinterprets a [N, C, H, W] tensor as [N, C/BlockSize, H, W,
// BlockSize] so that channel loads within one block are contiguous and can
// be held in a small number of SIMD registers. BlockSize is fixed for the
// lifetime of the process; it is not renegotiated per dispatch.
const (
	// NchwcFilterSetSize is the number of BlockSize-wide output-channel
	// blocks processed together in the grouped-convolution inner loop, to
	// amortize the cost of reloading the input tile across output blocks.
	// Sized off config.go's L1CacheSize: a filter set of 4 blocks keeps the
	// working filter tile well inside L1 alongside the input tile it's
	// multiplied against.
	NchwcFilterSetSize = L1CacheSize / (8 * 1024)

	// NchwcMaxInputChannelBatch bounds how many input channels the
	// pointwise path sweeps per microkernel call, trading cache residency
	// against partial-sum flushing. Sized off config.go's L2CacheSize so
	// the accumulated partial-sum tile for a batch stays L2-resident.
	NchwcMaxInputChannelBatch = L2CacheSize / (2 * 1024)
)

// NchwcBlockSize returns the platform channel-blocking factor B. It is
// AVX-512-width (16 float32 lanes) when the CPU supports AVX-512F, and the
// SSE/NEON-width default (8) otherwise.
func NchwcBlockSize() int {
	if HasAVX512() {
		return AVX512VectorSize
	}
	return AVX2VectorSize
}

// NchwcDim holds the sanitized kernel/dilation/pad/stride parameters for one
// spatial dimension plus its derived output partition (§3 of the design).
type NchwcDim struct {
	InputCount  int // IH
	OutputCount int // OH
	Kernel      int
	Dilation    int
	PadLeft     int
	PadRight    int
	Stride      int

	// LeftPad, Mid, RightPad partition OutputCount into the three regions
	// of §3: LeftPad+Mid+RightPad == OutputCount, and only Mid reads
	// exclusively valid (unpadded) input.
	LeftPad  int
	Mid      int
	RightPad int
}

// NchwcActivationKind tags which activation an NCHWc dispatch fuses or
// applies as a post-pass. Only Identity and ReLU are fused into a
// microkernel; the rest are applied by ApplyDeferredActivation.
type NchwcActivationKind int

const (
	NchwcIdentity NchwcActivationKind = iota
	NchwcReLU
	NchwcLeakyReLU
	NchwcClip
	NchwcSigmoid
	NchwcTanh
	NchwcHardSigmoid
)

// NchwcActivation is the tagged-variant activation record of §6.
type NchwcActivation struct {
	Kind       NchwcActivationKind
	Alpha      float32 // LeakyReLU slope; HardSigmoid slope
	Beta       float32 // HardSigmoid offset
	ClipMin    float32
	ClipMax    float32
}

// NchwcPoolingKind selects the pooling microkernel (§6).
type NchwcPoolingKind int

const (
	NchwcMaxPool NchwcPoolingKind = iota
	NchwcAvgPoolIncludePad
	NchwcAvgPoolExcludePad
)

// NchwcWorkBlock is the read-only-during-dispatch state shared by every
// worker of one Conv or Pool call (§3 "Work block"). Input/Filter/Output/
// Bias are the caller-owned buffer bases; workers copy these slices and
// track their own integer offsets into them rather than mutating the
// WorkBlock itself.
type NchwcWorkBlock struct {
	ThreadCount    int
	BatchCount     int
	InputChannels  int // per-group, after division by GroupCount
	OutputChannels int // per-group, after division by GroupCount
	InputSize      int // product of Dims[*].InputCount
	OutputSize     int // product of Dims[*].OutputCount
	KernelSize     int // product of Dims[*].Kernel

	// Dims[0] is height, Dims[1] is width. A third entry is carried for
	// symmetry with the original shape-arithmetic contract (which accepts
	// up to 3 spatial dims) but the variant executors below only walk
	// height/width, matching the primary D=2 target.
	Dims [3]NchwcDim

	Input, Filter, Bias, Output []float32

	GroupCount  int
	Activation  NchwcActivation
	ZeroMode    bool
	PoolingKind NchwcPoolingKind
}

// PreprocessNchwcWorkBlock is the Shape Preprocessor (§4.1). It copies and
// defaults the per-dimension kernel/dilation/pad/stride parameters and
// derives the (LeftPad, Mid, RightPad) output partition for each of the
// first `dims` spatial dimensions. It performs no validation: shape
// validity is the caller's precondition, same as the engine it mirrors.
func PreprocessNchwcWorkBlock(
	wb *NchwcWorkBlock,
	dims int,
	inputShape []int64,
	kernelShape []int64,
	dilationShape []int64,
	padding []int64,
	strideShape []int64,
	outputShape []int64,
) {
	wb.BatchCount = int(inputShape[0])
	wb.InputChannels = int(inputShape[1])
	wb.OutputChannels = int(outputShape[1])

	inputShape = inputShape[2:]
	outputShape = outputShape[2:]

	inputSize, outputSize, kernelSize := 1, 1, 1

	for d := 0; d < dims; d++ {
		ih := int(inputShape[d])
		oh := int(outputShape[d])

		dim := NchwcDim{InputCount: ih, OutputCount: oh}

		if kernelShape != nil {
			dim.Kernel = int(kernelShape[d])
		} else {
			dim.Kernel = ih
		}
		if dilationShape != nil {
			dim.Dilation = int(dilationShape[d])
		} else {
			dim.Dilation = 1
		}
		if padding != nil {
			dim.PadLeft = int(padding[d])
			dim.PadRight = int(padding[d+dims])
		}
		if strideShape != nil {
			dim.Stride = int(strideShape[d])
		} else {
			dim.Stride = 1
		}

		span := dim.Dilation*(dim.Kernel-1) + 1

		var mid int
		if ih >= span {
			mid = (ih-span)/dim.Stride + 1
		}

		var withLeftPad int
		if ih+dim.PadLeft >= span {
			withLeftPad = (ih+dim.PadLeft-span)/dim.Stride + 1
		} else {
			withLeftPad = oh
		}

		leftPad := withLeftPad - mid
		if leftPad == 0 && dim.PadLeft > 0 {
			// Forces the generic boundary path on the first output row
			// even though no row is strictly out of bounds, so the
			// microkernel's left-pad and interior strip generators stay
			// aligned at the same dividing line. Reproduced verbatim from
			// the MLAS shape preprocessor this engine is grounded on.
			leftPad = 1
			mid--
		}

		dim.LeftPad = leftPad
		dim.Mid = mid
		dim.RightPad = oh - withLeftPad

		wb.Dims[d] = dim

		inputSize *= ih
		outputSize *= oh
		kernelSize *= dim.Kernel
	}

	wb.InputSize = inputSize
	wb.OutputSize = outputSize
	wb.KernelSize = kernelSize
}
