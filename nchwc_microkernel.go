package guda

// Microkernel contracts (§6). These are the seams at which hand-tuned SIMD
// code plugs in; the executors in nchwc_conv.go, nchwc_depthwise.go and
// nchwc_pool.go are written purely against these function types and never
// inspect a kernel's internals, so a future AVX2/AVX-512/NEON kernel can
// replace a reference kernel without touching the dispatch logic.
//
// The C ABI this is grounded on passes byte strides and two input
// pointers — one with the left-pad X offset already subtracted (for use
// in the Lpad/Rpad column strips, where bounds-checking is required) and
// one without (for the Mid strip, guaranteed fully in-bounds). Go slices
// cannot express a negative offset at all, so each contract below instead
// passes one always-valid plane slice plus PadLeftX, and a kernel
// reconstructs the equivalent bounds-checked column index itself — the
// reference kernels do this by simply bounds-checking every column
// (correct for all three regions; only the fast path that skips
// bounds-checking on the guaranteed-valid Mid columns is lost, and that
// choice belongs to a real SIMD kernel, not to this reference).
//
// Every plane slice below is laid out [row][col][lane] with `lane`
// spanning the channel dimension of that plane. NchwcConvKernelParams
// splits this into InLane/OutLane since NCHW-to-NCHWc reads a single
// unblocked input channel (InLane==1) while still writing a full
// BlockSize-wide output block; every other kernel keeps input and output
// lanes equal, since depthwise and pool both process exactly one
// BlockSize-wide channel block per call.

// NchwcConvKernel is the signature shared by the NCHWc-direct and
// NCHW-to-NCHWc variants. They differ only in InLane (BlockSize vs 1 —
// NCHW-to-NCHWc reads a single unblocked input channel per call) and in
// how the executor computes plane strides, not in the call shape.
type NchwcConvKernel func(p NchwcConvKernelParams)

// NchwcConvKernelParams bundles one microkernel invocation's arguments for
// the grouped (filter-set) convolution variants.
type NchwcConvKernelParams struct {
	InputPlane []float32 // this call's input channel-block plane, index (row*InputWidth+col)*InLane+inLane
	InputWidth int
	InLane     int // BlockSize for NCHWc-direct, 1 for NCHW-to-NCHWc
	OutLane    int // BlockSize
	IH         int // first effective-kernel input row (already top-trimmed)
	StrideX    int
	DilationX  int
	DilationY  int
	PadLeftX   int

	Filter       []float32 // index fc*FilterStride + (kh*KW+kw)*InLane*OutLane + inLane*OutLane + outLane
	FilterStride int
	Output       []float32 // index fc*OutputStride + col*OutLane + outLane
	OutputStride int
	FilterCount  int
	KHEff, KW    int
	Bias         []float32 // index fc*OutLane+outLane, nil if none
	LeftPad, Mid, RightPad int
	Flags        NchwcKernelFlags
}

// NchwcPointwiseKernel is the 1x1/no-pad signature (§4.5): no kernel
// height/width or Lpad/Mid/Rpad counts, since a pointwise kernel has no
// spatial extent. It instead reports an input-channel-block batch count
// and a flat output-element length — for unstrided convolutions the
// executor may flatten multiple output rows into one strip here.
type NchwcPointwiseKernel func(p NchwcPointwiseKernelParams)

type NchwcPointwiseKernelParams struct {
	Input              []float32 // InputChannelBlocks planes concatenated, each InputPlaneStride elements
	InputPlaneStride   int
	Lane               int
	InputChannelBlocks int
	StrideX            int // output-position stride, in input positions, within one plane

	Filter       []float32 // index fc*FilterStride + block*Lane*Lane + inLane*Lane + outLane
	FilterStride int
	Output       []float32 // index fc*OutputStride + pos*Lane + outLane
	OutputStride int
	FilterCount  int
	OutputLen    int
	Bias         []float32 // index fc*Lane+outLane
	Flags        NchwcKernelFlags
}

// NchwcDepthwiseKernel omits FilterCount and cross-lane filter indexing:
// depthwise processes exactly one BlockSize-wide group-block per call, one
// lane in, one lane out.
type NchwcDepthwiseKernel func(p NchwcDepthwiseKernelParams)

type NchwcDepthwiseKernelParams struct {
	InputPlane []float32
	InputWidth int
	Lane       int
	IH         int
	StrideX    int
	DilationX  int
	DilationY  int
	PadLeftX   int

	Filter  []float32 // index (kh*KW+kw)*Lane+lane
	Output  []float32 // index col*Lane+lane
	KHEff   int
	KW      int
	Bias    []float32 // index lane
	LeftPad, Mid, RightPad int
	Flags   NchwcKernelFlags
}

// NchwcPoolKernel is shared by all three pooling kinds; Kind selects the
// reduction. Average-pooling kinds receive KernelSize as the fixed
// divisor for the include-pad variant; the exclude-pad variant instead
// divides by the count of taps that actually fell inside the input.
type NchwcPoolKernel func(p NchwcPoolKernelParams)

type NchwcPoolKernelParams struct {
	InputPlane []float32
	InputWidth int
	Lane       int
	IH         int
	StrideX    int
	DilationX  int
	DilationY  int
	PadLeftX   int

	Output     []float32 // index col*Lane+lane
	KHEff      int
	KW         int
	KernelSize int
	LeftPad, Mid, RightPad int
	Kind       NchwcPoolingKind
}

// referenceDirectKernel returns the scalar reference implementation of
// NchwcConvKernel used by tests and as the default when no hand-tuned
// kernel is supplied — correct, not fast.
func referenceDirectKernel() NchwcConvKernel {
	return func(p NchwcConvKernelParams) {
		totalCols := p.LeftPad + p.Mid + p.RightPad

		for fc := 0; fc < p.FilterCount; fc++ {
			out := p.Output[fc*p.OutputStride:]
			filterFC := p.Filter[fc*p.FilterStride:]

			for col := 0; col < totalCols; col++ {
				x0 := col*p.StrideX - p.PadLeftX

				for outLane := 0; outLane < p.OutLane; outLane++ {
					idx := col*p.OutLane + outLane

					var sum float32
					if p.Flags&NchwcFlagAccumulate != 0 {
						sum = out[idx]
					}

					for kh := 0; kh < p.KHEff; kh++ {
						row := p.IH + kh*p.DilationY
						if row < 0 {
							continue
						}
						for kw := 0; kw < p.KW; kw++ {
							x := x0 + kw*p.DilationX
							if x < 0 || x >= p.InputWidth {
								continue
							}
							in := p.InputPlane[(row*p.InputWidth+x)*p.InLane:]
							f := filterFC[(kh*p.KW+kw)*p.InLane*p.OutLane:]
							for inLane := 0; inLane < p.InLane; inLane++ {
								sum += in[inLane] * f[inLane*p.OutLane+outLane]
							}
						}
					}

					if p.Flags&NchwcFlagAddBias != 0 && p.Bias != nil {
						sum += p.Bias[fc*p.OutLane+outLane]
					}
					if p.Flags&NchwcFlagReLU != 0 && sum < 0 {
						sum = 0
					}
					out[idx] = sum
				}
			}
		}
	}
}

func referencePointwiseKernel() NchwcPointwiseKernel {
	return func(p NchwcPointwiseKernelParams) {
		for fc := 0; fc < p.FilterCount; fc++ {
			out := p.Output[fc*p.OutputStride:]

			for pos := 0; pos < p.OutputLen; pos++ {
				for outLane := 0; outLane < p.Lane; outLane++ {
					idx := pos*p.Lane + outLane

					var sum float32
					if p.Flags&NchwcFlagAccumulate != 0 {
						sum = out[idx]
					}

					for b := 0; b < p.InputChannelBlocks; b++ {
						in := p.Input[b*p.InputPlaneStride+pos*p.StrideX*p.Lane:]
						f := p.Filter[fc*p.FilterStride+b*p.Lane*p.Lane:]
						for inLane := 0; inLane < p.Lane; inLane++ {
							sum += in[inLane] * f[inLane*p.Lane+outLane]
						}
					}

					if p.Flags&NchwcFlagAddBias != 0 && p.Bias != nil {
						sum += p.Bias[fc*p.Lane+outLane]
					}
					if p.Flags&NchwcFlagReLU != 0 && sum < 0 {
						sum = 0
					}
					out[idx] = sum
				}
			}
		}
	}
}

func referenceDepthwiseKernel() NchwcDepthwiseKernel {
	return func(p NchwcDepthwiseKernelParams) {
		totalCols := p.LeftPad + p.Mid + p.RightPad

		for col := 0; col < totalCols; col++ {
			x0 := col*p.StrideX - p.PadLeftX

			for lane := 0; lane < p.Lane; lane++ {
				idx := col*p.Lane + lane

				var sum float32
				if p.Flags&NchwcFlagAccumulate != 0 {
					sum = p.Output[idx]
				}

				for kh := 0; kh < p.KHEff; kh++ {
					row := p.IH + kh*p.DilationY
					if row < 0 {
						continue
					}
					for kw := 0; kw < p.KW; kw++ {
						x := x0 + kw*p.DilationX
						if x < 0 || x >= p.InputWidth {
							continue
						}
						sum += p.InputPlane[(row*p.InputWidth+x)*p.Lane+lane] * p.Filter[(kh*p.KW+kw)*p.Lane+lane]
					}
				}

				if p.Flags&NchwcFlagAddBias != 0 && p.Bias != nil {
					sum += p.Bias[lane]
				}
				if p.Flags&NchwcFlagReLU != 0 && sum < 0 {
					sum = 0
				}
				p.Output[idx] = sum
			}
		}
	}
}

func referencePoolKernel() NchwcPoolKernel {
	return func(p NchwcPoolKernelParams) {
		totalCols := p.LeftPad + p.Mid + p.RightPad

		for col := 0; col < totalCols; col++ {
			x0 := col*p.StrideX - p.PadLeftX

			for lane := 0; lane < p.Lane; lane++ {
				var best float32
				var sum float32
				count := 0
				first := true

				for kh := 0; kh < p.KHEff; kh++ {
					row := p.IH + kh*p.DilationY
					if row < 0 {
						continue
					}
					for kw := 0; kw < p.KW; kw++ {
						x := x0 + kw*p.DilationX
						if x < 0 || x >= p.InputWidth {
							continue
						}
						v := p.InputPlane[(row*p.InputWidth+x)*p.Lane+lane]
						if p.Kind == NchwcMaxPool {
							if first || v > best {
								best = v
								first = false
							}
						} else {
							sum += v
							count++
						}
					}
				}

				var result float32
				switch p.Kind {
				case NchwcMaxPool:
					result = best
				case NchwcAvgPoolIncludePad:
					result = sum / float32(p.KernelSize)
				case NchwcAvgPoolExcludePad:
					if count > 0 {
						result = sum / float32(count)
					}
				}
				p.Output[col*p.Lane+lane] = result
			}
		}
	}
}
