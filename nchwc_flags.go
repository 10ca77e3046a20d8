package guda

// NchwcKernelFlags is the 4-bit binary interface between the engine and its
// microkernels (§4.7). Bits 1-3 may only be set on the single "final
// writer" call for a given output element — the call that completes its
// last input-channel block — enforced by each executor checking
// channel-block-index+blockSize == InputChannels (or the group-channel
// equivalent) before setting them.
type NchwcKernelFlags uint8

const (
	// NchwcFlagAccumulate instructs the microkernel to read-modify-write
	// the output rather than overwrite it: set on every call that is not
	// the first input-channel tile for an output element, or whenever
	// ZeroMode is false.
	NchwcFlagAccumulate NchwcKernelFlags = 1 << 0

	// NchwcFlagAddBias is set only on the final-writer call, only if a
	// bias buffer was supplied.
	NchwcFlagAddBias NchwcKernelFlags = 1 << 1

	// NchwcFlagReLU is set only on the final-writer call, only when the
	// activation is ReLU (fused directly into the microkernel).
	NchwcFlagReLU NchwcKernelFlags = 1 << 2

	// NchwcFlagDeferredActivation is set only on the final-writer call,
	// only when the activation is neither Identity nor ReLU. The executor
	// must apply the activation itself, over the just-written tile, after
	// the microkernel call returns.
	NchwcFlagDeferredActivation NchwcKernelFlags = 1 << 3
)

// firstTileFlags computes bit 0 for a call over input-channel tile `ic` of
// `inputChannels` total, given ZeroMode.
func firstTileFlags(ic int, zeroMode bool) NchwcKernelFlags {
	if ic != 0 || !zeroMode {
		return NchwcFlagAccumulate
	}
	return 0
}

// finalWriterFlags computes bits 1-3 for the call that completes the last
// input-channel tile of an output element. hasBias must reflect whether a
// bias buffer was supplied to the dispatch, not merely whether one exists.
func finalWriterFlags(hasBias bool, activation NchwcActivation) NchwcKernelFlags {
	var flags NchwcKernelFlags
	if hasBias {
		flags |= NchwcFlagAddBias
	}
	switch activation.Kind {
	case NchwcReLU:
		flags |= NchwcFlagReLU
	case NchwcIdentity:
		// no-op: fused as pass-through
	default:
		flags |= NchwcFlagDeferredActivation
	}
	return flags
}

// applyDeferredActivation is the Epilogue Dispatcher's post-pass (§4.7):
// for activations that do not fuse into a microkernel, it sweeps the tile
// the microkernel just wrote and applies the activation in place. The
// tile is logically FilterCount rows of rowLen elements each, with
// consecutive rows separated by rowStride elements — the blocked NCHWc
// layout packs BlockSize*OutputSize elements between one output channel
// block's plane and the next, so rowStride is that value rather than
// rowLen itself except in the flattened pointwise case where they coincide.
func applyDeferredActivation(output []float32, filterCount, rowLen, rowStride int, act NchwcActivation) {
	for f := 0; f < filterCount; f++ {
		row := output[f*rowStride : f*rowStride+rowLen]
		applyActivationInPlace(row, act)
	}
}

func applyActivationInPlace(row []float32, act NchwcActivation) {
	switch act.Kind {
	case NchwcSigmoid:
		for i, v := range row {
			row[i] = SigmoidFloat32(v)
		}
	case NchwcTanh:
		for i, v := range row {
			row[i] = TanhFloat32(v)
		}
	case NchwcLeakyReLU:
		alpha := act.Alpha
		for i, v := range row {
			if v < 0 {
				row[i] = v * alpha
			}
		}
	case NchwcClip:
		lo, hi := act.ClipMin, act.ClipMax
		for i, v := range row {
			if v < lo {
				row[i] = lo
			} else if v > hi {
				row[i] = hi
			}
		}
	case NchwcHardSigmoid:
		alpha, beta := act.Alpha, act.Beta
		for i, v := range row {
			h := alpha*v + beta
			if h < 0 {
				h = 0
			} else if h > 1 {
				h = 1
			}
			row[i] = h
		}
	}
}
