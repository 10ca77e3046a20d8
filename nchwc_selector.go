package guda

// NchwcVariant tags which convolution (or pooling) algorithm a dispatch
// selects. Callers must know this tag to pre-permute their filter tensor
// into the layout that variant expects (§6 "Filter layout contract").
type NchwcVariant int

const (
	NchwcPointwise NchwcVariant = iota
	NchwcDirect                 // NCHWc-direct: blocked input, blocked filter
	NchwcDepthwise
	NchwcFromNCHW // first-layer NCHW-to-NCHWc path
	NchwcPool
)

// SelectNchwcConvVariant is the Algorithm Selector (§4.2) for convolution.
// It must run after per-group channel division, since the rules key off
// the per-group channel counts.
func SelectNchwcConvVariant(wb *NchwcWorkBlock) NchwcVariant {
	blockSize := NchwcBlockSize()

	if wb.InputChannels >= blockSize {
		kh, kw := wb.Dims[0].Kernel, wb.Dims[1].Kernel
		padded := wb.Dims[0].PadLeft != 0 || wb.Dims[0].PadRight != 0 ||
			wb.Dims[1].PadLeft != 0 || wb.Dims[1].PadRight != 0
		if kh == 1 && kw == 1 && !padded {
			return NchwcPointwise
		}
		return NchwcDirect
	}

	if wb.InputChannels == 1 && wb.OutputChannels == 1 {
		return NchwcDepthwise
	}

	return NchwcFromNCHW
}
