package guda

// ExecuteNchwcDepthwise implements the depthwise variant (§4.5): one
// channel per group, processed B groups at a time as if it were a
// single-channel conv with B independent lanes. There is no channel-tile
// loop — every call is simultaneously the first and the final writer for
// its output element, so ZeroMode and the bias/activation flags are all
// resolved together on every call, unlike the filter-set variants in
// nchwc_conv.go.
//
// Buffer layout: Input/Output are [N][GroupBlocks][H][W][B] (the B-wide
// blocking runs over the group axis itself, since each group contributes
// exactly one channel); Filter is [GroupBlocks][KH][KW][B] — the
// "B-blocked" layout the filter-repacking contract calls for with no
// cross-lane mixing.
func ExecuteNchwcDepthwise(wb *NchwcWorkBlock, threadIndex, threadCount int, kernel NchwcDepthwiseKernel) {
	B := NchwcBlockSize()
	groupBlocks := (wb.GroupCount + B - 1) / B
	oh := wb.Dims[0].OutputCount
	outputWidth := wb.Dims[1].OutputCount
	inputWidth := wb.Dims[1].InputCount
	leftPad, mid, rightPad := wb.Dims[1].LeftPad, wb.Dims[1].Mid, wb.Dims[1].RightPad

	inPlaneSize := B * wb.InputSize
	outPlaneSize := B * wb.OutputSize
	filterBlockStride := wb.Dims[0].Kernel * wb.Dims[1].Kernel * B

	total := wb.BatchCount * groupBlocks * oh
	start, count := PartitionNchwcWork(threadIndex, threadCount, total)

	for w := start; w < start+count; w++ {
		row := w % oh
		rest := w / oh
		blockIdx := rest % groupBlocks
		batch := rest / groupBlocks

		ih, khEff, filterRowAdvance := computeEffectiveKernel(wb, 0, row)

		inBase := (batch*groupBlocks+blockIdx)*inPlaneSize + ih*inputWidth*B
		outBase := (batch*groupBlocks+blockIdx)*outPlaneSize + row*outputWidth*B
		filterOff := blockIdx*filterBlockStride + filterRowAdvance*wb.Dims[1].Kernel*B

		var bias []float32
		if wb.Bias != nil {
			bias = wb.Bias[blockIdx*B:]
		}

		flags := firstTileFlags(0, wb.ZeroMode) | finalWriterFlags(wb.Bias != nil, wb.Activation)

		kernel(NchwcDepthwiseKernelParams{
			InputPlane: wb.Input[inBase:],
			InputWidth: inputWidth,
			Lane:       B,
			IH:         0,
			StrideX:    wb.Dims[1].Stride,
			DilationX:  wb.Dims[1].Dilation,
			DilationY:  wb.Dims[0].Dilation,
			PadLeftX:   wb.Dims[1].PadLeft,
			Filter:     wb.Filter[filterOff:],
			Output:     wb.Output[outBase:],
			KHEff:      khEff,
			KW:         wb.Dims[1].Kernel,
			Bias:       bias,
			LeftPad:    leftPad,
			Mid:        mid,
			RightPad:   rightPad,
			Flags:      flags,
		})

		if flags&NchwcFlagDeferredActivation != 0 {
			applyActivationInPlace(wb.Output[outBase:outBase+outputWidth*B], wb.Activation)
		}
	}
}
