package guda

// groupedConvState is the shared-field base the design notes (§9) call for:
// the "base NN algorithm / base conv / base grouped-conv" inheritance chain
// of the engine this is grounded on expresses no virtual dispatch, just
// state shared by every filter-set-based variant plus a couple of derived
// counts. NCHWc-direct, NCHW-to-NCHWc and pointwise all embed it; depthwise
// and pool do not, since neither has a filter-set loop.
type groupedConvState struct {
	wb *NchwcWorkBlock

	blockSize         int
	groupCount        int
	inBlocksPerGroup  int
	outBlocksPerGroup int
	filterSetCount    int // ceil(outBlocksPerGroup / FilterSetSize)

	// Element strides for one buffer layout choice: every per-group buffer
	// is a concatenation of (batch, group) blocks, each block itself a
	// concatenation of channel-block planes, each plane contiguous
	// [H][W][lanes]. Filter layout mirrors this per variant, documented at
	// each executor below since NCHW-to-NCHWc is not channel-blocked on
	// its input side.
	inPlaneSize  int // blockSize * wb.InputSize
	outPlaneSize int // blockSize * wb.OutputSize
}

func newGroupedConvState(wb *NchwcWorkBlock) groupedConvState {
	blockSize := NchwcBlockSize()
	inBlocks := wb.InputChannels / blockSize
	outBlocks := wb.OutputChannels / blockSize
	filterSetCount := (outBlocks + NchwcFilterSetSize - 1) / NchwcFilterSetSize

	return groupedConvState{
		wb:                wb,
		blockSize:         blockSize,
		groupCount:        wb.GroupCount,
		inBlocksPerGroup:  inBlocks,
		outBlocksPerGroup: outBlocks,
		filterSetCount:    filterSetCount,
		inPlaneSize:       blockSize * wb.InputSize,
		outPlaneSize:      blockSize * wb.OutputSize,
	}
}

// totalWork is N·G·FSC·rows — the decomposition innermost axis is rows,
// matching §4.4's "successive quotient/remainder, innermost axis = OH".
// rows is OH for every variant except unstrided pointwise, which flattens
// all rows into the microkernel's single strip argument (§4.5) and so
// contributes a rows multiplier of 1.
func (g *groupedConvState) totalWork(rows int) int {
	return g.wb.BatchCount * g.groupCount * g.filterSetCount * rows
}

// decompose turns a flat work index into (batch, group, filterSet, row)
// given the same `rows` multiplier totalWork was built with.
func (g *groupedConvState) decompose(work, rows int) (batch, group, filterSet, row int) {
	row = work % rows
	work /= rows
	filterSet = work % g.filterSetCount
	work /= g.filterSetCount
	group = work % g.groupCount
	batch = work / g.groupCount
	return
}

// filterSetSpan returns the output-channel-block range [start, start+count)
// this filter set covers within its group.
func (g *groupedConvState) filterSetSpan(filterSet int) (start, count int) {
	start = filterSet * NchwcFilterSetSize
	count = NchwcFilterSetSize
	if start+count > g.outBlocksPerGroup {
		count = g.outBlocksPerGroup - start
	}
	return
}

func (g *groupedConvState) inputBase(batch, group int) int {
	return (batch*g.groupCount + group) * g.inBlocksPerGroup * g.inPlaneSize
}

func (g *groupedConvState) outputBase(batch, group int) int {
	return (batch*g.groupCount + group) * g.outBlocksPerGroup * g.outPlaneSize
}

// runConvVariant is the common driver for the three filter-set-based
// variants (§4.4): partition, decompose, walk rows, build flags, call the
// effective-kernel helper, invoke writeRow. writeRow receives everything
// it needs to call the actual microkernel — the three callers differ only
// in how they compute filter/input offsets and which microkernel they call.
func runConvVariant(g *groupedConvState, rows int, threadIndex, threadCount int,
	writeRow func(batch, group, outBlockStart, filterCount, row, ih, khEff, filterRowAdvance int, flags func(ic, lastIC int) NchwcKernelFlags)) {

	total := g.totalWork(rows)
	start, count := PartitionNchwcWork(threadIndex, threadCount, total)

	for w := start; w < start+count; w++ {
		batch, group, filterSet, row := g.decompose(w, rows)
		outBlockStart, filterCount := g.filterSetSpan(filterSet)

		var ih, khEff, filterRowAdvance int
		if rows > 1 {
			ih, khEff, filterRowAdvance = computeEffectiveKernel(g.wb, 0, row)
		} else {
			ih, khEff, filterRowAdvance = -g.wb.Dims[0].PadLeft, g.wb.Dims[0].Kernel, 0
		}

		flags := func(ic, lastIC int) NchwcKernelFlags {
			f := firstTileFlags(ic, g.wb.ZeroMode)
			if ic == lastIC {
				f |= finalWriterFlags(g.wb.Bias != nil, g.wb.Activation)
			}
			return f
		}

		writeRow(batch, group, outBlockStart, filterCount, row, ih, khEff, filterRowAdvance, flags)
	}
}

// ExecuteNchwcDirect implements the NCHWc-direct variant (§4.5): blocked
// input, blocked filter, one microkernel call per (batch, group, filter
// set, output row), sweeping input channel blocks inside.
//
// Filter layout: [group][outBlock][inBlock][KH][KW][inLane][outLane],
// contiguous in that order — the "B-blocked output channels, B-blocked
// input channels" layout the filter-repacking contract (§6) calls for.
func ExecuteNchwcDirect(wb *NchwcWorkBlock, threadIndex, threadCount int, kernel NchwcConvKernel) {
	g := newGroupedConvState(wb)
	B := g.blockSize
	kh, kw := wb.Dims[0].Kernel, wb.Dims[1].Kernel
	leftPad, mid, rightPad := wb.Dims[1].LeftPad, wb.Dims[1].Mid, wb.Dims[1].RightPad
	outputWidth := wb.Dims[1].OutputCount
	inputWidth := wb.Dims[1].InputCount

	perOutBlockStride := g.inBlocksPerGroup * kh * kw * B * B

	runConvVariant(&g, wb.Dims[0].OutputCount, threadIndex, threadCount,
		func(batch, group, outBlockStart, filterCount, row, ih, khEff, filterRowAdvance int, flags func(int, int) NchwcKernelFlags) {
			groupFilterBase := group * g.outBlocksPerGroup * perOutBlockStride
			inBase := g.inputBase(batch, group)
			outBase := g.outputBase(batch, group) + outBlockStart*g.outPlaneSize + row*outputWidth*B

			var bias []float32
			if wb.Bias != nil {
				bias = wb.Bias[group*g.outBlocksPerGroup*B+outBlockStart*B:]
			}

			for ic := 0; ic < g.inBlocksPerGroup; ic++ {
				f := flags(ic, g.inBlocksPerGroup-1)
				filterOff := groupFilterBase + outBlockStart*perOutBlockStride + ic*kh*kw*B*B + filterRowAdvance*kw*B*B
				inputOff := inBase + ic*g.inPlaneSize + ih*inputWidth*B

				kernel(NchwcConvKernelParams{
					InputPlane:   wb.Input[inputOff:],
					InputWidth:   inputWidth,
					InLane:       B,
					OutLane:      B,
					IH:           0,
					StrideX:      wb.Dims[1].Stride,
					DilationX:    wb.Dims[1].Dilation,
					DilationY:    wb.Dims[0].Dilation,
					PadLeftX:     wb.Dims[1].PadLeft,
					Filter:       wb.Filter[filterOff:],
					FilterStride: perOutBlockStride,
					Output:       wb.Output[outBase:],
					OutputStride: g.outPlaneSize,
					FilterCount:  filterCount,
					KHEff:        khEff,
					KW:           kw,
					Bias:         bias,
					LeftPad:      leftPad,
					Mid:          mid,
					RightPad:     rightPad,
					Flags:        f,
				})

				if f&NchwcFlagDeferredActivation != 0 {
					applyDeferredActivation(wb.Output[outBase:], filterCount, outputWidth*B, g.outPlaneSize, wb.Activation)
				}
			}
		})
}

// ExecuteNchwcFromNCHW implements the NCHW-to-NCHWc first-layer variant
// (§4.5): identical outer decomposition to NCHWc-direct, but the input is
// not channel-blocked, so the inner loop sweeps individual channels and
// filter/input strides are in element (not block) units.
//
// Filter layout: [group][outBlock][inChannel][KH][KW][outLane] — "B-blocked
// output × contiguous input" per the filter-repacking contract.
func ExecuteNchwcFromNCHW(wb *NchwcWorkBlock, threadIndex, threadCount int, kernel NchwcConvKernel) {
	g := newGroupedConvState(wb)
	B := g.blockSize
	kh, kw := wb.Dims[0].Kernel, wb.Dims[1].Kernel
	leftPad, mid, rightPad := wb.Dims[1].LeftPad, wb.Dims[1].Mid, wb.Dims[1].RightPad
	outputWidth := wb.Dims[1].OutputCount
	inputWidth := wb.Dims[1].InputCount
	inputChannels := wb.InputChannels // unblocked: per-group channel count, no division by B

	perOutBlockStride := inputChannels * kh * kw * B

	runConvVariant(&g, wb.Dims[0].OutputCount, threadIndex, threadCount,
		func(batch, group, outBlockStart, filterCount, row, ih, khEff, filterRowAdvance int, flags func(int, int) NchwcKernelFlags) {
			groupFilterBase := group * g.outBlocksPerGroup * perOutBlockStride
			inBase := (batch*g.groupCount + group) * inputChannels * wb.InputSize
			outBase := g.outputBase(batch, group) + outBlockStart*g.outPlaneSize + row*outputWidth*B

			var bias []float32
			if wb.Bias != nil {
				bias = wb.Bias[group*g.outBlocksPerGroup*B+outBlockStart*B:]
			}

			for ic := 0; ic < inputChannels; ic++ {
				f := flags(ic, inputChannels-1)
				filterOff := groupFilterBase + outBlockStart*perOutBlockStride + ic*kh*kw*B + filterRowAdvance*kw*B
				inputOff := inBase + ic*wb.InputSize + ih*inputWidth

				kernel(NchwcConvKernelParams{
					InputPlane:   wb.Input[inputOff:],
					InputWidth:   inputWidth,
					InLane:       1,
					OutLane:      B,
					IH:           0,
					StrideX:      wb.Dims[1].Stride,
					DilationX:    wb.Dims[1].Dilation,
					DilationY:    wb.Dims[0].Dilation,
					PadLeftX:     wb.Dims[1].PadLeft,
					Filter:       wb.Filter[filterOff:],
					FilterStride: perOutBlockStride,
					Output:       wb.Output[outBase:],
					OutputStride: g.outPlaneSize,
					FilterCount:  filterCount,
					KHEff:        khEff,
					KW:           kw,
					Bias:         bias,
					LeftPad:      leftPad,
					Mid:          mid,
					RightPad:     rightPad,
					Flags:        f,
				})

				if f&NchwcFlagDeferredActivation != 0 {
					applyDeferredActivation(wb.Output[outBase:], filterCount, outputWidth*B, g.outPlaneSize, wb.Activation)
				}
			}
		})
}

// ExecuteNchwcPointwise implements the 1x1/no-pad variant (§4.5). The
// effective-kernel helper is bypassed entirely since a pointwise kernel has
// no spatial extent; when both strides are 1 all output rows flatten into
// one microkernel call per (batch, group, filter set). The inner loop
// sweeps input-channel blocks in batches of up to MaxInputChannelBatch.
//
// Filter layout: [group][outBlock][inBlock][inLane][outLane] — no KH/KW,
// matching the pointwise filter-repacking contract.
func ExecuteNchwcPointwise(wb *NchwcWorkBlock, threadIndex, threadCount int, kernel NchwcPointwiseKernel) {
	g := newGroupedConvState(wb)
	B := g.blockSize
	unstrided := wb.Dims[0].Stride == 1 && wb.Dims[1].Stride == 1

	rows := wb.Dims[0].OutputCount
	if unstrided {
		rows = 1
	}
	outputWidth := wb.Dims[1].OutputCount

	perOutBlockStride := g.inBlocksPerGroup * B * B

	runConvVariant(&g, rows, threadIndex, threadCount,
		func(batch, group, outBlockStart, filterCount, row, ih, khEff, filterRowAdvance int, flags func(int, int) NchwcKernelFlags) {
			groupFilterBase := group * g.outBlocksPerGroup * perOutBlockStride
			inBase := g.inputBase(batch, group)
			outBase := g.outputBase(batch, group) + outBlockStart*g.outPlaneSize

			outputLen := wb.OutputSize
			inputStartElem := 0
			if !unstrided {
				outBase += row * outputWidth * B
				outputLen = outputWidth
				inputStartElem = row * wb.Dims[0].Stride * wb.Dims[1].InputCount
			}

			var bias []float32
			if wb.Bias != nil {
				bias = wb.Bias[group*g.outBlocksPerGroup*B+outBlockStart*B:]
			}

			lastBatch := (g.inBlocksPerGroup - 1) / NchwcMaxInputChannelBatch
			for batchStart := 0; batchStart < g.inBlocksPerGroup; batchStart += NchwcMaxInputChannelBatch {
				blocks := NchwcMaxInputChannelBatch
				if batchStart+blocks > g.inBlocksPerGroup {
					blocks = g.inBlocksPerGroup - batchStart
				}
				batchIdx := batchStart / NchwcMaxInputChannelBatch
				f := flags(batchIdx, lastBatch)

				filterOff := groupFilterBase + outBlockStart*perOutBlockStride + batchStart*B*B
				inputOff := inBase + batchStart*g.inPlaneSize + inputStartElem*B

				kernel(NchwcPointwiseKernelParams{
					Input:              wb.Input[inputOff:],
					InputPlaneStride:   g.inPlaneSize,
					Lane:               B,
					InputChannelBlocks: blocks,
					StrideX:            wb.Dims[1].Stride,
					Filter:             wb.Filter[filterOff:],
					FilterStride:       perOutBlockStride,
					Output:             wb.Output[outBase:],
					OutputStride:       g.outPlaneSize,
					FilterCount:        filterCount,
					OutputLen:          outputLen,
					Bias:               bias,
					Flags:              f,
				})

				if f&NchwcFlagDeferredActivation != 0 {
					applyDeferredActivation(wb.Output[outBase:], filterCount, outputLen*B, g.outPlaneSize, wb.Activation)
				}
			}

			_, _, _ = ih, khEff, filterRowAdvance
		})
}
