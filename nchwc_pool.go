package guda

// ExecuteNchwcPool implements the pooling variant (§4.5): total work
// ceil(N·C/B)·OH, a single microkernel call per output row, no channel
// iteration and no flags — the pooling kind alone selects the reduction.
// Dilation, padding and effective-kernel trimming match depthwise.
func ExecuteNchwcPool(wb *NchwcWorkBlock, threadIndex, threadCount int, kernel NchwcPoolKernel) {
	B := NchwcBlockSize()
	blocksPerBatch := (wb.InputChannels + B - 1) / B
	oh := wb.Dims[0].OutputCount
	outputWidth := wb.Dims[1].OutputCount
	inputWidth := wb.Dims[1].InputCount
	leftPad, mid, rightPad := wb.Dims[1].LeftPad, wb.Dims[1].Mid, wb.Dims[1].RightPad

	inPlaneSize := B * wb.InputSize
	outPlaneSize := B * wb.OutputSize

	total := wb.BatchCount * blocksPerBatch * oh
	start, count := PartitionNchwcWork(threadIndex, threadCount, total)

	for w := start; w < start+count; w++ {
		row := w % oh
		rest := w / oh
		blockIdx := rest % blocksPerBatch
		batch := rest / blocksPerBatch

		ih, khEff, _ := computeEffectiveKernel(wb, 0, row)

		inBase := (batch*blocksPerBatch+blockIdx)*inPlaneSize + ih*inputWidth*B
		outBase := (batch*blocksPerBatch+blockIdx)*outPlaneSize + row*outputWidth*B

		kernel(NchwcPoolKernelParams{
			InputPlane: wb.Input[inBase:],
			InputWidth: inputWidth,
			Lane:       B,
			IH:         0,
			StrideX:    wb.Dims[1].Stride,
			DilationX:  wb.Dims[1].Dilation,
			DilationY:  wb.Dims[0].Dilation,
			PadLeftX:   wb.Dims[1].PadLeft,
			Output:     wb.Output[outBase:],
			KHEff:      khEff,
			KW:         wb.Dims[1].Kernel,
			KernelSize: wb.KernelSize,
			LeftPad:    leftPad,
			Mid:        mid,
			RightPad:   rightPad,
			Kind:       wb.PoolingKind,
		})
	}
}
