package guda

// Conv is the public convolution entry point (§4.8, §6). It preprocesses
// the shapes, divides input/output channel counts by groupCount, selects a
// variant, and submits the chosen executor to pool for indexed parallel
// execution over [0, T) where T = pool.MaxThreads(). The call is
// synchronous: Conv returns only once every worker has completed.
//
// Filter must already be pre-permuted into the layout the selected variant
// expects (§6, "Filter layout contract") — Conv does not repack it. Shape
// validity, buffer sizing and channel-count divisibility are the caller's
// responsibility; per §7 the engine does not validate preconditions.
func Conv(
	dims int,
	inputShape, kernelShape, dilationShape, padding, strideShape, outputShape []int64,
	groupCount int,
	input, filter, bias, output []float32,
	activation NchwcActivation,
	zeroMode bool,
	kernel NchwcConvKernel,
	pointwiseKernel NchwcPointwiseKernel,
	depthwiseKernel NchwcDepthwiseKernel,
	pool NchwcThreadPool,
) {
	if pool == nil {
		pool = NewNchwcThreadPool()
	}
	if kernel == nil {
		kernel = referenceDirectKernel()
	}
	if pointwiseKernel == nil {
		pointwiseKernel = referencePointwiseKernel()
	}
	if depthwiseKernel == nil {
		depthwiseKernel = referenceDepthwiseKernel()
	}

	wb := &NchwcWorkBlock{
		Input:      input,
		Filter:     filter,
		Bias:       bias,
		Output:     output,
		GroupCount: groupCount,
		Activation: activation,
		ZeroMode:   zeroMode,
	}
	PreprocessNchwcWorkBlock(wb, dims, inputShape, kernelShape, dilationShape, padding, strideShape, outputShape)

	wb.InputChannels /= groupCount
	wb.OutputChannels /= groupCount

	variant := SelectNchwcConvVariant(wb)
	wb.ThreadCount = pool.MaxThreads()

	pool.Execute(func(threadIndex int) {
		switch variant {
		case NchwcPointwise:
			ExecuteNchwcPointwise(wb, threadIndex, wb.ThreadCount, pointwiseKernel)
		case NchwcDirect:
			ExecuteNchwcDirect(wb, threadIndex, wb.ThreadCount, kernel)
		case NchwcDepthwise:
			ExecuteNchwcDepthwise(wb, threadIndex, wb.ThreadCount, depthwiseKernel)
		case NchwcFromNCHW:
			ExecuteNchwcFromNCHW(wb, threadIndex, wb.ThreadCount, kernel)
		}
	}, wb.ThreadCount)
}

// Pool is the public pooling entry point (§4.8, §6).
func Pool(
	kind NchwcPoolingKind,
	dims int,
	inputShape, kernelShape, dilationShape, padding, strideShape, outputShape []int64,
	input, output []float32,
	kernel NchwcPoolKernel,
	pool NchwcThreadPool,
) {
	if pool == nil {
		pool = NewNchwcThreadPool()
	}
	if kernel == nil {
		kernel = referencePoolKernel()
	}

	wb := &NchwcWorkBlock{
		Input:       input,
		Output:      output,
		PoolingKind: kind,
	}
	PreprocessNchwcWorkBlock(wb, dims, inputShape, kernelShape, dilationShape, padding, strideShape, outputShape)

	wb.ThreadCount = pool.MaxThreads()
	pool.Execute(func(threadIndex int) {
		ExecuteNchwcPool(wb, threadIndex, wb.ThreadCount, kernel)
	}, wb.ThreadCount)
}
