// Command nchwc-bench drives the blocked-NCHWc convolution and pooling
// engine over a synthetic tensor so its wall-clock cost and selected
// variant can be inspected from the command line.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/LynnColeArt/nchwc"
)

var logResults bool

func main() {
	root := &cobra.Command{
		Use:   "nchwc-bench",
		Short: "Benchmark the blocked-NCHWc convolution and pooling engine",
	}
	root.PersistentFlags().BoolVar(&logResults, "log", false, "record results to benchmark_logs/")
	root.AddCommand(newConvCmd())
	root.AddCommand(newPoolCmd())
	root.AddCommand(newSummaryCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the most recent logged benchmark session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return guda.PrintBenchmarkSummary()
		},
	}
}

func startLogging(sessionName string) {
	if !logResults {
		return
	}
	if err := guda.InitBenchmarkLogger(sessionName); err != nil {
		log.Printf("benchmark logging disabled: %v", err)
		logResults = false
	}
}

func newConvCmd() *cobra.Command {
	var n, cIn, cOut, kernel, stride, pad, groups int

	cmd := &cobra.Command{
		Use:   "conv",
		Short: "Run one convolution dispatch and report timing and the selected variant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConv(n, cIn, cOut, kernel, stride, pad, groups)
		},
	}

	cmd.Flags().IntVar(&n, "batch", 1, "batch size")
	cmd.Flags().IntVar(&cIn, "cin", guda.NchwcBlockSize(), "input channels")
	cmd.Flags().IntVar(&cOut, "cout", guda.NchwcBlockSize(), "output channels")
	cmd.Flags().IntVar(&kernel, "kernel", 3, "kernel height and width")
	cmd.Flags().IntVar(&stride, "stride", 1, "stride")
	cmd.Flags().IntVar(&pad, "pad", 1, "symmetric padding")
	cmd.Flags().IntVar(&groups, "groups", 1, "group count")

	return cmd
}

func newPoolCmd() *cobra.Command {
	var n, c, kernel, stride int

	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Run one max-pool dispatch and report timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPool(n, c, kernel, stride)
		},
	}

	cmd.Flags().IntVar(&n, "batch", 1, "batch size")
	cmd.Flags().IntVar(&c, "channels", guda.NchwcBlockSize(), "channel count")
	cmd.Flags().IntVar(&kernel, "kernel", 2, "pooling window height and width")
	cmd.Flags().IntVar(&stride, "stride", 2, "stride")

	return cmd
}

const spatialSize = 32

func runConv(n, cIn, cOut, kernel, stride, pad, groups int) error {
	if cIn%groups != 0 || cOut%groups != 0 {
		return guda.NewInvalidArgError("conv", "cin/cout must be divisible by groups")
	}

	startLogging("nchwc-conv")

	ih, iw := spatialSize, spatialSize
	oh := (ih+2*pad-kernel)/stride + 1
	ow := (iw+2*pad-kernel)/stride + 1

	// Tensors are allocated through the aligned device allocator and then
	// handed to Conv as plain slices — the allocator is a collaborator the
	// call site chooses to use, not something Conv itself depends on.
	inputBuf, filterBuf, outputBuf, free, err := allocConvBuffers(
		n*cIn*ih*iw, cOut*(cIn/groups)*kernel*kernel, n*cOut*oh*ow)
	if err != nil {
		return err
	}
	defer free()

	input := inputBuf.Float32()
	filter := filterBuf.Float32()
	output := outputBuf.Float32()
	fillRandom(input)
	fillRandom(filter)

	inputShape := []int64{int64(n), int64(cIn), int64(ih), int64(iw)}
	outputShape := []int64{int64(n), int64(cOut), int64(oh), int64(ow)}
	kernelShape := []int64{int64(kernel), int64(kernel)}
	strideShape := []int64{int64(stride), int64(stride)}
	padding := []int64{int64(pad), int64(pad), int64(pad), int64(pad)}

	start := time.Now()
	guda.Conv(2, inputShape, kernelShape, nil, padding, strideShape, outputShape,
		groups, input, filter, nil, output,
		guda.NchwcActivation{Kind: guda.NchwcIdentity}, true,
		nil, nil, nil, nil)
	elapsed := time.Since(start)

	ops := int64(n) * int64(cOut) * int64(oh) * int64(ow) * int64(cIn/groups) * int64(kernel*kernel)
	if logResults {
		guda.LogBenchmarkPass("conv", float64(elapsed.Nanoseconds()), 0, ops)
	}

	fmt.Printf("conv: N=%d Cin=%d Cout=%d K=%d S=%d P=%d G=%d -> output %dx%d in %s\n",
		n, cIn, cOut, kernel, stride, pad, groups, oh, ow, elapsed)
	return nil
}

func runPool(n, c, kernel, stride int) error {
	startLogging("nchwc-pool")

	ih, iw := spatialSize, spatialSize
	oh := (ih-kernel)/stride + 1
	ow := (iw-kernel)/stride + 1

	inputBuf, err := guda.Malloc(n * c * ih * iw * 4)
	if err != nil {
		return err
	}
	defer guda.Free(inputBuf)
	outputBuf, err := guda.Malloc(n * c * oh * ow * 4)
	if err != nil {
		return err
	}
	defer guda.Free(outputBuf)

	input := inputBuf.Float32()
	output := outputBuf.Float32()
	fillRandom(input)

	inputShape := []int64{int64(n), int64(c), int64(ih), int64(iw)}
	outputShape := []int64{int64(n), int64(c), int64(oh), int64(ow)}
	kernelShape := []int64{int64(kernel), int64(kernel)}
	strideShape := []int64{int64(stride), int64(stride)}

	start := time.Now()
	guda.Pool(guda.NchwcMaxPool, 2, inputShape, kernelShape, nil, nil, strideShape, outputShape,
		input, output, nil, nil)
	elapsed := time.Since(start)

	if logResults {
		guda.LogBenchmarkPass("pool", float64(elapsed.Nanoseconds()), 0, int64(n*c*oh*ow))
	}

	fmt.Printf("pool: N=%d C=%d K=%d S=%d -> output %dx%d in %s\n", n, c, kernel, stride, oh, ow, elapsed)
	return nil
}

// allocConvBuffers allocates the three conv tensors through the aligned
// device allocator as one group so runConv has a single error/free path.
func allocConvBuffers(inputLen, filterLen, outputLen int) (input, filter, output guda.DevicePtr, free func(), err error) {
	input, err = guda.Malloc(inputLen * 4)
	if err != nil {
		return
	}
	filter, err = guda.Malloc(filterLen * 4)
	if err != nil {
		guda.Free(input)
		return
	}
	output, err = guda.Malloc(outputLen * 4)
	if err != nil {
		guda.Free(input)
		guda.Free(filter)
		return
	}
	free = func() {
		guda.Free(input)
		guda.Free(filter)
		guda.Free(output)
	}
	return
}

func fillRandom(t []float32) {
	for i := range t {
		t[i] = rand.Float32()
	}
}
