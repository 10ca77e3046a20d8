package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("nchwc Examples")
		fmt.Println("==============")
		fmt.Println()
		fmt.Println("Usage: go run cmd/example/main.go <example>")
		fmt.Println()
		fmt.Println("Available examples:")
		fmt.Println("  conv      - Direct blocked-NCHWc convolution")
		fmt.Println("  pointwise - Strided 1x1 pointwise convolution")
		fmt.Println("  pool      - Max/average pooling")
		fmt.Println("  bench     - Run the nchwc-bench CLI")
		return
	}

	switch os.Args[1] {
	case "conv":
		fmt.Println("Run: go run cmd/nchwc-bench/main.go conv --kernel 3 --pad 1")
	case "pointwise":
		fmt.Println("Run: go run cmd/nchwc-bench/main.go conv --kernel 1 --stride 2 --pad 0")
	case "pool":
		fmt.Println("Run: go run cmd/nchwc-bench/main.go pool --kernel 2 --stride 2")
	case "bench":
		fmt.Println("Run: go run cmd/nchwc-bench/main.go conv && go run cmd/nchwc-bench/main.go pool")
	default:
		fmt.Printf("Unknown example: %s\n", os.Args[1])
	}
}
