// Copyright ©2019 The Gonum Authors. All rights reserved.
// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package guda implements a blocked-NCHWc convolution and pooling engine
// for CPU execution.
//
// Conv and Pool reinterpret an [N, C, H, W] tensor as a channel-blocked
// [N, C/B, H, W, B] layout so that channel loads within one block are
// contiguous and stay resident in SIMD registers across the microkernel's
// inner loop. Dispatch picks among direct, pointwise, depthwise and
// NCHW-input variants based on kernel shape, group count and stride, and
// fuses the common activation epilogues (ReLU, clip, sigmoid, tanh) into
// the microkernel where the variant supports it.
//
// The package also carries a small CUDA-API-shaped CPU execution substrate
// (Context, Stream, DevicePtr, MemoryPool) that Conv/Pool's callers can use
// to allocate and stage tensor buffers, independent of the NCHWc dispatch
// itself.
package guda