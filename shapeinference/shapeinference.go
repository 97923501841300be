/*
 *	Copyright 2024 The GraphIR Authors
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package shapeinference calculates the shape resulting from operations and
// validates their inputs.
//
// Every op kind in the IR derives its output shape here, at graph
// construction time, before anything is executed: downstream passes (fusion,
// memory planning, code generation) trust the declared shape without
// re-deriving it. The functions are pure: no I/O, no state, the output shape
// is a function of the operand shape and the op parameters alone.
//
// Validation failures are reported as errors wrapping one of the sentinel
// error kinds below (ErrRankMismatch, ErrInsufficientInputRank,
// ErrNonPositiveParameter, ErrWindowExceedsInput), so callers can classify
// the failure with errors.Is.
package shapeinference

import (
	"github.com/pkg/errors"

	"github.com/graphir/graphir/types/shapes"
)

// Error kinds reported by op validation. Every error returned by this
// package wraps exactly one of them.
var (
	// ErrRankMismatch indicates window sizes or strides whose rank does not
	// equal the spatial rank of the operand (operand rank - 2).
	ErrRankMismatch = errors.New("rank mismatch")

	// ErrInsufficientInputRank indicates an operand of rank < 3: there is no
	// distinguishable batch, channels and spatial axis to pool over.
	ErrInsufficientInputRank = errors.New("insufficient input rank")

	// ErrNonPositiveParameter indicates a stride or window size <= 0.
	ErrNonPositiveParameter = errors.New("non-positive parameter")

	// ErrWindowExceedsInput indicates a window size larger than the
	// corresponding spatial dimension of the operand.
	ErrWindowExceedsInput = errors.New("window exceeds input")
)

// NumLeadingAxes is the number of leading non-spatial axes of a pooled
// operand: batch (axis 0) and channels (axis 1) -- both pass through a
// pooling unchanged.
const NumLeadingAxes = 2

// MaxPoolOp returns the output shape of a max pooling of operand with the
// given window sizes and window movement strides, or an error wrapping one
// of the sentinel error kinds if the parameters cannot produce a
// well-defined output.
//
// The operand is expected shaped `[batch, channels, <spatial...>]`, so its
// rank must be >= 3. windowSizes and strides must have one entry per
// spatial axis (operand rank - 2), each entry strictly positive, and every
// window size must fit inside the corresponding spatial dimension.
//
// The batch and channels dimensions pass through unchanged (max pooling
// does not reduce over channels). Each spatial output dimension is the
// number of window placements that never extend past the operand boundary
// (there is no implicit padding):
//
//	output[i] = (spatial[i] - windowSizes[i]) / strides[i] + 1
//
// Notice the reduction type does not affect the output shape: a min or sum
// pooling with the same parameters would be shaped identically.
func MaxPoolOp(operand shapes.Shape, windowSizes []int, strides shapes.Strides) (shapes.Shape, error) {
	if !operand.Ok() {
		return shapes.Invalid(), errors.Wrapf(ErrInsufficientInputRank, "MaxPoolOp: invalid operand shape %s", operand)
	}
	rank := operand.Rank()
	if rank < NumLeadingAxes+1 {
		return shapes.Invalid(), errors.Wrapf(ErrInsufficientInputRank,
			"MaxPoolOp: operand must be shaped [batch, channels, <spatial...>] with rank >= 3, got operand shape %s (rank %d)",
			operand, rank)
	}
	spatialRank := rank - NumLeadingAxes
	if len(windowSizes) != spatialRank {
		return shapes.Invalid(), errors.Wrapf(ErrRankMismatch,
			"MaxPoolOp: len(windowSizes)=%d, but operand shape %s has %d spatial axes",
			len(windowSizes), operand, spatialRank)
	}
	if len(strides) != spatialRank {
		return shapes.Invalid(), errors.Wrapf(ErrRankMismatch,
			"MaxPoolOp: len(strides)=%d, but operand shape %s has %d spatial axes",
			len(strides), operand, spatialRank)
	}
	for i, stride := range strides {
		if stride < 1 {
			return shapes.Invalid(), errors.Wrapf(ErrNonPositiveParameter,
				"MaxPoolOp: strides[%d]=%d must be >= 1 for operand shape %s", i, stride, operand)
		}
	}

	// Each spatial output dimension is calculated orthogonally to the others.
	outputDims := make([]int, rank)
	copy(outputDims, operand.Dimensions[:NumLeadingAxes])
	for i, windowSize := range windowSizes {
		if windowSize < 1 {
			return shapes.Invalid(), errors.Wrapf(ErrNonPositiveParameter,
				"MaxPoolOp: windowSizes[%d]=%d must be >= 1 for operand shape %s", i, windowSize, operand)
		}
		inputDim := operand.Dimensions[NumLeadingAxes+i]
		if windowSize > inputDim {
			return shapes.Invalid(), errors.Wrapf(ErrWindowExceedsInput,
				"MaxPoolOp: windowSizes[%d]=%d is larger than the corresponding spatial dimension %d of operand shape %s",
				i, windowSize, inputDim, operand)
		}
		outputDims[NumLeadingAxes+i] = (inputDim-windowSize)/strides[i] + 1
	}
	return shapes.Make(operand.DType, outputDims...), nil
}
