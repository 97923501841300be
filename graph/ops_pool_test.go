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

package graph_test

import (
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/graphir/graphir/graph"
	"github.com/graphir/graphir/shapeinference"
	"github.com/graphir/graphir/types/shapes"
)

func TestMaxPool(t *testing.T) {
	g := New("test_max_pool")

	// [1, 3, 10, 10] pooled with a 3x3 window on strides 2x2 -> [1, 3, 4, 4].
	x := g.Parameter("x", shapes.Make(dtypes.Float32, 1, 3, 10, 10))
	pooled := MaxPool(x).Window(3).Strides(2).Done()
	require.True(t, shapes.Make(dtypes.Float32, 1, 3, 4, 4).Equal(pooled.Shape()))
	assert.Equal(t, NodeTypeMaxPool, pooled.Type())
	assert.Equal(t, []int{3, 3}, pooled.PoolWindowSizes())
	assert.Equal(t, shapes.Strides{2, 2}, pooled.PoolStrides())
	require.Len(t, pooled.Inputs(), 1)
	assert.Same(t, x, pooled.Inputs()[0])
	assert.Contains(t, pooled.String(), "MaxPool(window=[3 3], strides=[2 2])")

	// 1D pooling, window covering the full axis, strides omitted -> [2, 1, 1].
	y := g.Parameter("y", shapes.Make(dtypes.Float64, 2, 1, 5))
	pooled = MaxPool(y).Window(5).Done()
	require.True(t, shapes.Make(dtypes.Float64, 2, 1, 1).Equal(pooled.Shape()))
	assert.Equal(t, shapes.Strides{1}, pooled.PoolStrides())

	// [1, 1, 4, 4] with a 2x2 window on unit strides -> [1, 1, 3, 3].
	z := g.Parameter("z", shapes.Make(dtypes.Float32, 1, 1, 4, 4))
	pooled = MaxPool(z).Window(2).Strides(1).Done()
	require.True(t, shapes.Make(dtypes.Float32, 1, 1, 3, 3).Equal(pooled.Shape()))

	// Per-axis windows and strides.
	w := g.Parameter("w", shapes.Make(dtypes.Float32, 4, 8, 9, 10))
	pooled = MaxPool(w).WindowPerAxis(3, 2).StridePerAxis(3, 2).Done()
	require.True(t, shapes.Make(dtypes.Float32, 4, 8, 3, 5).Equal(pooled.Shape()))
}

func TestMaxPoolDefaultStrides(t *testing.T) {
	g := New("test_max_pool_default_strides")
	x := g.Parameter("x", shapes.Make(dtypes.Float32, 1, 2, 7, 7))

	// Omitting the strides is equivalent to strides of 1 on every spatial axis.
	defaulted := MaxPool(x).Window(3).Done()
	explicit := MaxPool(x).Window(3).StridePerAxis(1, 1).Done()
	require.True(t, defaulted.Shape().Equal(explicit.Shape()))
	assert.Equal(t, explicit.PoolStrides(), defaulted.PoolStrides())
	require.True(t, shapes.Make(dtypes.Float32, 1, 2, 5, 5).Equal(defaulted.Shape()))
}

func TestMaxPoolIdempotence(t *testing.T) {
	g := New("test_max_pool_idempotence")
	x := g.Parameter("x", shapes.Make(dtypes.Float32, 2, 4, 6, 6))

	// Construction is a pure function of its inputs: building the same node
	// twice yields two distinct nodes with identical output shapes.
	first := MaxPool(x).Window(2).Strides(2).Done()
	second := MaxPool(x).Window(2).Strides(2).Done()
	require.NotEqual(t, first.Id(), second.Id())
	require.True(t, first.Shape().Equal(second.Shape()))
}

func TestMaxPoolErrors(t *testing.T) {
	g := New("test_max_pool_errors")

	// Input of rank < 3 is rejected at the MaxPool call already.
	matrix := g.Parameter("matrix", shapes.Make(dtypes.Float32, 5, 5))
	err := exceptions.TryCatch[error](func() { MaxPool(matrix) })
	require.ErrorIs(t, err, shapeinference.ErrInsufficientInputRank)

	x := g.Parameter("x", shapes.Make(dtypes.Float32, 1, 1, 5, 5))

	// Window is obligatory.
	require.Panics(t, func() { MaxPool(x).Done() })

	// Wrong number of per-axis values is a configuration error.
	require.Panics(t, func() { MaxPool(x).WindowPerAxis(2) })
	require.Panics(t, func() { MaxPool(x).Window(2).StridePerAxis(1, 1, 1) })

	// A zero stride must be rejected as a non-positive parameter.
	err = exceptions.TryCatch[error](func() { MaxPool(x).Window(2).StridePerAxis(1, 0).Done() })
	require.ErrorIs(t, err, shapeinference.ErrNonPositiveParameter)

	// A window one past the input boundary must be rejected.
	err = exceptions.TryCatch[error](func() { MaxPool(x).WindowPerAxis(5, 6).Done() })
	require.ErrorIs(t, err, shapeinference.ErrWindowExceedsInput)

	// Failed constructions are atomic: no partially-built node entered the
	// graph, only the parameters created above are registered.
	assert.Equal(t, g.NumParameters(), g.NumNodes())

	// Accessors only apply to MaxPool nodes.
	require.Panics(t, func() { x.PoolWindowSizes() })
	require.Panics(t, func() { x.PoolStrides() })
}

func TestMaxPoolBoundary(t *testing.T) {
	g := New("test_max_pool_boundary")
	x := g.Parameter("x", shapes.Make(dtypes.Float32, 1, 1, 7))

	// Window exactly the spatial dimension: a single placement.
	pooled := MaxPool(x).Window(7).Done()
	require.True(t, shapes.Make(dtypes.Float32, 1, 1, 1).Equal(pooled.Shape()))

	// One past it fails.
	err := exceptions.TryCatch[error](func() { MaxPool(x).Window(8).Done() })
	require.ErrorIs(t, err, shapeinference.ErrWindowExceedsInput)
}
