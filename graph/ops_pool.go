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

package graph

import (
	"fmt"

	. "github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/graphir/graphir/shapeinference"
	"github.com/graphir/graphir/types/shapes"
	"github.com/graphir/graphir/types/xslices"
)

// This file contains the MaxPool node implementation.

// PoolBuilder is a helper to build a pooling node. Create it with MaxPool,
// set the desired parameters, and call Done to add the node to the graph.
type PoolBuilder struct {
	graph          *Graph
	x              *Node
	numSpatialDims int
	windowSizes    []int
	strides        shapes.Strides
}

// MaxPool prepares a max pooling of x with a given window, for an arbitrary
// number of spatial dimensions (1D, 2D, 3D, etc.). The resulting node holds
// the max value of each window placement.
//
// It returns a PoolBuilder for configuration. Once set up, call
// PoolBuilder.Done and it will validate the parameters, derive the output
// shape and return the new pooling Node.
//
// The window sizes must be set with PoolBuilder.Window or
// PoolBuilder.WindowPerAxis.
//
// x must be shaped `[batch, channels, <spatial_dimensions...>]`: the leading
// batch and channels axes pass through the pooling unchanged, and the window
// slides over the spatial axes only. There is no implicit padding: the
// window never extends past the input boundary, so each spatial output
// dimension is `(input - window) / stride + 1`.
func MaxPool(x *Node) *PoolBuilder {
	g := validateBuildingGraphFromInputs(x)
	if x.Rank() < shapeinference.NumLeadingAxes+1 {
		panic(errors.Wrapf(shapeinference.ErrInsufficientInputRank,
			"MaxPool requires x shaped [batch, channels, <spatial...>] with rank >= 3, got x.Shape()=%s", x.Shape()))
	}
	return &PoolBuilder{
		graph:          g,
		x:              x,
		numSpatialDims: x.Rank() - shapeinference.NumLeadingAxes,
	}
}

// Window sets the pooling window size for all spatial dimensions to the same
// windowSize.
//
// There is no default, and this must be set either with Window or
// WindowPerAxis.
func (pool *PoolBuilder) Window(windowSize int) *PoolBuilder {
	return pool.WindowPerAxis(xslices.SliceWithValue(pool.numSpatialDims, windowSize)...)
}

// WindowPerAxis sets the pooling window size for each spatial dimension.
//
// There is no default, and this must be set either with Window or
// WindowPerAxis.
func (pool *PoolBuilder) WindowPerAxis(sizes ...int) *PoolBuilder {
	if len(sizes) != pool.numSpatialDims {
		Panicf("received %d window sizes in WindowPerAxis, but x has %d spatial dimensions",
			len(sizes), pool.numSpatialDims)
	}
	pool.windowSizes = xslices.Copy(sizes)
	return pool
}

// Strides sets the stride of the pooling window movement. It sets the same
// value for every spatial dimension.
//
// The stride is how many positions the window advances between placements.
// A value of 2 halves the spatial size, since the pooling is done at every
// other position. The default is 1 for every spatial axis: the window
// advances by exactly one position per step.
func (pool *PoolBuilder) Strides(stride int) *PoolBuilder {
	return pool.StridePerAxis(xslices.SliceWithValue(pool.numSpatialDims, stride)...)
}

// StridePerAxis sets the window movement stride for each spatial dimension
// of the pooling.
//
// The default is 1 for every spatial axis: the window advances by exactly
// one position per step.
func (pool *PoolBuilder) StridePerAxis(strides ...int) *PoolBuilder {
	if len(strides) != pool.numSpatialDims {
		Panicf("received %d strides in StridePerAxis, but x has %d spatial dimensions",
			len(strides), pool.numSpatialDims)
	}
	pool.strides = shapes.Strides(xslices.Copy(strides))
	return pool
}

// Done indicates that the pooling node is finished being configured. It
// validates the parameters against the input shape, derives the output
// shape and adds the new node to the graph, returning it.
//
// It panics with an error wrapping one of the shapeinference error kinds if
// the parameters cannot produce a well-defined output -- the rejected node
// never enters the graph.
func (pool *PoolBuilder) Done() *Node {
	x := pool.x
	g := pool.graph

	// windowSizes is obligatory.
	if len(pool.windowSizes) == 0 {
		Panicf("window sizes required but not configured in MaxPool(...) -- use .Window() or .WindowPerAxis()")
	}
	strides := pool.strides
	if strides == nil {
		strides = shapes.OnesStrides(pool.numSpatialDims)
	}

	output, err := shapeinference.MaxPoolOp(x.Shape(), pool.windowSizes, strides)
	if err != nil {
		panic(errors.WithMessagef(err, "building %s node in graph %q", NodeTypeMaxPool, g.Name()))
	}
	return newNode(g, output, []*Node{x}, &nodeInputsMaxPool{
		windowSizes: pool.windowSizes,
		strides:     strides,
	})
}

// nodeInputsMaxPool holds the static parameters of a MaxPool node.
type nodeInputsMaxPool struct {
	windowSizes []int
	strides     shapes.Strides
}

func (ni *nodeInputsMaxPool) Type() NodeType { return NodeTypeMaxPool }

func (ni *nodeInputsMaxPool) String() string {
	return fmt.Sprintf("MaxPool(window=%v, strides=%v)", ni.windowSizes, ni.strides)
}

// PoolWindowSizes returns the window sizes of a MaxPool node, one per
// spatial axis. It panics if the node is not a MaxPool.
//
// The returned slice is owned by the node, don't modify it.
func (n *Node) PoolWindowSizes() []int {
	n.AssertValid()
	if n.Type() != NodeTypeMaxPool {
		Panicf("node %s is not a MaxPool node", n.Type())
	}
	return n.inputs.(*nodeInputsMaxPool).windowSizes
}

// PoolStrides returns the window movement strides of a MaxPool node, one
// per spatial axis. It panics if the node is not a MaxPool.
//
// The returned strides are owned by the node, don't modify them.
func (n *Node) PoolStrides() shapes.Strides {
	n.AssertValid()
	if n.Type() != NodeTypeMaxPool {
		Panicf("node %s is not a MaxPool node", n.Type())
	}
	return n.inputs.(*nodeInputsMaxPool).strides
}
