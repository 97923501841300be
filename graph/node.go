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
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/graphir/graphir/types/shapes"
)

// NodeType identifies the operation performed by a node. It is the closed
// set of op kinds the IR knows about.
type NodeType int

const (
	// NodeTypeInvalid is the zero value, marking a node that was never
	// properly constructed.
	NodeTypeInvalid NodeType = iota

	// NodeTypeParameter is a leaf node whose shape is declared by the caller.
	NodeTypeParameter

	// NodeTypeMaxPool is a windowed max-reduction over the spatial axes of
	// its input. See MaxPool.
	NodeTypeMaxPool
)

//go:generate go tool enumer -type=NodeType -trimprefix=NodeType -output=gen_nodetype_enumer.go node.go

// Node represents the result of an operation in a computation Graph.
//
// A Node is an immutable value once constructed: its shape is derived and
// validated at construction time, and every downstream consumer -- other
// nodes, compiler passes -- reads it without re-deriving it.
type Node struct {
	graph *Graph
	shape shapes.Shape
	id    NodeId // id within graph.

	// inputNodes are the edges of the computation graph: the upstream nodes
	// whose outputs this node consumes. Static (non-node) parameters of the
	// operation are held in inputs instead.
	inputNodes []*Node

	// inputs holds the operation kind and its static parameters.
	inputs NodeInputs
}

// NodeInputs is implemented by the per-operation record of static
// parameters: one implementation per NodeType.
type NodeInputs interface {
	Type() NodeType

	// String prints a descriptive representation of the node, using its
	// parameters.
	String() string
}

// newNode creates a Node with the given derived shape and registers it in
// the graph arena. All validation must have happened before this point: a
// node that reaches newNode is final.
func newNode(g *Graph, shape shapes.Shape, inputNodes []*Node, inputs NodeInputs) *Node {
	n := &Node{
		graph:      g,
		shape:      shape,
		inputNodes: inputNodes,
		inputs:     inputs,
	}
	n.id = g.registerNode(n)
	return n
}

// validateBuildingGraphFromInputs checks that all inputs are valid nodes of
// the same graph, and returns that graph.
func validateBuildingGraphFromInputs(inputs ...*Node) *Graph {
	if len(inputs) == 0 {
		Panicf("no input nodes given")
	}
	g := inputs[0].Graph()
	g.AssertValid()
	for ii, n := range inputs {
		n.AssertValid()
		if n.graph != g {
			Panicf("input node #%d (%s) belongs to graph %q, not to graph %q", ii, n, n.graph.name, g.name)
		}
	}
	return g
}

// Type identifies the operation performed by the node.
func (n *Node) Type() NodeType {
	if n == nil || n.inputs == nil {
		return NodeTypeInvalid
	}
	return n.inputs.Type()
}

// Graph that holds this Node.
func (n *Node) Graph() *Graph {
	if n == nil {
		return nil
	}
	return n.graph
}

// Shape of the Node's output, derived at construction time.
func (n *Node) Shape() shapes.Shape {
	if n == nil {
		return shapes.Shape{}
	}
	return n.shape
}

// DType returns the DType of the node's shape.
func (n *Node) DType() dtypes.DType {
	return n.shape.DType
}

// Rank returns the rank of the node's shape.
func (n *Node) Rank() int {
	return n.shape.Rank()
}

// IsScalar returns whether the node's shape is a scalar.
func (n *Node) IsScalar() bool {
	return n.shape.IsScalar()
}

// Id is the unique id of this node within the Graph.
func (n *Node) Id() NodeId {
	return n.id
}

// Inputs are the other nodes that are direct inputs to the node.
// This doesn't include static parameters that are not given by other Graph
// nodes -- those are reported by the per-operation accessors.
func (n *Node) Inputs() []*Node { return n.inputNodes }

// AssertValid panics if n is nil, or if it was never properly constructed.
func (n *Node) AssertValid() {
	if n == nil {
		Panicf("Node is nil")
	}
	if n.inputs == nil {
		Panicf("Node in an invalid state: it was not created by one of the graph ops")
	}
	n.graph.AssertValid()
}

// String implements the fmt.Stringer interface.
func (n *Node) String() (str string) {
	if n == nil {
		return "Node(nil)"
	}
	if n.Type() == NodeTypeInvalid {
		str = "Invalid(?)"
	} else {
		str = n.inputs.String()
	}
	return fmt.Sprintf("%s -> %s", str, n.shape)
}

// nodeInputsParameter holds the static parameters of a Parameter node.
type nodeInputsParameter struct {
	name   string
	handle ParameterHandle
}

func (ni *nodeInputsParameter) Type() NodeType { return NodeTypeParameter }

func (ni *nodeInputsParameter) String() string {
	return fmt.Sprintf("Parameter(name=%q)", ni.name)
}

// GetParameterName returns the parameter name.
// It panics if the node is not a parameter.
func (n *Node) GetParameterName() string {
	n.AssertValid()
	if n.Type() != NodeTypeParameter {
		Panicf("trying to GetParameterName of a non-parameter node %s", n.Type())
	}
	return n.inputs.(*nodeInputsParameter).name
}

// GetParameterHandle returns the parameter handle in the graph.
// It panics if the node is not a parameter.
func (n *Node) GetParameterHandle() ParameterHandle {
	n.AssertValid()
	if n.Type() != NodeTypeParameter {
		Panicf("node %s is not a Parameter node", n.Type())
	}
	return n.inputs.(*nodeInputsParameter).handle
}
