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

// Package graph implements the computation-graph intermediate representation
// (IR) of the compiler.
//
// The main elements in the package are:
//
//   - Graph: holds the nodes of one computation being built. Nodes are
//     stored in an arena owned by the Graph and addressed by NodeId, so
//     node-to-node references never need reference counting.
//
//   - Node: represents the result of one operation ("op" for short), e.g. a
//     Parameter or a MaxPool. Each node has a fixed shape that is derived --
//     and validated -- in graph building time, when the node is constructed.
//     Nodes are immutable once constructed: construction either fully
//     succeeds, or fails before the node is linked into the Graph.
//
// No computation happens in this package: building a Graph only derives and
// checks shapes, which is where virtually all shape errors are caught and
// reported with a full description of the offending parameter.
//
// Ops that fail validation panic with an error wrapping one of the
// shapeinference sentinel error kinds. Use exceptions.TryCatch to convert
// the panic back into a returned error:
//
//	err := exceptions.TryCatch[error](func() {
//		pooled = MaxPool(x).Window(3).Done()
//	})
//
// A Graph is not safe for concurrent building from multiple goroutines;
// independent Graphs are. Nodes are safe for concurrent reads once
// constructed.
package graph

import (
	"fmt"
	"strings"
	"sync/atomic"

	. "github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/graphir/graphir/types/shapes"
)

// GraphId is a unique Graph id within a process. It's a counter that starts
// with 0.
type GraphId int

// NodeId is a unique identifier of a Node within a Graph: its index into
// the Graph's node arena.
type NodeId int

// InvalidNodeId indicates a node that failed to be created.
const InvalidNodeId = NodeId(-1)

// ParameterHandle is the index of a parameter node among the Graph's
// parameters, in order of creation.
type ParameterHandle int

// InvalidParameterHandle represents an invalid (or non-existent) parameter.
const InvalidParameterHandle = ParameterHandle(-1)

var nextGraphId atomic.Int64

// Graph with the operations and dependencies needed to run a computation.
type Graph struct {
	name    string
	graphId GraphId

	// nodes is the arena that owns every node of the graph, indexed by NodeId.
	nodes []*Node

	parameters            []*Node
	parameterNameToHandle map[string]ParameterHandle
}

// New constructs an empty Graph with the given name. If name is empty, a
// name is generated from the graph id.
func New(name string) *Graph {
	graphId := GraphId(nextGraphId.Add(1) - 1)
	if name == "" {
		name = fmt.Sprintf("graph#%d", graphId)
	}
	return &Graph{
		name:                  name,
		graphId:               graphId,
		parameterNameToHandle: make(map[string]ParameterHandle),
	}
}

// Name of the computation this Graph defines, set during its construction.
func (g *Graph) Name() string { return g.name }

// GraphId is a unique id of the graph.
func (g *Graph) GraphId() GraphId { return g.graphId }

// NumNodes returns the number of nodes registered in the graph so far.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// AssertValid panics if the graph is nil.
func (g *Graph) AssertValid() {
	if g == nil {
		Panicf("the Graph is nil")
	}
}

// registerNode in the graph arena, returning a new unique id within the Graph.
func (g *Graph) registerNode(node *Node) (id NodeId) {
	id = NodeId(len(g.nodes))
	g.nodes = append(g.nodes, node)
	if klog.V(2).Enabled() {
		klog.Infof("graph %q: registered node #%d: %s", g.name, id, node)
	}
	return
}

// NodeById returns the node registered under the given id.
// It panics for an out-of-range id.
func (g *Graph) NodeById(id NodeId) *Node {
	g.AssertValid()
	if id == InvalidNodeId || int(id) >= len(g.nodes) {
		Panicf("invalid request Graph.NodeById(id=%d): graph %q has %d nodes", id, g.name, len(g.nodes))
	}
	return g.nodes[id]
}

// NumParameters returns the number of parameters created for this graph.
func (g *Graph) NumParameters() int {
	return len(g.parameters)
}

// ParameterByIndex returns the ii-th parameter, in order of creation,
// registered for this graph.
func (g *Graph) ParameterByIndex(ii int) *Node {
	return g.parameters[ii]
}

// ParameterByName returns the parameter registered with the given name.
// It returns nil if no parameter with the given name has been registered
// (see Parameter).
func (g *Graph) ParameterByName(name string) (node *Node) {
	if name == "" {
		return
	}
	handle, ok := g.parameterNameToHandle[name]
	if !ok {
		return
	}
	return g.parameters[handle]
}

// Parameter registers an input parameter for the computation Graph: a leaf
// node whose shape is declared, not derived. It is the entry point used to
// feed tensors into the graph being built.
//
// Registering the same name twice returns the previously created node, as
// long as the shape requested is the same -- it panics otherwise.
func (g *Graph) Parameter(name string, shape shapes.Shape) (node *Node) {
	g.AssertValid()
	if !shape.Ok() {
		Panicf("graph %q: cannot create parameter %q with an invalid shape", g.name, name)
	}

	parameterHandle := ParameterHandle(len(g.parameters))
	if name == "" {
		name = fmt.Sprintf("p#%d", parameterHandle)
	}

	// Check whether the parameter already exists, and return it instead if yes.
	if handle, ok := g.parameterNameToHandle[name]; ok {
		node = g.parameters[handle]
		if !node.shape.Equal(shape) {
			Panicf("graph %q: requested parameter %q already exists with a different shape: requested shape %s, previous shape %s",
				g.name, name, shape, node.shape)
		}
		return
	}

	node = newNode(g, shape, nil, &nodeInputsParameter{name: name, handle: parameterHandle})
	g.parameters = append(g.parameters, node)
	g.parameterNameToHandle[name] = parameterHandle
	return
}

// String converts the Graph to a multi-line string with one node per line.
func (g *Graph) String() string {
	if g == nil {
		return "Graph(nil)"
	}
	parts := []string{fmt.Sprintf("Graph %q: %d nodes, %d parameters", g.name, len(g.nodes), g.NumParameters())}
	for ii, node := range g.nodes {
		parts = append(parts, fmt.Sprintf("#%d\t%s", ii, node))
	}
	return strings.Join(parts, "\n")
}
