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

package shapes

import "slices"

// Strides holds the per-spatial-axis step between successive window
// placements of a windowed operation (pooling, windowed reductions).
// Its rank equals the number of spatial axes of the operand, that is, the
// operand rank minus the leading batch and channels axes. Every entry must
// be strictly positive -- validation happens at the op construction site.
type Strides []int

// OnesStrides returns strides of 1 for every one of the rank spatial axes:
// the window advances by exactly one position per step. This is the default
// when no strides are configured.
func OnesStrides(rank int) Strides {
	s := make(Strides, rank)
	for i := range s {
		s[i] = 1
	}
	return s
}

// Rank returns the number of spatial axes the strides cover.
func (s Strides) Rank() int { return len(s) }

// Clone returns a copy of the strides.
func (s Strides) Clone() Strides { return slices.Clone(s) }
