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

package shapeinference_test

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"

	"github.com/graphir/graphir/shapeinference"
	"github.com/graphir/graphir/types/shapes"
)

func ExampleMaxPoolOp() {
	// A batch of 1 image with 3 channels and 10x10 pixels, pooled with a
	// 3x3 window moving 2 pixels at a time.
	input := shapes.Make(dtypes.Float32, 1, 3, 10, 10)
	output := must.M1(shapeinference.MaxPoolOp(input, []int{3, 3}, shapes.Strides{2, 2}))
	fmt.Println(output)
	// Output: (Float32)[1 3 4 4]
}
