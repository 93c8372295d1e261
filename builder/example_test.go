// SPDX-License-Identifier: MIT

package builder_test

import (
	"fmt"

	"github.com/katalvlaran/epinet/builder"
)

// ExampleBuildGraph builds a 3-regular network with unit transmission weights.
func ExampleBuildGraph() {
	g, err := builder.BuildGraph(nil,
		[]builder.BuilderOption{
			builder.WithSeed(1),
			builder.WithEdgeAttr("weight", builder.ConstantWeightFn(1)),
		},
		builder.RandomRegular(10, 3),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(g.Order(), g.Size())
	// Output:
	// 10 15
}
