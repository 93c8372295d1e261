// SPDX-License-Identifier: MIT

package ode_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/epinet/ode"
)

// ExampleDormandPrince integrates logistic growth y' = y(1-y) from 0.5.
func ExampleDormandPrince() {
	logistic := func(_ float64, y, dy []float64) { dy[0] = y[0] * (1 - y[0]) }

	traj, _, err := ode.NewDormandPrince().Integrate(context.Background(), logistic, []float64{0.5}, ode.LinSpace(0, 10, 3))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.4f %.4f %.4f\n", traj.At(0, 0), traj.At(1, 0), traj.At(2, 0))
	// Output: 0.5000 0.9933 1.0000
}
