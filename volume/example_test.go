// SPDX-License-Identifier: EPL-2.0

package volume_test

import (
	"fmt"

	"github.com/ik5/audmix/volume"
)

// Example_layerChange rescales a volume that bakes in several layers when
// only one of them changes.
func Example_layerChange() {
	master, typ := 0.8, 0.5
	target := master * typ

	newMaster := 0.4
	delta := volume.ToDB(master) - volume.ToDB(newMaster)
	target = volume.Shift(target, delta)

	fmt.Printf("%.3f\n", target)
	// Output:
	// 0.200
}

func ExamplePerceived() {
	fmt.Printf("%.4f\n", volume.Perceived(0.5, 2))
	fmt.Printf("%.4f\n", volume.Perceived(0.5, 3))
	// Output:
	// 0.2500
	// 0.1250
}
