package lookup_test

import (
	"fmt"
	"os"

	"github.com/ultrafast-optics/ultrafast/catalog/lookup"
)

func ExampleCatalog_Lookup() {
	c, err := lookup.Open(os.DirFS("testdata/catalog"))
	if err != nil {
		panic(err)
	}

	silica, err := c.Lookup("main/SiO2/Malitson")
	if err != nil {
		panic(err)
	}

	n, _ := silica.Index(0.8)
	ng, _ := silica.GroupIndex(0.8)

	fmt.Printf("n(800 nm)  = %.4f\n", n)
	fmt.Printf("ng(800 nm) = %.4f\n", ng)
	// Output:
	// n(800 nm)  = 1.4533
	// ng(800 nm) = 1.4671
}
