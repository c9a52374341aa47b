package numeric_test

import (
	"fmt"

	"github.com/coachpo/xnumber/pkg/numeric"
)

func ExampleValidStep() {
	fmt.Println(numeric.ValidStep("0.3", "0.1"))
	fmt.Println(numeric.ValidStep("10", "3"))
	fmt.Println(numeric.ValidStepMin("5", "2", "1"))
	// Output:
	// true
	// false
	// true
}

func ExampleCanonical() {
	fmt.Println(numeric.Canonical("1.0E-7"))
	fmt.Println(numeric.DecimalDigits("1.250"))
	// Output:
	// 0.0000001
	// 2
}

func ExampleDecimalRange() {
	r, err := numeric.DecimalRange(5, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(r.Signed.Min, r.Signed.Max)
	// Output: -999.99 999.99
}
