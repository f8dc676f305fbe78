// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest_test

import (
	"testing"

	hl "github.com/db47h/spipwm/hwlib"
	hw "github.com/db47h/spipwm/hwsim"
	"github.com/db47h/spipwm/hwtest"
)

func TestComparePart(t *testing.T) {
	or, err := hw.Chip("custom_or", "a,b", "out",
		hl.Nand("a=a, b=a, out=notA"),
		hl.Nand("a=b, b=b, out=notB"),
		hl.Nand("a=notA, b=notB, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hl.Or, or)
}
