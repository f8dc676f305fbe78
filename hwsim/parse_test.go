// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim_test

import (
	"reflect"
	"testing"

	hw "github.com/db47h/spipwm/hwsim"
)

func TestParseIOSpec(t *testing.T) {
	data := []struct {
		in  string
		out []string
		err bool
	}{
		{"a", []string{"a"}, false},
		{"a, b,c", []string{"a", "b", "c"}, false},
		{"in[2], sel", []string{"in[0]", "in[1]", "sel"}, false},
		{" ui_in[3] , rst_n ", []string{"ui_in[0]", "ui_in[1]", "ui_in[2]", "rst_n"}, false},
		{"", nil, false},
		{"in[0]", nil, true},
		{"in[0..3]", nil, true},
		{"in[", nil, true},
		{"in[x]", nil, true},
		{"1a", nil, true},
		{"a-b", nil, true},
	}
	for _, d := range data {
		out, err := hw.ParseIOSpec(d.in)
		if (err != nil) != d.err {
			t.Errorf("ParseIOSpec(%q): unexpected error status %v", d.in, err)
			continue
		}
		if !d.err && !reflect.DeepEqual(out, d.out) {
			t.Errorf("ParseIOSpec(%q) = %v, expected %v", d.in, out, d.out)
		}
	}
}

func TestParseConnections(t *testing.T) {
	c := func(pp, cp string) hw.Connection { return hw.Connection{PP: pp, CP: cp} }
	data := []struct {
		in  string
		out []hw.Connection
		err bool
	}{
		{"a=x", []hw.Connection{c("a", "x")}, false},
		{"a=x, b = y", []hw.Connection{c("a", "x"), c("b", "y")}, false},
		{"a[1]=x[7]", []hw.Connection{c("a[1]", "x[7]")}, false},
		{"bus[0..2]=n[4..6]", []hw.Connection{c("bus[0]", "n[4]"), c("bus[1]", "n[5]"), c("bus[2]", "n[6]")}, false},
		{"in[0..1]=true", []hw.Connection{c("in[0]", "true"), c("in[1]", "true")}, false},
		{"in=false", []hw.Connection{c("in", "false")}, false},
		{"a[2..2]=b", []hw.Connection{c("a[2]", "b")}, false},
		{"a", nil, true},
		{"a[0..3]=b[0..1]", nil, true},
		{"a=b[0..1]", nil, true},
		{"a[3..1]=b", nil, true},
		{"a[x]=b", nil, true},
		{"a[1..]=b", nil, true},
		{"a[-1]=b", nil, true},
		{"=b", nil, true},
	}
	for _, d := range data {
		out, err := hw.ParseConnections(d.in)
		if (err != nil) != d.err {
			t.Errorf("ParseConnections(%q): unexpected error status %v", d.in, err)
			continue
		}
		if !d.err && !reflect.DeepEqual(out, d.out) {
			t.Errorf("ParseConnections(%q) = %v, expected %v", d.in, out, d.out)
		}
	}
}

func TestBusPinName(t *testing.T) {
	if n := hw.BusPinName("uo_out", 7); n != "uo_out[7]" {
		t.Fatalf("got %q", n)
	}
}
