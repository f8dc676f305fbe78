// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must
// implement. See MakePart.
//
type Updater interface {
	Update(c *Circuit)
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pin fields must be exported and of type int. They are set to the pin numbers
// allocated to the part when it is mounted. Buses must be arrays of int.
//
// Each mount gets a fresh copy of t, with untagged fields copied from t. t
// may therefore carry configuration, or pointers to state shared with the
// caller.
//
func MakePart(t Updater) *PartSpec {
	v := reflect.ValueOf(t)
	typ := v.Type()
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
		if v.IsNil() {
			v = reflect.Zero(typ)
		} else {
			v = v.Elem()
		}
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	sp := &PartSpec{
		Name: typ.Name(),
	}
	fields := pinFields(typ)
	for _, f := range fields {
		var names []string
		if f.bus < 0 {
			names = []string{f.pin}
		} else {
			for i := 0; i < f.bus; i++ {
				names = append(names, BusPinName(f.pin, i))
			}
		}
		if f.input {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
	}
	sp.Mount = mountPart(v, fields)
	return sp
}

type pinField struct {
	index int
	pin   string
	input bool
	bus   int // bus width, -1 for a single pin
}

func pinFields(typ reflect.Type) []pinField {
	var fs []pinField
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pf := pinField{index: i, pin: strings.ToLower(f.Name), bus: -1}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pf.pin = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		ft := f.Type
		switch {
		case ft.Kind() == reflect.Array && ft.Elem().Kind() == reflect.Int:
			pf.bus = ft.Len()
		case ft.Kind() == reflect.Int:
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", ft.Kind(), f.Name, typ.Name()))
		}
		fs = append(fs, pf)
	}
	return fs
}

func mountPart(proto reflect.Value, fields []pinField) MountFn {
	return func(s *Socket) []Component {
		v := reflect.New(proto.Type())
		e := v.Elem()
		e.Set(proto)
		for _, f := range fields {
			fv := e.Field(f.index)
			if f.bus < 0 {
				fv.SetInt(int64(s.Pin(f.pin)))
				continue
			}
			for i := 0; i < f.bus; i++ {
				fv.Index(i).SetInt(int64(s.Pin(BusPinName(f.pin, i))))
			}
		}
		u := v.Interface().(Updater)
		return []Component{u.Update}
	}
}
