// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package regfile

import (
	"github.com/rs/zerolog"

	"github.com/db47h/spipwm/hwlib"
	"github.com/db47h/spipwm/hwsim"
)

// Registers returns a part wrapping f.
//
//	Inputs: we, re, addr[7], data[8], rst_n
//	Outputs: oe[8], out[8], pwmen[8], duty[8]
//
// A write request (we high) is committed on the rising edge. The outputs are
// registered: during the commit step they still show the previous value, so
// parts sampling them on the same edge see the pre-update state. rst_n low
// clears every register on any step and wins over a write in the same cycle.
//
// Read requests (re high) have no response path; they are only counted.
//
// f must not be mounted more than once.
//
func Registers(f *File, log zerolog.Logger) hwsim.NewPartFn {
	log = log.With().Str("component", "regfile").Logger()
	return (&hwsim.PartSpec{
		Name:    "REGFILE",
		Inputs:  append(append([]string{"we", "re"}, pins("addr", 7)...), append(pins("data", 8), "rst_n")...),
		Outputs: append(append(pins("oe", 8), pins("out", 8)...), append(pins("pwmen", 8), pins("duty", 8)...)...),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			we, re, rst := s.Pin("we"), s.Pin("re"), s.Pin("rst_n")
			addr, data := s.Bus("addr"), s.Bus("data")
			oe, out, pwmen, duty := s.Bus("oe"), s.Bus("out"), s.Bus("pwmen"), s.Bus("duty")
			return []hwsim.Component{func(c *hwsim.Circuit) {
				// outputs first: same-edge readers see the old values.
				snap := f.Snapshot()
				hwlib.SetInt64(c, oe, int64(snap.OutputEnable))
				hwlib.SetInt64(c, out, int64(snap.OutputData))
				hwlib.SetInt64(c, pwmen, int64(snap.PWMEnable))
				hwlib.SetInt64(c, duty, int64(snap.DutyCycle))

				switch {
				case !c.Get(rst):
					f.Reset()
				case c.AtTick():
					a := uint8(hwlib.Int64(c, addr))
					if c.Get(we) {
						v := uint8(hwlib.Int64(c, data))
						if f.Write(a, v) {
							writesCommittedTotal.Inc()
							log.Debug().Uint8("addr", a).Uint8("data", v).Msg("register written")
						} else {
							writesDroppedTotal.Inc()
							log.Debug().Uint8("addr", a).Uint8("data", v).Msg("write to invalid address dropped")
						}
					}
					if c.Get(re) {
						v, ok := f.Read(a)
						readRequestsTotal.Inc()
						log.Debug().Uint8("addr", a).Uint8("value", v).Bool("valid", ok).Msg("read request")
					}
				}
			}}
		}}).NewPart
}

func pins(name string, bits int) []string {
	p := make([]string, bits)
	for i := range p {
		p[i] = hwsim.BusPinName(name, i)
	}
	return p
}
