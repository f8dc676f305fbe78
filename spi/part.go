// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package spi

import (
	"github.com/rs/zerolog"

	"github.com/db47h/spipwm/hwlib"
	"github.com/db47h/spipwm/hwsim"
)

// Deserializer returns a part wrapping d. The decoder samples its inputs on
// every rising edge of the system clock. When a frame completes, the request is
// presented on addr and data for exactly one clock cycle, qualified by the we
// (write) or re (read) strobe. rst_n low resets the decoder and clears the
// outputs on the next step, regardless of the clock.
//
//	Inputs: ncs, sclk, copi, rst_n
//	Outputs: we, re, addr[7], data[8]
//
// d must not be mounted more than once.
//
func Deserializer(d *Decoder, log zerolog.Logger) hwsim.NewPartFn {
	log = log.With().Str("component", "spi").Logger()
	return (&hwsim.PartSpec{
		Name:    "SPIDESER",
		Inputs:  []string{"ncs", "sclk", "copi", "rst_n"},
		Outputs: append([]string{"we", "re"}, append(busPins("addr", AddrBits), busPins("data", DataBits)...)...),
		Mount: func(s *hwsim.Socket) []hwsim.Component {
			ncs, sclk, copi, rst := s.Pin("ncs"), s.Pin("sclk"), s.Pin("copi"), s.Pin("rst_n")
			we, re := s.Pin("we"), s.Pin("re")
			addr, data := s.Bus("addr"), s.Bus("data")
			var (
				req    Frame
				strobe bool
			)
			return []hwsim.Component{func(c *hwsim.Circuit) {
				switch {
				case !c.Get(rst):
					d.Reset()
					req, strobe = Frame{}, false
				case c.AtTick():
					prev := d.State()
					req, strobe = d.Clock(c.Get(ncs), c.Get(sclk), c.Get(copi))
					if strobe {
						log.Debug().Str("frame", req.String()).Msg("frame committed")
					} else if st := d.State(); st == Idle && (prev == ShiftAddress || prev == ShiftPayload) {
						log.Debug().Str("state", prev.String()).Msg("frame aborted by chip-select release")
					}
				}
				c.Set(we, strobe && req.Write)
				c.Set(re, strobe && !req.Write)
				hwlib.SetInt64(c, addr, int64(req.Addr))
				hwlib.SetInt64(c, data, int64(req.Data))
			}}
		}}).NewPart
}

func busPins(name string, bits int) []string {
	pins := make([]string, bits)
	for i := range pins {
		pins[i] = hwsim.BusPinName(name, i)
	}
	return pins
}
