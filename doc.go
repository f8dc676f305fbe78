// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package spipwm is a cycle accurate model of a small register mapped peripheral:
an SPI command decoder driving a register file, and a PWM generator whose duty
cycle comes from one of those registers.

The controller is built as a hwsim chip and runs in a hwsim.Circuit. Its pins
follow the usual Tiny Tapeout layout:

	ui_in[0]    SCLK
	ui_in[1]    COPI
	ui_in[2]    nCS (active low)
	rst_n       reset (active low)
	uo_out[8]   multiplexed PWM / static output
	uio_out[8]  static output data register

Registers:

	0x00  output enable
	0x01  static output data
	0x02  PWM enable
	0x04  PWM duty cycle (d/255)

Every other address is inert: writes are dropped and nothing is reported on the
wire. There is no read response path.

Package hwtest provides a bench to drive the controller through its serial
interface and measure its PWM output.
*/
package spipwm
