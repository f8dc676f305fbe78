// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command spipwm simulates the SPI PWM peripheral: it resets the device,
// configures it over the serial interface and measures the resulting PWM
// signal on uo_out[0].
//
// With --serve, it keeps running after the measurement and exposes the
// simulation metrics over HTTP until interrupted.
//
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/db47h/spipwm"
	"github.com/db47h/spipwm/driver"
	"github.com/db47h/spipwm/hwtest"
)

const projectName = "spipwm"

var (
	projectVersion = "dev"
	maskAny        = errors.WithStack
)

func main() {
	var (
		levelFlag   string
		cfg         = spipwm.DefaultConfig()
		bcfg        = hwtest.DefaultBenchConfig()
		dev         driver.Config
		metricsHost string
		metricsPort int
		serve       bool
	)

	pflag.StringVarP(&levelFlag, "level", "l", "info", "Set log level")
	pflag.Uint32Var(&cfg.ClockHz, "clock-hz", cfg.ClockHz, "System clock frequency in Hz")
	pflag.Uint32Var(&cfg.PWMFrequencyHz, "pwm-freq", cfg.PWMFrequencyHz, "Target PWM frequency in Hz")
	pflag.Uint8Var(&dev.DutyCycle, "duty", 0x80, "Duty cycle register value (0-255)")
	pflag.Uint8Var(&dev.OutputEnable, "oe", 0x01, "Output enable mask")
	pflag.Uint8Var(&dev.PWMEnable, "pwm-enable", 0x01, "PWM enable mask")
	pflag.Uint8Var(&dev.OutputData, "data", 0x00, "Static output data")
	pflag.IntVar(&bcfg.HalfPeriod, "half-period", bcfg.HalfPeriod, "Serial clock half period in system clock cycles")
	pflag.IntVar(&bcfg.Workers, "workers", bcfg.Workers, "Simulation worker goroutines (0 = GOMAXPROCS)")
	pflag.UintVar(&bcfg.StepsPerCycle, "steps-per-cycle", bcfg.StepsPerCycle, "Simulation steps per clock cycle")
	pflag.StringVar(&metricsHost, "metrics-host", "0.0.0.0", "Host address the metrics server will listen on")
	pflag.IntVar(&metricsPort, "metrics-port", 9110, "Port the metrics server will listen on")
	pflag.BoolVar(&serve, "serve", false, "Keep serving metrics after the measurement")
	pflag.Parse()

	level, err := zerolog.ParseLevel(levelFlag)
	if err != nil {
		Exitf("Invalid log level '%s': %v\n", levelFlag, err)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)

	fmt.Printf("Starting %s (version %s)\n", projectName, projectVersion)

	res, err := run(cfg, bcfg, dev, logger)
	if err != nil {
		Exitf("Simulation failed: %v\n", err)
	}
	report(res)

	if !serve {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		logger.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serveMetrics(ctx, metricsHost, metricsPort, logger) })
	if err := g.Wait(); err != nil {
		Exitf("Metrics server failed: %v\n", err)
	}
}

type result struct {
	cfg     spipwm.Config
	m       hwtest.Measurement
	uio     uint8
	cycles  uint64
	elapsed time.Duration
	simTime time.Duration
}

func run(cfg spipwm.Config, bcfg hwtest.BenchConfig, dev driver.Config, log zerolog.Logger) (result, error) {
	ctrl, err := spipwm.New(cfg, log)
	if err != nil {
		return result{}, maskAny(err)
	}
	b, err := hwtest.NewBench(ctrl, bcfg)
	if err != nil {
		return result{}, maskAny(err)
	}
	defer b.Dispose()

	start := time.Now()
	b.Reset()
	if err := driver.New(b, b).Configure(dev); err != nil {
		return result{}, errors.Wrap(err, "failed to configure device")
	}
	log.Info().Str("registers", ctrl.Registers().String()).Msg("device configured")

	// one full PWM period for the new duty cycle to be latched, plus margin.
	timeout := 2 * uint64(cfg.PWMModulus())
	m, err := b.MeasurePWM(timeout)
	if err != nil {
		return result{}, errors.Wrap(err, "PWM measurement failed")
	}
	return result{
		cfg:     cfg,
		m:       m,
		uio:     b.SecondaryOutput(),
		cycles:  b.Now(),
		elapsed: time.Since(start),
		simTime: b.Duration(b.Now()),
	}, nil
}

func report(r result) {
	fmt.Printf("clock:        %s\n", humanize.SIWithDigits(float64(r.cfg.ClockHz), 3, "Hz"))
	fmt.Printf("modulus:      %s\n", humanize.Comma(int64(r.cfg.PWMModulus())))
	fmt.Printf("period:       %s cycles\n", humanize.Comma(int64(r.m.PeriodCycles)))
	fmt.Printf("high time:    %s cycles\n", humanize.Comma(int64(r.m.HighCycles)))
	fmt.Printf("frequency:    %s\n", humanize.SIWithDigits(r.m.Frequency, 2, "Hz"))
	fmt.Printf("duty:         %.2f%%\n", r.m.Duty*100)
	fmt.Printf("uio_out:      0x%02x\n", r.uio)
	fmt.Printf("simulated:    %s cycles (%v) in %v\n", humanize.Comma(int64(r.cycles)), r.simTime, r.elapsed)
}

// Exitf prints the given error message and exits with code 1.
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
