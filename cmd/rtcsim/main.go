// cmd/rtcsim/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rtc-slave/internal/bcd"
	"github.com/tamzrod/rtc-slave/internal/config"
	"github.com/tamzrod/rtc-slave/internal/device"
	"github.com/tamzrod/rtc-slave/internal/i2cslave"
	"github.com/tamzrod/rtc-slave/internal/regfile"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()

	if len(os.Args) < 2 {
		logger.Fatal().Msg("usage: rtcsim <config.yaml>")
	}
	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}
	if err := config.Validate(cfg); err != nil {
		logger.Fatal().Err(err).Msg("config validation failed")
	}
	config.Normalize(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Build the device and its bus
	// --------------------

	pins := newLogPins(logger)
	wire := i2cslave.NewWire()
	dev := device.New(device.Config{AddressPinHigh: *cfg.Device.AddressPinHigh}, wire, pins)

	bus := &busPort{
		master: i2cslave.NewMaster(wire, dev.Bus()),
		addr:   dev.Addr(),
	}

	if err := programAlarms(bus, cfg); err != nil {
		logger.Fatal().Err(err).Msg("alarm programming failed")
	}

	// --------------------
	// Run loop + tick source
	// --------------------

	go dev.Run(ctx)

	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Device.TickIntervalMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dev.Tick()
			}
		}
	}()

	logger.Info().
		Uint8("bus_addr", dev.Addr()).
		Int("tick_ms", cfg.Device.TickIntervalMs).
		Int("alarms", len(cfg.Alarms)).
		Msg("rtcsim: device running")

	if cfg.Console.Listen == "" {
		<-ctx.Done()
		return
	}
	if err := serveConsole(ctx, cfg.Console.Listen, bus, logger); err != nil {
		logger.Fatal().Err(err).Msg("console failed")
	}
}

// busPort serializes master-side transactions. A physical bus has one
// master talking at a time; console sessions share this one.
type busPort struct {
	mu     sync.Mutex
	master *i2cslave.Master
	addr   byte
}

// write performs an offset-seeded write transaction.
func (b *busPort) write(off byte, data ...byte) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	payload := append([]byte{off}, data...)
	n, ok := b.master.Write(b.addr, payload...)
	if n > 0 {
		n-- // first acked byte was the offset
	}
	return n, ok
}

// read seeds the cursor with a one-byte write, then reads n bytes.
func (b *busPort) read(off byte, n int) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.master.Write(b.addr, off); !ok {
		return nil, false
	}
	return b.master.Read(b.addr, n)
}

// programAlarms writes the configured alarm slots, enable bits and the
// dedicated-output routing through real bus transactions, the same way
// an external master would set the device up.
func programAlarms(bus *busPort, cfg *config.Config) error {
	var enable byte
	for _, a := range cfg.Alarms {
		slot := a.Slot - 1
		if _, ok := bus.write(
			regfile.AlarmReg(slot, regfile.AlarmMinuteOff),
			bcd.Encode(a.Minute),
			bcd.Encode(a.Hour)|regfile.AlarmHourMatch,
			a.DayMask(),
		); !ok {
			return errNack
		}
		if a.Enabled {
			enable |= 1 << slot
		}
	}

	var conf byte
	if cfg.Device.DedicatedOutputs {
		conf = regfile.ConfigDedicatedOutputs
	}
	if _, ok := bus.write(regfile.RegConfig, conf, enable); !ok {
		return errNack
	}
	return nil
}
