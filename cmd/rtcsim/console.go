// cmd/rtcsim/console.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tamzrod/rtc-slave/internal/regfile"
)

// errNack reports a transaction the slave did not acknowledge.
var errNack = errors.New("bus: transaction not acknowledged")

var dayNames = [8]string{"?", "mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// serveConsole runs the line-oriented TCP bus console. Every command is
// executed as a genuine bus transaction against the slave engine, so a
// console session observes exactly what an external master would.
func serveConsole(ctx context.Context, addr string, bus *busPort, log zerolog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	log.Info().Str("listen", ln.Addr().String()).Msg("console: listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go handleConn(conn, bus, log)
	}
}

func handleConn(conn net.Conn, bus *busPort, log zerolog.Logger) {
	remote := conn.RemoteAddr().String()
	log.Info().Str("remote", remote).Msg("console: client connected")
	defer func() {
		conn.Close()
		log.Info().Str("remote", remote).Msg("console: client disconnected")
	}()

	fmt.Fprintln(conn, "rtcsim console: read <off> [n] | write <off> <b>... | time | dump | quit")

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit":
			return
		case "time":
			cmdTime(conn, bus)
		case "dump":
			cmdRead(conn, bus, 0, regfile.Size)
		case "read":
			off, n, err := parseRead(fields[1:])
			if err != nil {
				fmt.Fprintf(conn, "err: %v\n", err)
				continue
			}
			cmdRead(conn, bus, off, n)
		case "write":
			off, data, err := parseWrite(fields[1:])
			if err != nil {
				fmt.Fprintf(conn, "err: %v\n", err)
				continue
			}
			if n, ok := bus.write(off, data...); !ok {
				fmt.Fprintf(conn, "err: %v\n", errNack)
			} else {
				fmt.Fprintf(conn, "ok: %d byte(s) written at 0x%02X\n", n, off)
			}
		default:
			fmt.Fprintf(conn, "err: unknown command %q\n", fields[0])
		}
	}
}

func cmdRead(conn net.Conn, bus *busPort, off byte, n int) {
	data, ok := bus.read(off, n)
	if !ok {
		fmt.Fprintf(conn, "err: %v\n", errNack)
		return
	}
	fmt.Fprintf(conn, "ok:")
	for _, b := range data {
		fmt.Fprintf(conn, " %02X", b)
	}
	fmt.Fprintln(conn)
}

// cmdTime reads the eight calendar registers and prints them. BCD
// bytes print as their decimal digits under %02x, so no conversion.
func cmdTime(conn net.Conn, bus *busPort) {
	b, ok := bus.read(regfile.RegSecond, 8)
	if !ok {
		fmt.Fprintf(conn, "err: %v\n", errNack)
		return
	}
	day := "?"
	if b[regfile.RegDay] >= 1 && b[regfile.RegDay] <= 7 {
		day = dayNames[b[regfile.RegDay]]
	}
	fmt.Fprintf(conn, "ok: %02x%02x-%02x-%02x %02x:%02x:%02x %s\n",
		b[regfile.RegCentury], b[regfile.RegYear],
		b[regfile.RegMonth], b[regfile.RegDate],
		b[regfile.RegHour], b[regfile.RegMinute], b[regfile.RegSecond],
		day)
}

func parseRead(args []string) (off byte, n int, err error) {
	if len(args) < 1 {
		return 0, 0, errors.New("read: offset required")
	}
	o, err := parseByte(args[0])
	if err != nil {
		return 0, 0, err
	}
	n = 1
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 || v > regfile.Size {
			return 0, 0, fmt.Errorf("read: count must be 1-%d", regfile.Size)
		}
		n = v
	}
	return o, n, nil
}

func parseWrite(args []string) (off byte, data []byte, err error) {
	if len(args) < 2 {
		return 0, nil, errors.New("write: offset and at least one byte required")
	}
	o, err := parseByte(args[0])
	if err != nil {
		return 0, nil, err
	}
	for _, a := range args[1:] {
		b, err := parseByte(a)
		if err != nil {
			return 0, nil, err
		}
		data = append(data, b)
	}
	return o, data, nil
}

// parseByte accepts decimal or 0x-prefixed hex.
func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("bad byte %q", s)
	}
	return byte(v), nil
}
