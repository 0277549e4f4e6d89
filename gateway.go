package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/embhost/atlink/at"
	"github.com/embhost/atlink/driver"
)

// ErrSIMPinRequired is returned when the SIM card requires a PIN and
// none was provided in the configuration.
var ErrSIMPinRequired = errors.New("SIM PIN required")

// ModemError reports a command exchange that completed with a non-OK
// outcome. Result distinguishes a peripheral that answered badly from
// one that never answered; Detail carries the CME detail or response
// payload when the modem supplied one.
type ModemError struct {
	Cmd    at.Command
	Result at.Result
	Detail string
}

func (e *ModemError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Cmd, e.Result, strings.TrimLeft(e.Detail, ": "))
	}
	return fmt.Sprintf("%s: %s", e.Cmd, e.Result)
}

// Gateway wraps the AT driver with the modem-level operations this
// daemon exposes: bring-up, SMS sending and signal readout.
type Gateway struct {
	Logger *slog.Logger
	Driver *driver.Driver
	SimPIN string
}

// Init runs the bring-up sequence: sanity check, echo off, numeric CME
// error codes, SIM unlock when needed, SMS text mode.
func (g *Gateway) Init(ctx context.Context) error {
	if err := g.expectOK(ctx, at.Base, at.KindExec); err != nil {
		return fmt.Errorf("modem not responding: %w", err)
	}

	if err := g.expectOK(ctx, cmdEchoOff, at.KindExec); err != nil {
		return fmt.Errorf("could not disable echo: %w", err)
	}

	if err := g.expectOKWrite(ctx, cmdCMEE, "1"); err != nil {
		return fmt.Errorf("could not enable CME errors: %w", err)
	}

	res, simStatus, err := g.Driver.Send(ctx, cmdCPIN, at.KindRead)
	if err != nil {
		return fmt.Errorf("query SIM status: %w", err)
	}
	if res != at.ResultOK {
		return fmt.Errorf("query SIM status: %w",
			&ModemError{Cmd: cmdCPIN, Result: res, Detail: simStatus})
	}

	switch {
	case strings.Contains(simStatus, simReady):
		// Unlocked already.

	case strings.Contains(simStatus, simPin):
		if g.SimPIN == "" {
			return ErrSIMPinRequired
		}
		if err := g.expectOKWrite(ctx, cmdCPIN, fmt.Sprintf("%q", g.SimPIN)); err != nil {
			return fmt.Errorf("enter SIM PIN: %w", err)
		}

	default:
		return fmt.Errorf("unsupported SIM state: %q", simStatus)
	}

	if err := g.expectOKWrite(ctx, cmdCMGF, "1"); err != nil {
		return fmt.Errorf("set SMS text mode: %w", err)
	}

	return nil
}

// WatchUnsolicited registers permanent handlers for the modem's
// asynchronous notifications and logs them. Handlers run on the
// driver's receive loop, so they only log and return.
func (g *Gateway) WatchUnsolicited() {
	g.Driver.RegisterUnsolicited(cmdCMTI, func(payload string) bool {
		g.Logger.Info("New message stored", "slot", payload)
		return false
	})
	g.Driver.RegisterUnsolicitedMessage(msgRing, func() bool {
		g.Logger.Info("Incoming call")
		return false
	})
	g.Driver.RegisterUnsolicitedMessage(msgNoCarrier, func() bool {
		g.Logger.Info("Carrier lost")
		return false
	})
}

// SendSMS sends a text message in text mode. The recipient should be
// in international format (e.g. "+1234567890"). It blocks until the
// network accepts the message; delivery happens asynchronously.
func (g *Gateway) SendSMS(ctx context.Context, recipient, message string) error {
	res, err := g.Driver.SendPrompted(ctx, cmdCMGS,
		fmt.Sprintf("%q", recipient), message, at.PromptEndCtrlZ)
	if err != nil {
		return fmt.Errorf("send SMS: %w", err)
	}
	if res != at.ResultOK {
		return fmt.Errorf("send SMS: %w", &ModemError{Cmd: cmdCMGS, Result: res})
	}
	return nil
}

// SignalQuality reads the received signal strength indicator, 0–31 or
// 99 when unknown.
func (g *Gateway) SignalQuality(ctx context.Context) (int, error) {
	res, payload, err := g.Driver.Send(ctx, cmdCSQ, at.KindExec)
	if err != nil {
		return 0, fmt.Errorf("query signal quality: %w", err)
	}
	if res != at.ResultOK {
		return 0, fmt.Errorf("query signal quality: %w",
			&ModemError{Cmd: cmdCSQ, Result: res, Detail: payload})
	}

	rssi, _, found := strings.Cut(payload, ",")
	if !found {
		return 0, fmt.Errorf("malformed signal response: %q", payload)
	}
	v, err := strconv.Atoi(strings.TrimSpace(rssi))
	if err != nil {
		return 0, fmt.Errorf("malformed signal response %q: %w", payload, err)
	}
	return v, nil
}

func (g *Gateway) expectOK(ctx context.Context, cmd at.Command, kind at.Kind) error {
	res, payload, err := g.Driver.Send(ctx, cmd, kind)
	if err != nil {
		return err
	}
	if res != at.ResultOK {
		return &ModemError{Cmd: cmd, Result: res, Detail: payload}
	}
	return nil
}

func (g *Gateway) expectOKWrite(ctx context.Context, cmd at.Command, payload string) error {
	res, detail, err := g.Driver.SendWrite(ctx, cmd, payload)
	if err != nil {
		return err
	}
	if res != at.ResultOK {
		return &ModemError{Cmd: cmd, Result: res, Detail: detail}
	}
	return nil
}
