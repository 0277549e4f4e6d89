package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/embhost/atlink/at"
	"github.com/embhost/atlink/driver"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// exchangeStep pairs a command expected on the wire with the response
// the fake peripheral feeds back.
type exchangeStep struct {
	wire     string
	response string
}

// modemFixture runs a Gateway against a scripted peripheral: a
// background goroutine waits for each expected command and feeds the
// scripted response.
func modemFixture(t *testing.T, simPIN string, script []exchangeStep) *Gateway {
	t.Helper()

	u := driver.NewTestUART()
	config, err := driver.NewConfigBuilder().
		WithUART(u).
		WithPromptWithoutNewline().
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}
	d, err := driver.New(config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	u.Attach(d)

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- d.Loop(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-loopDone
	})

	go func() {
		for _, step := range script {
			deadline := time.Now().Add(5 * time.Second)
			for !strings.Contains(u.Sent(), step.wire) {
				if time.Now().After(deadline) {
					return
				}
				time.Sleep(time.Millisecond)
			}
			u.Feed(step.response)
		}
	}()

	return &Gateway{
		Logger: discardLogger(),
		Driver: d,
		SimPIN: simPIN,
	}
}

func TestGatewayInit(t *testing.T) {
	t.Run("SIM ready", func(t *testing.T) {
		g := modemFixture(t, "", []exchangeStep{
			{wire: "AT\r\n", response: "AT\r\nOK\r\n"},
			{wire: "ATE0\r\n", response: "ATE0\r\nOK\r\n"},
			{wire: "AT+CMEE=1\r\n", response: "OK\r\n"},
			{wire: "AT+CPIN?\r\n", response: "+CPIN: READY\r\nOK\r\n"},
			{wire: "AT+CMGF=1\r\n", response: "OK\r\n"},
		})

		if err := g.Init(context.Background()); err != nil {
			t.Errorf("unexpected error from Init(): %v", err)
		}
	})

	t.Run("SIM PIN entered when provided", func(t *testing.T) {
		g := modemFixture(t, "1234", []exchangeStep{
			{wire: "AT\r\n", response: "OK\r\n"},
			{wire: "ATE0\r\n", response: "OK\r\n"},
			{wire: "AT+CMEE=1\r\n", response: "OK\r\n"},
			{wire: "AT+CPIN?\r\n", response: "+CPIN: SIM PIN\r\nOK\r\n"},
			{wire: "AT+CPIN=\"1234\"\r\n", response: "OK\r\n"},
			{wire: "AT+CMGF=1\r\n", response: "OK\r\n"},
		})

		if err := g.Init(context.Background()); err != nil {
			t.Errorf("unexpected error from Init(): %v", err)
		}
	})

	t.Run("ErrSIMPinRequired when PIN missing", func(t *testing.T) {
		g := modemFixture(t, "", []exchangeStep{
			{wire: "AT\r\n", response: "OK\r\n"},
			{wire: "ATE0\r\n", response: "OK\r\n"},
			{wire: "AT+CMEE=1\r\n", response: "OK\r\n"},
			{wire: "AT+CPIN?\r\n", response: "+CPIN: SIM PIN\r\nOK\r\n"},
		})

		if err := g.Init(context.Background()); !errors.Is(err, ErrSIMPinRequired) {
			t.Errorf("expected ErrSIMPinRequired, got: %v", err)
		}
	})
}

func TestGatewaySendSMS(t *testing.T) {
	g := modemFixture(t, "", []exchangeStep{
		{wire: "AT+CMGS=\"+1234567890\"\r\n", response: ">"},
		{wire: "Hello!\x1a\r\n", response: "+CMGS: 12\r\nOK\r\n"},
	})

	if err := g.SendSMS(context.Background(), "+1234567890", "Hello!"); err != nil {
		t.Errorf("unexpected error from SendSMS(): %v", err)
	}
}

func TestGatewaySignalQuality(t *testing.T) {
	t.Run("Parses RSSI", func(t *testing.T) {
		g := modemFixture(t, "", []exchangeStep{
			{wire: "AT+CSQ\r\n", response: "+CSQ: 23,99\r\nOK\r\n"},
		})

		rssi, err := g.SignalQuality(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rssi != 23 {
			t.Errorf("expected rssi 23, got %d", rssi)
		}
	})

	t.Run("Error outcome surfaces as ModemError", func(t *testing.T) {
		g := modemFixture(t, "", []exchangeStep{
			{wire: "AT+CSQ\r\n", response: "ERROR\r\n"},
		})

		_, err := g.SignalQuality(context.Background())
		var me *ModemError
		if !errors.As(err, &me) {
			t.Fatalf("expected a ModemError, got: %v", err)
		}
		if me.Result != at.ResultError {
			t.Errorf("expected outcome %v, got %v", at.ResultError, me.Result)
		}
	})

	t.Run("CME detail carried by ModemError", func(t *testing.T) {
		g := modemFixture(t, "", []exchangeStep{
			{wire: "AT+CSQ\r\n", response: "+CME ERROR: 30\r\n"},
		})

		_, err := g.SignalQuality(context.Background())
		var me *ModemError
		if !errors.As(err, &me) {
			t.Fatalf("expected a ModemError, got: %v", err)
		}
		if me.Result != at.ResultCMEError {
			t.Errorf("expected outcome %v, got %v", at.ResultCMEError, me.Result)
		}
		if me.Detail != ": 30" {
			t.Errorf("expected detail %q, got %q", ": 30", me.Detail)
		}
	})
}
