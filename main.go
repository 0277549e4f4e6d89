package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/embhost/atlink/driver"
	"github.com/embhost/atlink/serial"
)

func main() {
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the modem")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("sim-pin", "", "SIM card PIN code (if required)")
	flag.Duration("at-timeout", 5*time.Second, "Timeout for a single AT command exchange")
	flag.Bool("prompt-no-newline", true, "Modem emits the SMS prompt '>' without a trailing newline")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	port, err := serial.Dialer{
		PortName: config.SerialPort,
		BaudRate: config.BaudRate,
	}.Dial()
	if err != nil {
		logger.Error("Failed to open serial port", "error", err)
		os.Exit(1)
	}

	adapter := serial.NewAdapter(port)

	builder := driver.NewConfigBuilder().
		WithUART(adapter).
		WithATTimeout(config.ATTimeout)
	if config.PromptNoNewline {
		builder.WithPromptWithoutNewline()
	}
	driverConfig, err := builder.Build()
	if err != nil {
		logger.Error("Failed to create driver config", "error", err)
		os.Exit(1)
	}

	d, err := driver.New(driverConfig)
	if err != nil {
		logger.Error("Failed to create driver", "error", err)
		os.Exit(1)
	}
	adapter.Attach(d.OnRXByte, d.OnTXReady)

	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- d.Loop(loopCtx)
	}()

	gateway := &Gateway{
		Logger: logger.With("component", "gateway"),
		Driver: d,
		SimPIN: config.SimPIN,
	}
	gateway.WatchUnsolicited()

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	if err := gateway.Init(initCtx); err != nil {
		cancelInit()
		logger.Error("Failed to initialize modem", "error", err)
		os.Exit(1)
	}
	cancelInit()

	logger.Info("Starting SMS gateway", "serial_port", config.SerialPort)

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger:  logger.With("component", "server"),
			Gateway: gateway,
		},
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
	}

	logger.Info("Stopping driver")
	stopLoop()
	<-loopDone
	if err := d.Close(); err != nil {
		logger.Error("Failed to close driver", "error", err)
	}
	if err := adapter.Close(); err != nil {
		logger.Error("Failed to close serial port", "error", err)
	}
}
