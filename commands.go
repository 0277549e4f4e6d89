package main

import "github.com/embhost/atlink/at"

// The AT command set this gateway speaks. Declared once; the driver
// composes the wire form from these.
var (
	cmdEchoOff = at.Bare("E0")
	cmdCMEE    = at.Extended("CMEE")
	cmdCPIN    = at.Extended("CPIN")
	cmdCMGF    = at.Extended("CMGF")
	cmdCMGS    = at.Extended("CMGS")
	cmdCSQ     = at.Extended("CSQ")
	cmdCMTI    = at.Extended("CMTI")
)

// Unsolicited messages the modem emits without a '+' header.
const (
	msgRing      = at.Message("RING")
	msgNoCarrier = at.Message("NO CARRIER")
)

// SIM states reported by AT+CPIN?.
const (
	simReady = "READY"
	simPin   = "SIM PIN"
)
