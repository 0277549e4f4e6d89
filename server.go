package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/embhost/atlink/at"
)

// Server exposes the gateway's modem operations over HTTP.
type Server struct {
	Logger  *slog.Logger
	Gateway *Gateway
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/sms" && r.Method == http.MethodPost:
		s.handleSMS(w, r)
	case r.URL.Path == "/signal" && r.Method == http.MethodGet:
		s.handleSignal(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// errorBody carries a failure back to the HTTP caller. For failures
// that came out of an AT exchange it includes the driver's outcome and
// whatever detail the modem attached (the CME detail, typically).
type errorBody struct {
	Error   string `json:"error"`
	Outcome string `json:"outcome,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// writeModemError maps the driver's outcome taxonomy onto HTTP status
// codes: a timeout means the modem never answered (504), any other
// non-OK outcome is a bad answer from the peripheral (502), and
// anything that is not a ModemError is the gateway's own fault (500).
func (s *Server) writeModemError(w http.ResponseWriter, err error) {
	var me *ModemError
	if !errors.As(err, &me) {
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}

	status := http.StatusBadGateway
	if me.Result == at.ResultTimeout {
		status = http.StatusGatewayTimeout
	}
	s.writeJSON(w, status, errorBody{
		Error:   err.Error(),
		Outcome: me.Result.String(),
		Detail:  me.Detail,
	})
}

// handleSMS processes incoming HTTP POST requests to send SMS messages
func (s *Server) handleSMS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To      string `json:"to"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if req.To == "" || req.Message == "" {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "both 'to' and 'message' fields are required"})
		return
	}

	if err := s.Gateway.SendSMS(r.Context(), req.To, req.Message); err != nil {
		s.Logger.Error("Failed to send SMS", "error", err, "to", req.To)
		s.writeModemError(w, err)
		return
	}

	s.Logger.Info("SMS sent", "to", req.To, "message_length", len(req.Message))
	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "sent"})
}

// handleSignal reports the current signal strength
func (s *Server) handleSignal(w http.ResponseWriter, r *http.Request) {
	rssi, err := s.Gateway.SignalQuality(r.Context())
	if err != nil {
		s.Logger.Error("Failed to read signal quality", "error", err)
		s.writeModemError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, struct {
		RSSI int `json:"rssi"`
	}{RSSI: rssi})
}
