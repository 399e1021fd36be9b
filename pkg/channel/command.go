/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: command.go
Description: Control-channel command codec for the SatTest harness. Commands
are single short text messages: START, STOP, or a parameter set encoded as
key=value pairs separated by ";". One connection carries exactly one command.
*/

package channel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kleascm/sattest/pkg/interfaces"
)

// ErrMalformedParams reports a parameter string with a missing "=" delimiter.
var ErrMalformedParams = errors.New("malformed parameter string: missing '=' delimiter")

// StartCommand returns the START control command
func StartCommand() interfaces.Command {
	return interfaces.Command{Type: interfaces.CommandStart, Raw: "START"}
}

// StopCommand returns the STOP control command
func StopCommand() interfaces.Command {
	return interfaces.Command{Type: interfaces.CommandStop, Raw: "STOP"}
}

// ParamsCommand builds a parameter command from key=value pairs, preserving
// the given encoding order.
func ParamsCommand(raw string) (interfaces.Command, error) {
	params, err := ParseParams(raw)
	if err != nil {
		return interfaces.Command{}, err
	}
	return interfaces.Command{Type: interfaces.CommandParams, Params: params, Raw: raw}, nil
}

// EncodeJamParams renders jamming parameters in the exact order the signal
// generation collaborator expects.
func EncodeJamParams(p interfaces.JamParams) string {
	return fmt.Sprintf("freq=%s;power=%s;bandwidth=%s", p.Freq, p.Power, p.Bandwidth)
}

// ParseParams splits a "key=value;key=value" string into a map. A pair
// without "=" makes the whole string malformed.
func ParseParams(raw string) (map[string]string, error) {
	params := make(map[string]string)
	for _, item := range strings.Split(strings.TrimSpace(raw), ";") {
		if item == "" {
			continue
		}
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedParams, item)
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params, nil
}

// ParseCommand decodes one received control message. Unrecognized or
// malformed messages yield a CommandUnknown, which receivers drop without
// any state change.
func ParseCommand(raw []byte) interfaces.Command {
	text := strings.TrimSpace(string(raw))
	switch text {
	case "START":
		return interfaces.Command{Type: interfaces.CommandStart, Raw: text}
	case "STOP":
		return interfaces.Command{Type: interfaces.CommandStop, Raw: text}
	}
	if strings.Contains(text, "=") {
		params, err := ParseParams(text)
		if err == nil {
			return interfaces.Command{Type: interfaces.CommandParams, Params: params, Raw: text}
		}
	}
	return interfaces.Command{Type: interfaces.CommandUnknown, Raw: text}
}
