package keyboard

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback actions
const (
	ActionFlow    = "action"  // start, submit, refine
	ActionOption  = "opt"     // option index of the current question
	ActionNav     = "nav"     // next, back
	ActionDest    = "dest"    // destination index of the results
	ActionConfirm = "confirm" // reset, continue
)

// Callback values
const (
	FlowStart   = "start"
	FlowSubmit  = "submit"
	FlowRefine  = "refine"
	NavNext     = "next"
	NavBack     = "back"
	ConfirmYes  = "reset"
	ConfirmNo   = "continue"
	maxDataSize = 64 // Telegram limit for callback_data
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string
	Value  string
}

// Index parses Value as a non-negative list index
func (c *CallbackData) Index() (int, error) {
	i, err := strconv.Atoi(c.Value)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid %s index: %q", c.Action, c.Value)
	}
	return i, nil
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	data := fmt.Sprintf("%s:%s", action, value)
	if len(data) > maxDataSize {
		return data[:maxDataSize]
	}
	return data
}

// EncodeIndex creates callback data for a list position
func EncodeIndex(action string, i int) string {
	return EncodeCallback(action, strconv.Itoa(i))
}
