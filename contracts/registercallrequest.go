package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo"
)

// RegisterCallRequest is the body of POST /register-call
type RegisterCallRequest struct {
	FromNumber       *string                `json:"from_number"`
	ToNumber         *string                `json:"to_number"`
	SavID            interface{}            `json:"sav_id,omitempty"`
	DynamicVariables map[string]interface{} `json:"dynamic_variables,omitempty"`
}

// ExtractFromHTTP decodes the JSON body. An empty body decodes to an empty
// request so that Validate reports the missing fields.
func (rcr *RegisterCallRequest) ExtractFromHTTP(c echo.Context) error {
	if err := json.NewDecoder(c.Request().Body).Decode(rcr); err != nil && err != io.EOF {
		return fmt.Errorf("Invalid JSON body: %v", err)
	}
	return nil
}

// Validate checks that every field in required is present and non-empty.
// The message names all of the required fields, not only the missing ones.
func (rcr *RegisterCallRequest) Validate(required []string) error {
	for _, field := range required {
		if rcr.field(field) == "" {
			return errors.New("Missing required fields: " + strings.Join(required, ", "))
		}
	}
	return nil
}

func (rcr *RegisterCallRequest) field(name string) string {
	var value *string
	switch name {
	case "from_number":
		value = rcr.FromNumber
	case "to_number":
		value = rcr.ToNumber
	}
	if value == nil {
		return ""
	}
	return *value
}

// From returns from_number or "" when absent
func (rcr *RegisterCallRequest) From() string {
	return rcr.field("from_number")
}

// To returns to_number or "" when absent
func (rcr *RegisterCallRequest) To() string {
	return rcr.field("to_number")
}

// SavIDString renders the correlation id for log lines
func (rcr *RegisterCallRequest) SavIDString() string {
	switch v := rcr.SavID.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, _ := json.Marshal(v)
		return string(raw)
	}
}
