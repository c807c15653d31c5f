package domain

import (
	"encoding/json"
	"errors"
	"net/http"
)

// StatusOK is the only envelope code the client treats as success.
const StatusOK = 200

// Result is the platform's uniform response envelope. Code mirrors or
// overrides the HTTP status; every layer of the client passes this envelope
// around instead of raw transport status codes.
type Result struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (r Result) OK() bool {
	return r.Code == StatusOK
}

// DecodeData unmarshals the envelope payload into v.
func (r Result) DecodeData(v any) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return errors.New("result has no data")
	}
	return json.Unmarshal(r.Data, v)
}

// ParseResult normalizes a response body into a Result. An empty body maps
// to the HTTP status (204 normalizes to 200) with the status text as the
// message; a body that is not valid JSON maps to a parse-failure envelope
// carrying the HTTP status.
func ParseResult(status int, statusText string, body []byte) Result {
	if len(body) == 0 {
		code := status
		if code == http.StatusNoContent {
			code = StatusOK
		}
		return Result{Code: code, Message: statusText}
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return Result{Code: status, Message: "response parse failed"}
	}
	return result
}
