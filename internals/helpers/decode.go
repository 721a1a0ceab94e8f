package helper

import (
	"bytes"

	"github.com/bytedance/sonic"
)

var strictJSON = sonic.Config{
	DisallowUnknownFields: true,
	ValidateString:        true,
}.Froze()

// DecodeStrict decode body JSON ke dst dan menolak field yang tidak dikenal.
func DecodeStrict(body []byte, dst interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &ValidationFailure{Message: "Request body kosong"}
	}
	if err := strictJSON.Unmarshal(body, dst); err != nil {
		return &ValidationFailure{Message: "Body JSON tidak valid: " + err.Error()}
	}
	return nil
}
