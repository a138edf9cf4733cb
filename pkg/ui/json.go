package ui

import (
	"encoding/json"
	"io"
)

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(output io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) RenderResult(result interface{}) error {
	return r.encoder.Encode(result)
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
