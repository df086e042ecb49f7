package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"textgen/internal/model"
	"textgen/pkg/types"
)

// writeJSONError writes a consistent JSON error payload for request-shape errors.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// envelope maps a generation result onto the response body. Failures keep
// HTTP 200 and carry status "error".
func envelope(res model.Result) types.GenerateResponse {
	if !res.OK() {
		msg := res.Err.Error()
		if msg == "" {
			msg = "generation failed"
		}
		return types.GenerateResponse{Status: types.StatusError, Message: msg, Kind: string(res.Kind())}
	}
	if len(res.Texts) == 0 || len(res.Texts) != res.Params.NumReturnSequences {
		return types.GenerateResponse{
			Status:  types.StatusError,
			Message: fmt.Sprintf("runtime returned %d sequences, want %d", len(res.Texts), res.Params.NumReturnSequences),
			Kind:    string(model.KindGeneration),
		}
	}
	params := toWire(res.Params)
	return types.GenerateResponse{Status: types.StatusSuccess, Results: res.Texts, Parameters: &params}
}

func toWire(p model.Params) types.GenerateRequest {
	return types.GenerateRequest{
		Prompt:             p.Prompt,
		MaxLength:          p.MaxLength,
		Temperature:        p.Temperature,
		TopP:               p.TopP,
		NumReturnSequences: p.NumReturnSequences,
	}
}

func fromWire(r types.GenerateRequest) model.Params {
	return model.Params{
		Prompt:             r.Prompt,
		MaxLength:          r.MaxLength,
		Temperature:        r.Temperature,
		TopP:               r.TopP,
		NumReturnSequences: r.NumReturnSequences,
	}
}
