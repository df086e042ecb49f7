package types

// Generation defaults applied to fields omitted from a request body.
const (
	DefaultMaxLength          = 150
	DefaultTemperature        = 0.7
	DefaultTopP               = 0.9
	DefaultNumReturnSequences = 1
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// GenerateRequest represents a text generation request payload.
type GenerateRequest struct {
	// Required prompt text to continue.
	// example: Once upon a time
	Prompt string `json:"prompt" example:"Once upon a time"`
	// Maximum total length in tokens, prompt included.
	// example: 150
	MaxLength int `json:"max_length" example:"150"`
	// Sampling temperature (higher = more random).
	// example: 0.7
	Temperature float64 `json:"temperature" example:"0.7"`
	// Nucleus sampling probability, in (0, 1].
	// example: 0.9
	TopP float64 `json:"top_p" example:"0.9"`
	// Number of independent completions to sample.
	// example: 1
	NumReturnSequences int `json:"num_return_sequences" example:"1" minimum:"1" maximum:"16"`
}

// DefaultGenerateRequest returns a request with every optional field set to
// its default. Decoding a body into it leaves absent fields at their defaults.
func DefaultGenerateRequest() GenerateRequest {
	return GenerateRequest{
		MaxLength:          DefaultMaxLength,
		Temperature:        DefaultTemperature,
		TopP:               DefaultTopP,
		NumReturnSequences: DefaultNumReturnSequences,
	}
}

// GenerateResponse is the envelope returned by POST /generate. It is always
// sent with HTTP 200; Status tells success from failure.
type GenerateResponse struct {
	// Either "success" or "error".
	// example: success
	Status string `json:"status" example:"success"`
	// Generated texts, one per requested sequence. Present on success.
	Results []string `json:"results,omitempty"`
	// Effective request used for generation, defaults included. Present on success.
	Parameters *GenerateRequest `json:"parameters,omitempty"`
	// Error description. Present on error.
	// example: top_p must be in (0, 1]
	Message string `json:"message,omitempty" example:"top_p must be in (0, 1]"`
	// Error class: invalid_parameter, unavailable or generation. Present on error.
	// example: invalid_parameter
	Kind string `json:"kind,omitempty" example:"invalid_parameter"`
}

// ErrorResponse is a consistent JSON error payload for request-shape errors.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// DeviceInfo describes the compute device the model is bound to.
type DeviceInfo struct {
	// Device kind: cpu, cuda or metal.
	// example: cuda
	Kind string `json:"kind" example:"cuda"`
	// Human-friendly device name.
	// example: NVIDIA GPU
	Name string `json:"name" example:"NVIDIA GPU"`
	// Threads used for CPU-side work.
	// example: 8
	Threads int `json:"threads" example:"8"`
	// Layers offloaded to the accelerator (0 on cpu).
	// example: 999
	GPULayers int `json:"gpu_layers" example:"999"`
}

// InfoResponse is returned by GET /info.
type InfoResponse struct {
	// Absolute path of the loaded model file.
	// example: /srv/models/model.gguf
	ModelPath string `json:"model_path" example:"/srv/models/model.gguf"`
	// Context window size in tokens.
	// example: 2048
	ContextSize int `json:"context_size" example:"2048"`
	// Compute device the model is bound to.
	Device DeviceInfo `json:"device"`
	// Defaults applied to omitted request fields.
	Defaults GenerateRequest `json:"defaults"`
	// Time the model finished loading (unix seconds).
	// example: 1700000000
	LoadedAtUnix int64 `json:"loaded_at_unix" example:"1700000000"`
}
