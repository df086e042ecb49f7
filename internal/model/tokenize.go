package model

// TokenizerWindow is the largest prompt, in tokens, the llama runtime can
// encode. go-llama.cpp tokenizes into a buffer sized by a default gpt_params
// n_ctx, not by the context the model was loaded with.
const TokenizerWindow = 512

// errPromptTooLong reports a prompt the tokenizer could not fit in its
// buffer. It classifies as an invalid parameter so clients see a request
// error rather than a runtime fault.
func errPromptTooLong(cause error) error {
	return ErrInvalidParams("prompt does not fit the %d-token tokenizer window: %v", TokenizerWindow, cause)
}
