package model

// Result is the outcome of one Generate call: either Texts (one per
// requested sequence) or Err, never both.
type Result struct {
	Texts  []string
	Params Params
	Err    error
}

// OK reports whether generation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Kind classifies the failure; KindNone on success.
func (r Result) Kind() ErrorKind { return KindOf(r.Err) }

func failed(p Params, err error) Result { return Result{Params: p, Err: err} }
