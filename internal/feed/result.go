package feed

import "fmt"

// Kind discriminates the variants of a Result.
type Kind int

const (
	KindLoading Kind = iota
	KindSuccess
	KindError
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindFailure:
		return "failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of a feed request. Only the fields of the active Kind
// are meaningful.
type Result struct {
	Kind Kind

	// KindSuccess
	Data Collection

	// KindError: the server answered with a non-OK status.
	Code    int
	Message string

	// KindFailure: transport or decoding failed.
	Cause error
}

// Loading returns the in-flight marker.
func Loading() Result { return Result{Kind: KindLoading} }

// Success wraps decoded feed data.
func Success(data Collection) Result { return Result{Kind: KindSuccess, Data: data} }

// Error reports a non-OK HTTP response.
func Error(code int, message string) Result {
	return Result{Kind: KindError, Code: code, Message: message}
}

// Failure reports a transport or decode failure.
func Failure(cause error) Result { return Result{Kind: KindFailure, Cause: cause} }

// IsSuccess reports whether r carries data.
func (r Result) IsSuccess() bool { return r.Kind == KindSuccess }

// Value returns the data of a successful result.
func (r Result) Value() (Collection, bool) {
	if r.Kind != KindSuccess {
		return Collection{}, false
	}
	return r.Data, true
}

// Map transforms the data of a successful result and passes every other
// variant through unchanged.
func (r Result) Map(fn func(Collection) Collection) Result {
	if r.Kind != KindSuccess || fn == nil {
		return r
	}
	return Success(fn(r.Data))
}

func (r Result) String() string {
	switch r.Kind {
	case KindSuccess:
		return fmt.Sprintf("success (%d sports)", len(r.Data.Sports))
	case KindError:
		return fmt.Sprintf("error %d: %s", r.Code, r.Message)
	case KindFailure:
		return fmt.Sprintf("failure: %v", r.Cause)
	default:
		return r.Kind.String()
	}
}
