// Package summarize implements the article summarization use case: a two-pass
// chunk-and-recombine reduction over an injected Summarizer, and the pipeline that
// fetches an article, checks it carries enough text, and reduces it to one summary.
package summarize

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure kinds surfaced to presentations.
type ErrorKind int

const (
	// KindFetch: the article could not be retrieved or had no extractable text.
	KindFetch ErrorKind = iota + 1
	// KindInsufficientContent: the article text is shorter than the minimum usable length.
	KindInsufficientContent
	// KindModel: the summarization backend failed.
	KindModel
)

// Sentinel errors, one per kind. errors.Is(err, ErrFetch) holds for any *Error of KindFetch.
var (
	ErrFetch               = errors.New("fetch article")
	ErrInsufficientContent = errors.New("insufficient content")
	ErrModel               = errors.New("summarize text")
)

func (k ErrorKind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindInsufficientContent:
		return "insufficient_content"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindFetch:
		return ErrFetch
	case KindInsufficientContent:
		return ErrInsufficientContent
	case KindModel:
		return ErrModel
	default:
		return nil
	}
}

// Error is a classified pipeline failure. Err is the underlying cause.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	prefix := "summarize: unknown error"
	if s := e.Kind.sentinel(); s != nil {
		prefix = s.Error()
	}
	if e.Err == nil {
		return prefix
	}
	return prefix + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain, or 0 when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// NewFetchError classifies err as a fetch failure.
func NewFetchError(err error) error { return classify(KindFetch, err) }

// NewModelError classifies err as a summarization backend failure.
func NewModelError(err error) error { return classify(KindModel, err) }

// InsufficientContentMessage is shown to users in place of an InsufficientContentError.
const InsufficientContentMessage = "Couldn't extract enough content from the URL. Try another link."

// NewInsufficientContentError reports text of got characters against a minimum length.
func NewInsufficientContentError(got, minimum int) error {
	return &Error{
		Kind: KindInsufficientContent,
		Err:  fmt.Errorf("article has %d characters, need at least %d", got, minimum),
	}
}

// classify wraps err unless it already carries the same kind.
func classify(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) == kind {
		return err
	}
	return &Error{Kind: kind, Err: err}
}
