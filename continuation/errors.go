package continuation

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError.
type ErrorKind int

const (
	// KindPole: the function is undefined at the input.
	KindPole ErrorKind = iota + 1
	// KindInvalidInput: the input is NaN or infinite.
	KindInvalidInput
	// KindOverflow: the result cannot be represented.
	KindOverflow
)

var (
	ErrPole         = errors.New("continuation: pole")
	ErrInvalidInput = errors.New("continuation: invalid input")
	ErrOverflow     = errors.New("continuation: result out of range")
)

func (k ErrorKind) String() string {
	switch k {
	case KindPole:
		return "pole"
	case KindInvalidInput:
		return "invalid input"
	case KindOverflow:
		return "overflow"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindPole:
		return ErrPole
	case KindInvalidInput:
		return ErrInvalidInput
	case KindOverflow:
		return ErrOverflow
	default:
		return nil
	}
}

// DomainError reports an input the function cannot evaluate.
// errors.Is matches it against the sentinel of its Kind.
type DomainError struct {
	Kind   ErrorKind
	Input  string
	Reason string
	Err    error
}

func (e *DomainError) Error() string {
	return e.Reason
}

func (e *DomainError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func poleError(input, reason string) error {
	return &DomainError{Kind: KindPole, Input: input, Reason: reason}
}

func invalidInput(input string) error {
	return &DomainError{
		Kind:   KindInvalidInput,
		Input:  input,
		Reason: fmt.Sprintf("input %s is not a finite number", input),
	}
}

func overflowError(input, reason string, cause error) error {
	return &DomainError{Kind: KindOverflow, Input: input, Reason: reason, Err: cause}
}
