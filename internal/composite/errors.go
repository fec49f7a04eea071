package composite

import (
	"errors"
	"fmt"
)

var (
	ErrNoConstructor = errors.New("no usable constructor")
	ErrNilUnit       = errors.New("constructor returned nil unit")
	ErrNotReady      = errors.New("player is not ready")
	ErrNilActor      = errors.New("nil actor")
)

// ResolutionError reports that no unit type is registered for an index.
type ResolutionError struct {
	Index int
	Name  string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve segment %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ConstructionError reports that a resolved unit type failed to build.
type ConstructionError struct {
	Index int
	Name  string
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct segment %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// PlaybackError reports the unit whose Play call stopped a pass.
type PlaybackError struct {
	Index int
	Name  string
	Err   error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("play segment %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }
