package recovery

import "fmt"

type Strategy interface {
	OnError(ctx Context, err error, location Location) Action
}

// Location pins a decode failure to a position in the drawing.
type Location struct {
	ByteOffset int64
	Handle     uint32
	Type       uint16
	Component  string
}

func (l Location) String() string {
	return fmt.Sprintf("%s@0x%X type=%d handle=0x%X", l.Component, l.ByteOffset, l.Type, l.Handle)
}

type Action int

const (
	ActionFail Action = iota
	ActionSkip
	ActionFix
	ActionWarn
)

type Context interface{ Done() <-chan struct{} }
