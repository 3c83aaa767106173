package scanner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mna/ember/lang/token"
)

// Error is a single error tied to a position in the source.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e Error) Error() string {
	if e.Pos == 0 {
		return e.Msg
	}
	return e.Pos.String() + ": " + e.Msg
}

// ErrorList collects errors encountered while scanning or parsing.
type ErrorList []Error

// Add appends an error at pos with the given message.
func (l *ErrorList) Add(pos token.Pos, msg string) {
	*l = append(*l, Error{Pos: pos, Msg: msg})
}

// Sort orders the list by position.
func (l ErrorList) Sort() {
	sort.Slice(l, func(i, j int) bool { return l[i].Pos < l[j].Pos })
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (and %d more errors)", l[0].Error(), len(l)-1)
	return sb.String()
}
