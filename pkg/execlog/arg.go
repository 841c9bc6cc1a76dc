package execlog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Arg is one argument of a traced call: a type name plus a renderer for its value.
// Rendering is deferred until the start line is written.
type Arg struct {
	TypeName string
	render   func() string
}

// NewArg pairs a type name with a renderer.
func NewArg(typeName string, render func() string) Arg {
	return Arg{TypeName: typeName, render: render}
}

const nullValue = "null"

// Value renders the argument. An Arg without a renderer renders as "null".
func (a Arg) Value() string {
	if a.render == nil {
		return nullValue
	}
	return a.render()
}

func (a Arg) String() string {
	return a.TypeName + "(" + a.Value() + ")"
}

func Int(v int) Arg {
	return NewArg("Int", func() string { return strconv.Itoa(v) })
}

func Int64(v int64) Arg {
	return NewArg("Int64", func() string { return strconv.FormatInt(v, 10) })
}

func Float64(v float64) Arg {
	return NewArg("Float64", func() string { return strconv.FormatFloat(v, 'g', -1, 64) })
}

func Bool(v bool) Arg {
	return NewArg("Bool", func() string { return strconv.FormatBool(v) })
}

func String(v string) Arg {
	return NewArg("String", func() string { return v })
}

func Duration(v time.Duration) Arg {
	return NewArg("Duration", v.String)
}

// Stringer renders v through its String method under the given type name.
func Stringer(typeName string, v fmt.Stringer) Arg {
	if isNil(v) {
		return NewArg(typeName, nil)
	}
	return NewArg(typeName, v.String)
}

// Value renders v with fmt under an explicit type name.
func Value(typeName string, v any) Arg {
	return NewArg(typeName, func() string { return renderValue(v) })
}

// renderValue formats v with fmt; nil, including typed nil pointers, maps and slices, renders as "null".
func renderValue(v any) string {
	if isNil(v) {
		return nullValue
	}
	return fmt.Sprint(v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Param is a rendered argument as stored in a Record.
type Param struct {
	TypeName string
	Value    string
}

func (p Param) String() string {
	return p.TypeName + "(" + p.Value + ")"
}

func renderParams(args []Arg) []Param {
	params := make([]Param, len(args))
	for i, a := range args {
		params[i] = Param{TypeName: a.TypeName, Value: a.Value()}
	}
	return params
}

// FormatParams builds the "parameters: [T(v), ...]" summary.
func FormatParams(params []Param) string {
	var b strings.Builder
	b.WriteString("parameters: [")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString("]")
	return b.String()
}
