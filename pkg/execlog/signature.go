package execlog

// Signature identifies a traced operation by its owning type and method name.
type Signature struct {
	Type   string
	Method string
}

// Sig is shorthand for Signature{Type: typ, Method: method}.
func Sig(typ, method string) Signature {
	return Signature{Type: typ, Method: method}
}

// String renders the condensed form, e.g. "HelloWorldService.sayHello(..)".
func (s Signature) String() string {
	if s.Type == "" {
		return s.Method + "(..)"
	}
	return s.Type + "." + s.Method + "(..)"
}
