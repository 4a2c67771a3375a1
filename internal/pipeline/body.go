package pipeline

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Param describes one formal parameter of a task body. The runner resolves a
// value for every declared parameter before the body is invoked; parameters
// without a default must resolve from fixed inputs or the execution context.
type Param struct {
	Name       string
	Default    any
	HasDefault bool
}

// Required declares a parameter that must be resolvable at bind time.
func Required(name string) Param {
	return Param{Name: name}
}

// Optional declares a parameter with a default used when neither the node's
// fixed inputs nor the execution context provide a value.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Body is the executable part of a task node. Params exposes the body's
// formal parameter names for bind-time introspection; Call receives exactly
// the bound arguments, never undeclared context keys.
type Body interface {
	Params() []Param
	Call(ctx context.Context, args map[string]any) (any, error)
}

// funcBody adapts a plain function with an explicit declared-parameter list.
type funcBody struct {
	params []Param
	fn     func(ctx context.Context, args map[string]any) (any, error)
}

// Func wraps fn as a Body with the given declared parameters. Arguments are
// delivered as a map keyed by parameter name.
func Func(fn func(ctx context.Context, args map[string]any) (any, error), params ...Param) Body {
	if fn == nil {
		panic("pipeline: Func requires a non-nil function")
	}
	return &funcBody{params: params, fn: fn}
}

func (b *funcBody) Params() []Param {
	return b.params
}

func (b *funcBody) Call(ctx context.Context, args map[string]any) (any, error) {
	return b.fn(ctx, args)
}

// boundField records how a declared parameter maps onto the input struct.
type boundField struct {
	index int
	typ   reflect.Type
}

// typedBody adapts a handler with a typed input struct. The prototype
// returned by newInput declares the parameter list through `pipe` struct tags
// and carries default values in its pre-filled fields.
type typedBody struct {
	newInput func() any
	fn       reflect.Value
	params   []Param
	fields   map[string]boundField
}

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Typed builds a Body from a prototype constructor and a handler function.
// newInput must return a pointer to a struct whose fields are tagged
// `pipe:"name"` (append ",optional" to take the prototype's field value as
// the default). fn must have the shape
//
//	func(ctx context.Context, in *T) (any, error)
//
// where *T is the prototype's type. Typed panics on a malformed handler,
// since that is a programmer error caught at registration time.
func Typed(newInput func() any, fn any) Body {
	if newInput == nil {
		panic("pipeline: Typed requires a prototype constructor")
	}
	proto := reflect.ValueOf(newInput())
	if proto.Kind() != reflect.Pointer || proto.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("pipeline: Typed prototype must be a pointer to struct, got %s", proto.Type()))
	}
	inputType := proto.Type()

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func ||
		fnType.NumIn() != 2 || fnType.In(0) != ctxType || fnType.In(1) != inputType ||
		fnType.NumOut() != 2 || fnType.Out(1) != errType {
		panic(fmt.Sprintf("pipeline: Typed handler must be func(context.Context, %s) (any, error), got %s", inputType, fnType))
	}

	b := &typedBody{
		newInput: newInput,
		fn:       fnVal,
		fields:   make(map[string]boundField),
	}

	structType := inputType.Elem()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("pipe")
		parts := strings.Split(tag, ",")
		name := parts[0]
		if name == "" || name == "-" {
			continue
		}
		p := Param{Name: name}
		for _, flag := range parts[1:] {
			if flag == "optional" {
				p.HasDefault = true
				p.Default = proto.Elem().Field(i).Interface()
			}
		}
		b.params = append(b.params, p)
		b.fields[name] = boundField{index: i, typ: field.Type}
	}
	return b
}

func (b *typedBody) Params() []Param {
	return b.params
}

func (b *typedBody) Call(ctx context.Context, args map[string]any) (any, error) {
	in := reflect.ValueOf(b.newInput())
	for name, arg := range args {
		field, ok := b.fields[name]
		if !ok {
			continue
		}
		if arg == nil {
			continue
		}
		target := in.Elem().Field(field.index)
		av := reflect.ValueOf(arg)
		switch {
		case av.Type().AssignableTo(field.typ):
			target.Set(av)
		case av.Type().ConvertibleTo(field.typ):
			target.Set(av.Convert(field.typ))
		default:
			return nil, fmt.Errorf("input %q: cannot use value of type %T as %s", name, arg, field.typ)
		}
	}

	results := b.fn.Call([]reflect.Value{reflect.ValueOf(ctx), in})
	out := results[0].Interface()
	if err := results[1].Interface(); err != nil {
		return nil, err.(error)
	}
	return out, nil
}

// normalizeOutput coerces a body's return value into the output mapping the
// engine merges into the execution context. Maps are used as-is, a struct
// (or pointer to struct) is flattened through its `pipe` field tags, and nil
// means the body produced nothing. Anything else violates the body contract.
func normalizeOutput(v any) (map[string]any, bool) {
	if v == nil {
		return map[string]any{}, true
	}
	if m, ok := v.(map[string]any); ok {
		if m == nil {
			return map[string]any{}, true
		}
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return map[string]any{}, true
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	out := make(map[string]any)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.Split(field.Tag.Get("pipe"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		out[name] = rv.Field(i).Interface()
	}
	return out, true
}
