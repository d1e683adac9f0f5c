package convert

import (
	"encoding"
	"fmt"
	"reflect"

	"reflex/internal/common"
	"reflex/introspect"
	"reflex/primitive"
)

var stringType = reflect.TypeFor[string]()

func (c *Converter) convert(src reflect.Value, dst reflect.Type, dealer *Dealer) (reflect.Value, error) {
	for src.Kind() == reflect.Interface {
		if src.IsNil() {
			return reflect.Zero(dst), nil
		}
		src = src.Elem()
	}

	if !src.IsValid() {
		return reflect.Zero(dst), nil
	}

	if caster, ok := c.casters[[2]reflect.Type{src.Type(), dst}]; ok {
		return caster.call(src)
	}

	if src.Type() == dst {
		return src, nil
	}

	if src.Type().AssignableTo(dst) {
		out := reflect.New(dst).Elem()
		out.Set(src)
		return out, nil
	}

	switch {
	case src.Kind() == reflect.Pointer && dst.Kind() == reflect.Pointer:
		return c.convertPointer(src, dst, dealer)
	case src.Kind() == reflect.Pointer:
		if src.IsNil() {
			return reflect.Zero(dst), nil
		}
		return c.convert(src.Elem(), dst, dealer)
	case dst.Kind() == reflect.Pointer:
		out := reflect.New(dst.Elem())
		inner, err := c.convert(src, dst.Elem(), dealer)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Elem().Set(inner)
		return out, nil
	}

	switch Dispatch(src.Type(), dst) {
	case DispatcherInterface:
		return reflect.Value{}, invalidCast(src.Type(), dst, "does not implement the interface")
	case DispatcherPrimitive:
		return primitive.Cast(src, dst, c.opts)
	case DispatcherText:
		return convertText(src, dst)
	case DispatcherSlice:
		return c.convertSlice(src, dst, dealer)
	case DispatcherMap:
		return c.convertMap(src, dst, dealer)
	case DispatcherStruct:
		return c.convertStruct(src, dst, dealer)
	}

	if isPlainConversion(src.Type(), dst) {
		return src.Convert(dst), nil
	}

	return reflect.Value{}, invalidCast(src.Type(), dst, "no conversion")
}

func (c *Converter) convertPointer(src reflect.Value, dst reflect.Type, dealer *Dealer) (reflect.Value, error) {
	if src.IsNil() {
		return reflect.Zero(dst), nil
	}

	if done, ok := dealer.Lookup(src, dst); ok {
		return done, nil
	}

	out := reflect.New(dst.Elem())
	dealer.Deal(src, out)

	inner, err := c.convert(src.Elem(), dst.Elem(), dealer)
	if err != nil {
		return reflect.Value{}, err
	}
	out.Elem().Set(inner)

	return out, nil
}

func convertText(src reflect.Value, dst reflect.Type) (reflect.Value, error) {
	if dst.Kind() == reflect.String {
		var text string
		switch v := src.Interface().(type) {
		case encoding.TextMarshaler:
			b, err := v.MarshalText()
			if err != nil {
				return reflect.Value{}, fmt.Errorf("%w: %s: %w", ErrInvalidCast, common.TypeName(src.Type()), err)
			}
			text = string(b)
		case fmt.Stringer:
			text = v.String()
		}
		return reflect.ValueOf(text).Convert(dst), nil
	}

	ptr := reflect.New(dst)
	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(src.String())); err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %q is not a valid %s: %w", ErrFormat, src.String(), common.TypeName(dst), err)
	}

	return ptr.Elem(), nil
}

func (c *Converter) convertSlice(src reflect.Value, dst reflect.Type, dealer *Dealer) (reflect.Value, error) {
	n := src.Len()

	var out reflect.Value
	switch dst.Kind() {
	case reflect.Slice:
		if src.Kind() == reflect.Slice && src.IsNil() {
			return reflect.Zero(dst), nil
		}
		out = reflect.MakeSlice(dst, n, n)
	case reflect.Array:
		category := primitive.CategorySafeArray
		if n != dst.Len() {
			category = primitive.CategoryUnsafeArray
		}
		if c.opts.Allowed&category == 0 {
			return reflect.Value{}, invalidCast(src.Type(), dst,
				fmt.Sprintf("%d elements into an array of %d, category %s is not allowed", n, dst.Len(), category))
		}
		out = reflect.New(dst).Elem()
		n = min(n, dst.Len())
	}

	for i := range n {
		elem, err := c.convert(src.Index(i), dst.Elem(), dealer)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(elem)
	}

	return out, nil
}

func (c *Converter) convertMap(src reflect.Value, dst reflect.Type, dealer *Dealer) (reflect.Value, error) {
	if src.IsNil() {
		return reflect.Zero(dst), nil
	}

	out := reflect.MakeMapWithSize(dst, src.Len())
	iter := src.MapRange()
	for iter.Next() {
		key, err := c.convert(iter.Key(), dst.Key(), dealer)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
		}

		elem, err := c.convert(iter.Value(), dst.Elem(), dealer)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("value of %v: %w", iter.Key(), err)
		}

		out.SetMapIndex(key, elem)
	}

	return out, nil
}

// convertStruct copies public members by name. Members missing on either side are left alone.
func (c *Converter) convertStruct(src reflect.Value, dst reflect.Type, dealer *Dealer) (reflect.Value, error) {
	if isPlainConversion(src.Type(), dst) {
		return src.Convert(dst), nil
	}

	sources := make(map[string]*introspect.MemberDescriptor)
	for _, member := range introspect.TypeMembers(src.Type(), introspect.Public|introspect.Instance) {
		sources[member.Name] = member
	}

	ptr := reflect.New(dst)
	for _, target := range introspect.TypeMembers(dst, introspect.Public|introspect.Instance) {
		source, ok := sources[target.Name]
		if !ok || !target.CanWrite {
			continue
		}

		v, err := source.Read(src)
		if err != nil {
			return reflect.Value{}, err
		}

		v, err = c.convert(v, target.Type, dealer)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("member %s: %w", target.Name, err)
		}

		if err = target.Write(ptr, v); err != nil {
			return reflect.Value{}, err
		}
	}

	return ptr.Elem(), nil
}

// isPlainConversion reports reflect conversions that keep the meaning of the value.
// Integer to string is excluded, it would produce a rune.
func isPlainConversion(src, dst reflect.Type) bool {
	if !src.ConvertibleTo(dst) {
		return false
	}

	if dst.Kind() == reflect.String {
		return src.Kind() == reflect.String || src.Kind() == reflect.Slice
	}

	if dst.Kind() == reflect.Array && src.Kind() == reflect.Slice {
		// slice to array conversion panics on short slices
		return false
	}

	return true
}

func invalidCast(src, dst reflect.Type, reason string) error {
	return fmt.Errorf("%w: %s to %s: %s", ErrInvalidCast, common.TypeName(src), common.TypeName(dst), reason)
}
