package mapper

import (
	"fmt"
	"reflect"

	"github.com/tliron/commonlog"

	"reflex/convert"
	"reflex/internal/common"
	"reflex/internal/diagnostic"
	"reflex/internal/match"
	"reflex/introspect"
	"reflex/kv"
)

var (
	ErrInvalidArgument = common.ErrInvalidArgument
	ErrUnknownMember   = common.ErrUnknownMember
	ErrUnknownKey      = common.ErrUnknownKey
	ErrTypeMismatch    = common.ErrTypeMismatch
	ErrNotWritable     = common.ErrNotWritable
)

var log = commonlog.GetLogger("reflex.mapper")

// Mapper copies values using a converter for the members that need one.
type Mapper struct {
	conv *convert.Converter
}

// New returns a mapper converting with conv, nil selects the default converter.
func New(conv *convert.Converter) *Mapper {
	return &Mapper{conv: conv}
}

func (m *Mapper) converter() *convert.Converter {
	if m.conv == nil {
		return convert.Default()
	}

	return m.conv
}

// CopyMembers copies every public member declared on src into the member of
// the same name on target. Values are assigned when their types allow it and
// converted permissively otherwise. Members without a counterpart, and pairs
// of types that cannot be bridged, are skipped.
func (m *Mapper) CopyMembers(src any, target any) error {
	srcType, err := introspect.TypeOf(src)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}

	dst, err := targetOf(target)
	if err != nil {
		return err
	}

	targets := membersByName(dst.Type().Elem(), introspect.Default)
	srcValue := reflect.ValueOf(src)

	for _, source := range introspect.TypeMembers(srcType, introspect.Default) {
		member, ok := targets[source.Name]
		if !ok || !member.CanWrite {
			log.Debugf("skipping %s: no writable counterpart on %s", source.Name, common.TypeName(dst.Type().Elem()))
			continue
		}

		v, err := source.Read(srcValue)
		if err != nil {
			return err
		}

		switch compat := match.ScoreTypeCompatibility(source.Type, member.Type); compat.Compatibility {
		case match.TypeIncompatible:
			log.Debugf("skipping %s: %s", source.Name, compat.Reason)
			continue
		case match.TypeConvertible, match.TypeNeedsTransform:
			v = m.converter().Coerce(v, member.Type)
		}

		if err = member.Write(dst, v); err != nil {
			return err
		}
	}

	return nil
}

// CopyFromMapping assigns every value of mapping to the target member named by
// its key, without conversion. Only public members declared on the target type
// resolve, so promoted members count as missing. Keys are applied in sorted
// order and the first failure stops the copy: ErrUnknownMember for a key with
// no member, ErrTypeMismatch for a value of the wrong type.
func (m *Mapper) CopyFromMapping(mapping kv.Mapping, target any) error {
	if mapping == nil {
		return fmt.Errorf("%w: nil mapping", ErrInvalidArgument)
	}

	dst, err := targetOf(target)
	if err != nil {
		return err
	}

	members := membersByName(dst.Type().Elem(), introspect.Default)
	for _, key := range mapping.Keys() {
		member, ok := members[key]
		if !ok {
			return fmt.Errorf("%w: %s has no member %q", ErrUnknownMember, common.TypeName(dst.Type().Elem()), key)
		}

		if err = member.SetValue(target, mapping[key]); err != nil {
			return err
		}
	}

	return nil
}

// CopyFromStringMapping converts every value of mapping to the type of the
// target member named by its key, resolved as in CopyFromMapping. An unknown
// key fails with ErrUnknownKey before anything is written. Absent values store
// the zero value, and values that do not convert fall back to the zero value.
func (m *Mapper) CopyFromStringMapping(mapping kv.Strings, target any) error {
	if mapping == nil {
		return fmt.Errorf("%w: nil mapping", ErrInvalidArgument)
	}

	dst, err := targetOf(target)
	if err != nil {
		return err
	}

	members := membersByName(dst.Type().Elem(), introspect.Default)
	keys := mapping.Keys()

	for _, key := range keys {
		if _, ok := members[key]; !ok {
			return unknownKey(dst.Type().Elem(), key, members)
		}
	}

	for _, key := range keys {
		member := members[key]

		var v reflect.Value
		if text := mapping[key]; text != nil {
			v = m.converter().Coerce(reflect.ValueOf(*text), member.Type)
		}

		if err = member.Write(dst, v); err != nil {
			return err
		}
	}

	return nil
}

// CopyFromStringCollection flattens collection, the last value of a key wins,
// and copies the result with CopyFromStringMapping.
func (m *Mapper) CopyFromStringCollection(collection *kv.Collection, target any) error {
	if collection == nil {
		return fmt.Errorf("%w: nil collection", ErrInvalidArgument)
	}

	return m.CopyFromStringMapping(collection.Flatten(), target)
}

func unknownKey(t reflect.Type, key string, members map[string]*introspect.MemberDescriptor) error {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}

	if suggestion, ok := match.Suggest(key, names); ok {
		return fmt.Errorf("%w: %s has no member %q, did you mean %q?", ErrUnknownKey, common.TypeName(t), key, suggestion)
	}

	return fmt.Errorf("%w: %s has no member %q", ErrUnknownKey, common.TypeName(t), key)
}

// targetOf checks that target is a non-nil pointer to a struct.
func targetOf(target any) (reflect.Value, error) {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: target must be a non-nil pointer to a struct, got %T", ErrInvalidArgument, target)
	}

	return v, nil
}

func membersByName(t reflect.Type, f introspect.Filter) map[string]*introspect.MemberDescriptor {
	members := introspect.TypeMembers(t, f)

	res := make(map[string]*introspect.MemberDescriptor, len(members))
	for _, member := range members {
		res[member.Name] = member
	}

	return res
}

var std = New(nil)

func CopyMembers(src any, target any) error {
	return std.CopyMembers(src, target)
}

func CopyFromMapping(mapping kv.Mapping, target any) error {
	return std.CopyFromMapping(mapping, target)
}

func CopyFromStringMapping(mapping kv.Strings, target any) error {
	return std.CopyFromStringMapping(mapping, target)
}

func CopyFromStringCollection(collection *kv.Collection, target any) error {
	return std.CopyFromStringCollection(collection, target)
}

func Explain(src any, target any) (diagnostic.Diagnostics, error) {
	return std.Explain(src, target)
}
