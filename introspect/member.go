package introspect

import (
	"fmt"
	"reflect"
	"unsafe"

	"reflex/internal/common"
)

// TagName is the struct tag that renames (`reflex:"name"`) or hides (`reflex:"-"`) a field.
const TagName = "reflex"

// MemberDescriptor describes one struct field reachable on a type. It is immutable.
type MemberDescriptor struct {
	Name  string
	Field reflect.StructField
	Type  reflect.Type
	// Index is the field path from the owner, see reflect.Value.FieldByIndex.
	Index []int

	CanRead    bool
	CanWrite   bool
	Visibility Visibility
	Origin     Origin

	owner reflect.Type
}

// Owner is the struct type the member was discovered on.
func (m *MemberDescriptor) Owner() reflect.Type {
	return m.owner
}

func (m *MemberDescriptor) String() string {
	return fmt.Sprintf("%s %s (%s, %s)", m.Name, common.TypeName(m.Type), m.Visibility, m.Origin)
}

// Value reads the member from obj, a struct of the owner type or a pointer to one.
// Unexported members are readable too. A member behind a nil embedded pointer reads as nil.
func (m *MemberDescriptor) Value(obj any) (any, error) {
	v, err := m.Read(reflect.ValueOf(obj))
	if err != nil || !v.IsValid() {
		return nil, err
	}

	return v.Interface(), nil
}

// Read is Value on reflect values. The result is invalid when the member sits
// behind a nil embedded pointer.
func (m *MemberDescriptor) Read(obj reflect.Value) (reflect.Value, error) {
	v, err := m.structValue(obj)
	if err != nil {
		return reflect.Value{}, err
	}

	if !v.CanAddr() {
		// unexported fields are only reachable through an address
		tmp := reflect.New(v.Type()).Elem()
		tmp.Set(v)
		v = tmp
	}

	f, err := v.FieldByIndexErr(m.Index)
	if err != nil {
		return reflect.Value{}, nil
	}

	if !f.CanInterface() {
		f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
	}

	return f, nil
}

// SetValue assigns value to the member of obj, which must be a non-nil pointer to
// a struct of the owner type. No conversion takes place: value must be assignable
// to the member type, nil stores the zero value.
func (m *MemberDescriptor) SetValue(obj any, value any) error {
	var v reflect.Value
	if value == nil {
		v = reflect.Zero(m.Type)
	} else {
		v = reflect.ValueOf(value)
	}

	return m.Write(reflect.ValueOf(obj), v)
}

// Write is SetValue on reflect values.
func (m *MemberDescriptor) Write(obj reflect.Value, value reflect.Value) error {
	if obj.Kind() != reflect.Pointer || obj.IsNil() {
		return fmt.Errorf("%w: writing %s needs a non-nil pointer to %s", common.ErrInvalidArgument, m.Name, common.TypeName(m.owner))
	}

	v, err := m.structValue(obj)
	if err != nil {
		return err
	}

	if !m.CanWrite {
		return fmt.Errorf("%w: %s.%s", common.ErrNotWritable, common.TypeName(m.owner), m.Name)
	}

	if !value.IsValid() {
		value = reflect.Zero(m.Type)
	}

	if !value.Type().AssignableTo(m.Type) {
		return fmt.Errorf("%w: cannot assign %s to %s.%s of type %s", common.ErrTypeMismatch,
			common.TypeName(value.Type()), common.TypeName(m.owner), m.Name, common.TypeName(m.Type))
	}

	f, err := fieldForWrite(v, m.Index)
	if err != nil {
		return fmt.Errorf("%s.%s: %w", common.TypeName(m.owner), m.Name, err)
	}

	f.Set(value)

	return nil
}

// structValue dereferences obj down to a struct of the owner type.
func (m *MemberDescriptor) structValue(obj reflect.Value) (reflect.Value, error) {
	for obj.Kind() == reflect.Pointer || obj.Kind() == reflect.Interface {
		if obj.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s", common.ErrInvalidArgument, common.TypeName(m.owner))
		}
		obj = obj.Elem()
	}

	if !obj.IsValid() || obj.Type() != m.owner {
		return reflect.Value{}, fmt.Errorf("%w: member %s belongs to %s, got %s", common.ErrInvalidArgument,
			m.Name, common.TypeName(m.owner), describe(obj))
	}

	return obj, nil
}

// fieldForWrite walks index allocating nil embedded pointers on the way.
func fieldForWrite(v reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, fmt.Errorf("%w: nil embedded pointer to unexported %s",
						common.ErrNotWritable, common.TypeName(v.Type().Elem()))
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}

	return v, nil
}

func describe(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}

	return common.TypeName(v.Type())
}

func buildMembers(t reflect.Type) []*MemberDescriptor {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var res []*MemberDescriptor
	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous && isStructLike(field.Type) {
			// embedding a struct is inheritance, its fields are promoted
			continue
		}

		name := field.Name
		if tag, ok := field.Tag.Lookup(TagName); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}

		origin := OriginDeclared
		if len(field.Index) > 1 {
			origin = OriginInherited
		}

		res = append(res, &MemberDescriptor{
			Name:       name,
			Field:      field,
			Type:       field.Type,
			Index:      field.Index,
			CanRead:    true,
			CanWrite:   field.IsExported(),
			Visibility: visibilityOf(field.IsExported()),
			Origin:     origin,
			owner:      t,
		})
	}

	return dedupeMembers(t, res)
}

// dedupeMembers keeps one member per name: the shallowest, then the first declared.
// Duplicates only arise from tags, Go itself hides deeper fields of the same name.
func dedupeMembers(t reflect.Type, members []*MemberDescriptor) []*MemberDescriptor {
	winners := map[string]*MemberDescriptor{}
	for _, member := range members {
		if current, ok := winners[member.Name]; !ok || len(member.Index) < len(current.Index) {
			winners[member.Name] = member
		}
	}

	if len(winners) == len(members) {
		return members
	}

	res := make([]*MemberDescriptor, 0, len(winners))
	for _, member := range members {
		if winners[member.Name] != member {
			log.Warningf("%s: member name %q is taken by another field, hiding %s", common.TypeName(t), member.Name, member.Field.Name)
			continue
		}
		res = append(res, member)
	}

	return res
}

func isStructLike(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}
