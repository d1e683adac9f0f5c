package introspect

import (
	"fmt"
	"reflect"

	"github.com/tliron/commonlog"

	"reflex/internal/common"
)

var log = commonlog.GetLogger("reflex.introspect")

var (
	ErrInvalidArgument = common.ErrInvalidArgument
	ErrUnknownMember   = common.ErrUnknownMember
	ErrNotWritable     = common.ErrNotWritable
	ErrTypeMismatch    = common.ErrTypeMismatch
)

// TypeOf returns the runtime type behind obj with pointers removed.
// A nil obj, or a nil pointer, is an invalid argument.
func TypeOf(obj any) (reflect.Type, error) {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			break
		}
		v = v.Elem()
	}

	if !v.IsValid() || v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%w: object is nil", ErrInvalidArgument)
	}

	return v.Type(), nil
}

// Member resolves a public member of obj by name, of any origin.
// It returns nil without an error when there is no such member.
func Member(obj any, name string) (*MemberDescriptor, error) {
	return MemberWith(obj, name, Lookup)
}

// MemberWith resolves a member of obj by name among those admitted by f.
func MemberWith(obj any, name string, f Filter) (*MemberDescriptor, error) {
	t, err := lookupType(obj, name)
	if err != nil {
		return nil, err
	}

	return findMember(t, name, f), nil
}

// MemberValue reads the public member name of obj.
func MemberValue(obj any, name string) (any, error) {
	member, err := Member(obj, name)
	if err != nil {
		return nil, err
	}

	if member == nil {
		t, _ := TypeOf(obj)
		return nil, fmt.Errorf("%w: %s has no member %q", ErrUnknownMember, common.TypeName(t), name)
	}

	return member.Value(obj)
}

// Members lists the public instance members declared on obj's type in declaration order.
func Members(obj any) ([]*MemberDescriptor, error) {
	return MembersWith(obj, Default)
}

// MembersWith lists the members of obj admitted by f. Promoted members follow
// the embedded field they come from.
func MembersWith(obj any, f Filter) ([]*MemberDescriptor, error) {
	t, err := TypeOf(obj)
	if err != nil {
		return nil, err
	}

	return TypeMembers(t, f), nil
}

// TypeMembers is MembersWith for a type. Pointer types are dereferenced.
func TypeMembers(t reflect.Type, f Filter) []*MemberDescriptor {
	var res []*MemberDescriptor
	for _, member := range tableOf(derefType(t)).members {
		if f.admits(member.Visibility, member.Origin, false) {
			res = append(res, member)
		}
	}

	return res
}

// Method resolves a public method of obj by name, instance or static, of any origin.
// It returns nil without an error when there is no such method.
func Method(obj any, name string) (*MethodDescriptor, error) {
	return MethodWith(obj, name, Lookup)
}

// MethodWith resolves a method of obj by name among those admitted by f.
// A method outside of f is not found, even if it exists.
func MethodWith(obj any, name string, f Filter) (*MethodDescriptor, error) {
	t, err := lookupType(obj, name)
	if err != nil {
		return nil, err
	}

	for _, method := range TypeMethods(t, f) {
		if method.Name == name {
			return method, nil
		}
	}

	return nil, nil
}

// Methods lists the public instance methods declared on obj's type ordered by name.
// Accessor methods (get_, set_) are never listed.
func Methods(obj any) ([]*MethodDescriptor, error) {
	return MethodsWith(obj, Default)
}

func MethodsWith(obj any, f Filter) ([]*MethodDescriptor, error) {
	t, err := TypeOf(obj)
	if err != nil {
		return nil, err
	}

	return TypeMethods(t, f), nil
}

// TypeMethods is MethodsWith for a type. Pointer types are dereferenced.
func TypeMethods(t reflect.Type, f Filter) []*MethodDescriptor {
	var res []*MethodDescriptor
	for _, method := range tableOf(derefType(t)).methods {
		if f.admits(method.Visibility, method.Origin, method.Static) {
			res = append(res, method)
		}
	}

	return res
}

func findMember(t reflect.Type, name string, f Filter) *MemberDescriptor {
	for _, member := range TypeMembers(t, f) {
		if member.Name == name {
			return member
		}
	}

	return nil
}

func lookupType(obj any, name string) (reflect.Type, error) {
	t, err := TypeOf(obj)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidArgument)
	}

	return t, nil
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}
