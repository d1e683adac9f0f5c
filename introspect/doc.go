// Package introspect discovers the members (struct fields) and methods of a value's
// runtime type and resolves them by name.
//
// Go reflection only sees exported methods, so unexported and type-level
// (static) methods are made discoverable by registering them:
//
//	func init() {
//		introspect.MustRegisterMethod[Bar]("", (*Bar).sayHi)
//		introspect.MustRegisterStatic[Bar]("StaticHello", StaticHello)
//	}
//
// Descriptors are built once per type and cached for the process lifetime.
package introspect
