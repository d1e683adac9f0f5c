// Package synth builds struct types at run time from key/value mappings.
//
// Every key becomes one exported field typed after its value, tagged with the
// original key for the reflex, json and yaml encodings:
//
//	obj, _ := synth.Synthesize(kv.Mapping{"id": 7, "user_name": "ada"})
//	// *struct{ SynthType struct{}; Id int; UserName string }
//	obj.Get("user_name") // "ada"
//
// Types are never reused: each Define call yields a type with its own
// process-unique name, even for identical mappings.
package synth
