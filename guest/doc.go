// Package guest hosts frond applications compiled to WebAssembly. Update and
// view run inside the module; the Go side holds an instance handle and moves
// JSON across the boundary.
//
// # ABI
//
// A guest is a core wasm module exporting, under ABI version 0:
//
//	frond_abi() -> i32            ABI version, must be 0
//	frond_alloc(size i32) -> i32  allocator for inbound message bytes
//	frond_init() -> i32           builds the guest model, nonzero = failure
//	frond_update(ptr, len i32) -> i32
//	                              applies a message, returns the directive
//	                              (0 render, 1 force, 2 skip)
//	frond_view() -> i64           pointer (high 32 bits) and length (low 32
//	                              bits) of the JSON tree, valid until the
//	                              next call
//
// plus an exported linear memory. The view tree is JSON:
//
//	{"tag":"div","attrs":{"class":"x"},"on":["click"],"children":[...]}
//	{"text":"plain text"}
//
// Event names listed under "on" become listeners; their events arrive at the
// guest as DOMEvent messages encoded back through frond_update.
//
// Guest misbehavior (traps, bad pointers, undecodable trees) surfaces as
// wrapped errors, never as panics.
package guest
