// Package book is the address-book domain on top of the generic store
// engine: the State and Contact records, the closed Action set, the reducer
// that folds actions into state, and the two middlewares (action logging
// with optional artificial latency, and the asynchronous contact-add flow
// with its fallback policy).
//
// All state evolution is pure: reducers copy slices before mutating and
// never perform I/O. The only I/O in this package lives in the middlewares,
// at the documented pipeline boundary.
package book
