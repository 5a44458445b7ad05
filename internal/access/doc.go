// Package access resolves exported struct fields to reusable read and write
// accessors.
//
// A Field is resolved once, at configuration time, and then used for every
// mapping call. Reads accept a struct or a pointer to one; writes need an
// addressable struct. Every failure is reported as an *Error carrying the
// operation, the owning type and the field name.
package access
