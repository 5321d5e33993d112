// Package resource accounts for memory held by cached filter results and
// throttles the bytes read when loading segments.
//
// A nil *Controller is valid and imposes no limits, so components can accept
// one optionally.
package resource
