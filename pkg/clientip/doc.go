// Package clientip extracts the client address of an HTTP request.
//
// Proxy headers are checked in order, the first valid address wins:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Addresses are normalised with net/netip; 0.0.0.0 and :: are treated as
// missing. When nothing parses, GetIP returns RemoteAddr unchanged.
//
// The headers are client controlled unless a proxy overwrites them, so only
// rely on the result when the service sits behind one.
package clientip
