// Package httpapi exposes Jarvis over HTTP for the web frontend.
//
// The surface is demo-grade and single-user: one conversation per
// process, no sessions, and a pass-through Google integration. The
// handlers translate between the JSON wire shapes the frontend expects
// and the driving ports.
package httpapi
