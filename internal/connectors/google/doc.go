// Package google integrates Google Calendar and Google Tasks.
//
// The connector is a pass-through: Jarvis relays what the remote APIs
// return and applies no retry or consistency policy beyond client-side
// rate limiting. Authentication is a demo-grade single-user OAuth flow;
// tokens live in memory and are lost on restart.
package google
