// Package file provides file-backed configuration and prompt stores.
//
// Configuration lives in a TOML file under the jarvis config directory
// and prompts are user-editable text files with embedded defaults.
package file
