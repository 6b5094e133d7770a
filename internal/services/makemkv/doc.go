// Package makemkv drives makemkvcon to rip a single disc title, translating
// its robot-mode progress output into callbacks.
package makemkv
