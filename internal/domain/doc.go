// Package domain defines the core business entities and errors for the
// slide content generation service: presentation sessions, the rolling
// slide history they carry, and the validation rules those entities enforce.
package domain
