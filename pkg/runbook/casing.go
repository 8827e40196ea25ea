package runbook

import "github.com/eshaffer321/runbook-go/internal/casing"

// ToSnake converts a camelCase key to snake_case
func ToSnake(key string) string { return casing.ToSnake(key) }

// ToCamel converts a snake_case key to camelCase
func ToCamel(key string) string { return casing.ToCamel(key) }

// DeepSnake returns a copy of v with every map key in snake_case
func DeepSnake(v interface{}) interface{} { return casing.DeepSnake(v) }

// DeepCamel returns a copy of v with every map key in camelCase
func DeepCamel(v interface{}) interface{} { return casing.DeepCamel(v) }

// ToUpperCamel converts a snake_case key to UpperCamelCase
func ToUpperCamel(key string) string { return casing.ToUpperCamel(key) }
