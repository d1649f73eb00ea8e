package model

// StorageVar is a single field declared inside a contract's #[storage]
// struct.
type StorageVar struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Line int    `json:"line" yaml:"line"`
}

// Event is a type declared under a #[event] annotation, either an enum or
// a struct.
type Event struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"` // "enum" | "struct"
	Line int    `json:"line" yaml:"line"`
}
