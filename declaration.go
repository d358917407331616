package beans

// Declaration is one bean as written in a configuration document.
//
// Declarations are plain data; all validation happens when a Container is
// built from them.
type Declaration struct {
	// ID names the bean. It must start with a letter followed by one or
	// more letters or digits.
	ID string `json:"id" yaml:"id"`

	// Type is the name the bean's type was registered under in the TypeRegistry.
	Type string `json:"type" yaml:"type"`

	// ConstructorArgs are matched to constructor parameters by Index.
	ConstructorArgs []ConstructorArg `json:"constructorArgs,omitempty" yaml:"constructorArgs,omitempty"`

	// Properties are applied through setters after construction.
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// ConstructorArg is a positional constructor argument. Exactly one of Value
// and Ref must be set.
type ConstructorArg struct {
	Index int    `json:"index" yaml:"index"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Ref   string `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// Property is a named property assignment. Exactly one of Value and Ref must
// be set.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Ref   string `json:"ref,omitempty" yaml:"ref,omitempty"`
}
