// Package beans builds a graph of named singleton objects from declarations.
//
// # Overview
//
// A declaration names a bean id, a registered type, positional constructor
// arguments and named properties. Every argument is either a literal string,
// converted to the parameter type, or a reference to another bean by id.
// The container builds every bean exactly once and then serves them by id:
//   - Type names resolve through an explicit TypeRegistry
//   - Constructors and setters are listed in TypeDescriptors up front
//   - Beans may reference beans declared after them
//   - A build either publishes every bean or none
//   - Lookups after a build are safe from any goroutine
//
// # Basic Usage
//
// Register the types documents may name, then build a container:
//
//	types := beans.NewTypeRegistry().MustRegister(
//	    beans.Describe[DataSource]("app.DataSource",
//	        beans.WithSetter(beans.SetterFunc("SetUrl", (*DataSource).SetUrl))),
//	    beans.Describe[Repository]("app.Repository",
//	        beans.WithConstructor(beans.Constructor1(NewRepository))),
//	)
//
//	c := beans.NewContainer(types)
//	err := c.Build([]beans.Declaration{
//	    {ID: "repo", Type: "app.Repository", ConstructorArgs: []beans.ConstructorArg{{Index: 0, Ref: "db"}}},
//	    {ID: "db", Type: "app.DataSource", Properties: []beans.Property{{Name: "url", Value: "db://local"}}},
//	})
//
//	repo, err := beans.Resolve[*Repository](c, "repo")
//
// Declarations are usually read from XML or YAML with the document package.
//
// # Resolution
//
// Build works in passes. Each pass constructs, in declaration order, every
// bean whose references are all ready, then hands the new instances to the
// beans still waiting. Resolution stops when a pass constructs nothing; any
// bean left waiting fails the build with ErrUnresolvedDependency, naming
// undeclared ids and one dependency cycle when there is one.
//
// Constructors are chosen by arity. Candidates with as many parameters as
// the bean has constructor arguments are tried in registration order and
// the first that succeeds wins.
//
// Properties are applied after construction through setters. A setter
// named SetNumber serves the property "number".
//
// # Literals
//
// Literal arguments convert to string, bool, any integer or float kind
// (named types included) and pointers to those. A Char parameter takes a
// single character; a rune parameter takes a number.
//
// # Error Handling
//
// Every build error matches exactly one kind with errors.Is:
//
//	ErrConfigInvalid         malformed declaration, unknown type, bad property
//	ErrUnresolvedDependency  no constructor matched, or references never resolved
//
// The typed errors ConfigError and UnresolvedDependencyError carry the bean
// id and unwrap to a cause such as ErrIndexGap or ErrNoMatchingConstructor:
//
//	if err := c.Build(decls); err != nil {
//	    var ue *beans.UnresolvedDependencyError
//	    if errors.As(err, &ue) {
//	        log.Printf("missing: %v, cycle: %v", ue.Missing, ue.Cycle)
//	    }
//	}
//
// # Integration
//
// ProvideTo registers every bean with a go.uber.org/dig container under its
// id, so dig constructors can take beans as named parameters.
package beans
