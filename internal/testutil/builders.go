package testutil

import (
	"github.com/junioryono/beans"
)

// DeclarationsBuilder provides a fluent interface for building declaration
// sets. Arg and property methods apply to the most recent Bean.
type DeclarationsBuilder struct {
	decls []beans.Declaration
}

// NewDeclarations creates an empty DeclarationsBuilder.
func NewDeclarations() *DeclarationsBuilder {
	return &DeclarationsBuilder{}
}

// Bean starts a new declaration.
func (b *DeclarationsBuilder) Bean(id, typeName string) *DeclarationsBuilder {
	b.decls = append(b.decls, beans.Declaration{ID: id, Type: typeName})
	return b
}

// Value adds a literal constructor argument.
func (b *DeclarationsBuilder) Value(index int, value string) *DeclarationsBuilder {
	d := b.last()
	d.ConstructorArgs = append(d.ConstructorArgs, beans.ConstructorArg{Index: index, Value: value})
	return b
}

// Ref adds a reference constructor argument.
func (b *DeclarationsBuilder) Ref(index int, id string) *DeclarationsBuilder {
	d := b.last()
	d.ConstructorArgs = append(d.ConstructorArgs, beans.ConstructorArg{Index: index, Ref: id})
	return b
}

// Prop adds a literal property.
func (b *DeclarationsBuilder) Prop(name, value string) *DeclarationsBuilder {
	d := b.last()
	d.Properties = append(d.Properties, beans.Property{Name: name, Value: value})
	return b
}

// PropRef adds a reference property.
func (b *DeclarationsBuilder) PropRef(name, id string) *DeclarationsBuilder {
	d := b.last()
	d.Properties = append(d.Properties, beans.Property{Name: name, Ref: id})
	return b
}

// Build returns the declarations.
func (b *DeclarationsBuilder) Build() []beans.Declaration {
	return b.decls
}

func (b *DeclarationsBuilder) last() *beans.Declaration {
	if len(b.decls) == 0 {
		panic("testutil: Bean must be called before adding arguments")
	}
	return &b.decls[len(b.decls)-1]
}
