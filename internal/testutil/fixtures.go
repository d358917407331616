package testutil

import (
	"reflect"

	"github.com/junioryono/beans"
)

// Type names registered by Types.
const (
	PlainType          = "test.Plain"
	FlagType           = "test.Flag"
	WidgetType         = "test.Widget"
	DataSourceType     = "demo.DataSource"
	UserRepositoryType = "demo.UserRepository"
	UserServiceType    = "demo.UserService"
	LeftType           = "test.Left"
	RightType          = "test.Right"
	LinkType           = "test.Link"
	OverloadedType     = "test.Overloaded"
	BrokenType         = "test.Broken"
	AmbiguousType      = "test.Ambiguous"
	AbstractType       = "test.Abstract"
	ShapeType          = "test.Shape"
)

// Descriptors returns descriptors for every fixture type.
func Descriptors() []*beans.TypeDescriptor {
	return []*beans.TypeDescriptor{
		beans.Describe[Plain](PlainType,
			beans.WithDefault(func() any { return NewPlain() })),

		beans.Describe[Flag](FlagType,
			beans.WithConstructor(beans.Constructor1(NewFlag))),

		beans.Describe[Widget](WidgetType,
			beans.WithSetter(
				beans.SetterFunc("SetNumber", (*Widget).SetNumber),
				beans.SetterFunc("SetString", (*Widget).SetString),
				beans.SetterFunc("SetRatio", (*Widget).SetRatio),
				beans.SetterFunc("SetOwner", (*Widget).SetOwner),
				beans.FallibleSetterFunc("SetLimit", (*Widget).SetLimit),
			)),

		beans.Describe[DataSource](DataSourceType,
			beans.WithSetter(
				beans.SetterFunc("SetUrl", (*DataSource).SetUrl),
				beans.SetterFunc("SetPoolSize", (*DataSource).SetPoolSize),
			)),

		beans.Describe[UserRepository](UserRepositoryType,
			beans.WithConstructor(beans.Constructor1(NewUserRepository))),

		beans.Describe[UserService](UserServiceType,
			beans.WithConstructor(beans.Constructor2(NewUserService)),
			beans.WithSetter(beans.SetterFunc("SetGreeting", (*UserService).SetGreeting))),

		beans.Describe[Left](LeftType,
			beans.WithConstructor(beans.Constructor1(NewLeft))),

		beans.Describe[Right](RightType,
			beans.WithConstructor(beans.Constructor1(NewRight))),

		beans.Describe[Link](LinkType,
			beans.WithSetter(beans.SetterFunc("SetNext", (*Link).SetNext))),

		beans.Describe[Overloaded](OverloadedType,
			beans.WithConstructor(
				beans.Constructor1(NewOverloadedInt),
				beans.Constructor1(NewOverloadedString),
			)),

		beans.Describe[Broken](BrokenType,
			beans.WithConstructor(
				beans.FallibleConstructor1(NewBrokenError),
				beans.Constructor1(NewBrokenPanic),
			)),

		beans.Describe[Ambiguous](AmbiguousType,
			beans.WithSetter(
				beans.SetterFunc("SetValue", (*Ambiguous).SetValue),
				beans.SetterFunc("Setvalue", (*Ambiguous).SetValue),
			)),

		beans.Describe[Plain](AbstractType, beans.AsAbstract()),

		{
			Name:    ShapeType,
			Type:    reflect.TypeFor[Shape](),
			Default: func() any { return nil },
		},
	}
}

// Types returns a fresh registry holding every fixture type.
func Types() *beans.TypeRegistry {
	return beans.NewTypeRegistry().MustRegister(Descriptors()...)
}

// LayeredDeclarations declares the DataSource, UserRepository and
// UserService chain, with the service first so it has to wait.
func LayeredDeclarations() []beans.Declaration {
	return NewDeclarations().
		Bean("userService", UserServiceType).Ref(0, "userRepository").Value(1, "3").Prop("greeting", "hello").
		Bean("userRepository", UserRepositoryType).Ref(0, "dataSource").
		Bean("dataSource", DataSourceType).Prop("url", "jdbc:demo://localhost/app").Prop("poolSize", "8").
		Build()
}
