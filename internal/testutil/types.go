package testutil

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Common test errors
var (
	ErrTest        = errors.New("test error")
	ErrConstructor = errors.New("constructor error")
	ErrRejected    = errors.New("value rejected")
)

var instanceCounter atomic.Int64

// Plain has only the default construction path.
type Plain struct {
	Serial int64
}

// NewPlain creates a Plain with a process-unique serial.
func NewPlain() *Plain {
	return &Plain{Serial: instanceCounter.Add(1)}
}

// Flag takes one boolean constructor argument.
type Flag struct {
	Enabled bool
}

func NewFlag(enabled bool) *Flag {
	return &Flag{Enabled: enabled}
}

// Widget is configured through setters only.
type Widget struct {
	number int
	text   string
	ratio  float64
	owner  *Plain
}

func (w *Widget) SetNumber(n int)      { w.number = n }
func (w *Widget) SetString(s string)   { w.text = s }
func (w *Widget) SetRatio(r float64)   { w.ratio = r }
func (w *Widget) SetOwner(p *Plain)    { w.owner = p }
func (w *Widget) Number() int          { return w.number }
func (w *Widget) String() string       { return w.text }
func (w *Widget) Ratio() float64       { return w.ratio }
func (w *Widget) Owner() *Plain        { return w.owner }
func (w *Widget) SetLimit(n int) error { return validateLimit(n) }

func validateLimit(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: limit %d", ErrRejected, n)
	}
	return nil
}

// DataSource, UserRepository and UserService form a small layered graph.
type DataSource struct {
	URL      string
	PoolSize int
}

func (d *DataSource) SetUrl(url string) { d.URL = url }
func (d *DataSource) SetPoolSize(n int) { d.PoolSize = n }

type UserRepository struct {
	Source *DataSource
}

func NewUserRepository(source *DataSource) *UserRepository {
	return &UserRepository{Source: source}
}

type UserService struct {
	Repository *UserRepository
	Retries    int
	Greeting   string
}

func NewUserService(repo *UserRepository, retries int) *UserService {
	return &UserService{Repository: repo, Retries: retries}
}

func (s *UserService) SetGreeting(g string) { s.Greeting = g }

// Left and Right can only be built from each other.
type Left struct {
	Right *Right
}

type Right struct {
	Left *Left
}

func NewLeft(r *Right) *Left  { return &Left{Right: r} }
func NewRight(l *Left) *Right { return &Right{Left: l} }

// Link points at another Link, for chains of arbitrary length.
type Link struct {
	Next *Link
}

func (l *Link) SetNext(next *Link) { l.Next = next }

// Overloaded has two one-argument constructors: int first, then string.
type Overloaded struct {
	Via   string
	Value any
}

func NewOverloadedInt(n int) *Overloaded       { return &Overloaded{Via: "int", Value: n} }
func NewOverloadedString(s string) *Overloaded { return &Overloaded{Via: "string", Value: s} }

// Broken has constructors that always fail: one returns an error and one
// panics.
type Broken struct{}

func NewBrokenError(string) (*Broken, error) { return nil, ErrConstructor }
func NewBrokenPanic(string) *Broken          { panic(ErrTest) }

// Ambiguous declares two setters for the same property.
type Ambiguous struct {
	value string
}

func (a *Ambiguous) SetValue(v string) { a.value = v }

// Shape is an interface used to check abstract types are rejected.
type Shape interface {
	Area() float64
}
