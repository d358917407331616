package main

import (
	"fmt"
	"time"

	"github.com/junioryono/beans"
)

// DataSource is connection settings shared by repositories.
type DataSource struct {
	URL      string
	PoolSize int
	Timeout  time.Duration
}

func (d *DataSource) SetUrl(url string)          { d.URL = url }
func (d *DataSource) SetPoolSize(n int)          { d.PoolSize = n }
func (d *DataSource) SetTimeoutSeconds(s uint16) { d.Timeout = time.Duration(s) * time.Second }

type UserRepository struct {
	Source *DataSource
	Table  string
}

func NewUserRepository(source *DataSource) *UserRepository {
	return &UserRepository{Source: source, Table: "users"}
}

func NewUserRepositoryWithTable(source *DataSource, table string) *UserRepository {
	return &UserRepository{Source: source, Table: table}
}

type UserService struct {
	Repository *UserRepository
	Retries    int
	Greeting   string
}

func NewUserService(repo *UserRepository, retries int) (*UserService, error) {
	if retries < 0 {
		return nil, fmt.Errorf("retries must not be negative, got %d", retries)
	}
	return &UserService{Repository: repo, Retries: retries}, nil
}

func (s *UserService) SetGreeting(g string) { s.Greeting = g }

// registerTypes lists every type a document may name.
func registerTypes() *beans.TypeRegistry {
	return beans.NewTypeRegistry().MustRegister(
		beans.Describe[DataSource]("demo.DataSource",
			beans.WithSetter(
				beans.SetterFunc("SetUrl", (*DataSource).SetUrl),
				beans.SetterFunc("SetPoolSize", (*DataSource).SetPoolSize),
				beans.SetterFunc("SetTimeoutSeconds", (*DataSource).SetTimeoutSeconds),
			)),
		beans.Describe[UserRepository]("demo.UserRepository",
			beans.WithConstructor(
				beans.Constructor1(NewUserRepository),
				beans.Constructor2(NewUserRepositoryWithTable),
			)),
		beans.Describe[UserService]("demo.UserService",
			beans.WithConstructor(beans.FallibleConstructor2(NewUserService)),
			beans.WithSetter(beans.SetterFunc("SetGreeting", (*UserService).SetGreeting))),
	)
}
