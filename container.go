package beans

import (
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/junioryono/beans/internal/graph"
	"github.com/sirupsen/logrus"
)

// Container builds singleton beans from declarations and serves them by id.
//
// A Container is built once. Build runs to completion before any lookup
// sees its result; after a successful build the container is a read-only
// snapshot and lookups are safe from any goroutine.
//
// Example:
//
//	types := beans.NewTypeRegistry().MustRegister(
//	    beans.Describe[Store]("app.Store"),
//	    beans.Describe[Service]("app.Service",
//	        beans.WithConstructor(beans.Constructor1(NewService))),
//	)
//
//	c := beans.NewContainer(types)
//	err := c.Build([]beans.Declaration{
//	    {ID: "store", Type: "app.Store"},
//	    {ID: "service", Type: "app.Service", ConstructorArgs: []beans.ConstructorArg{{Index: 0, Ref: "store"}}},
//	})
//
//	svc, err := beans.Resolve[*Service](c, "service")
type Container struct {
	mu sync.RWMutex

	id     string
	types  *TypeRegistry
	logger logrus.FieldLogger

	built       bool
	definitions []*Definition
	ready       map[string]*Definition
	order       []string
}

// NewContainer creates an unbuilt container resolving type names through types.
func NewContainer(types *TypeRegistry, opts ...Option) *Container {
	c := &Container{
		id:     uuid.NewString(),
		types:  types,
		logger: logrus.StandardLogger(),
		ready:  make(map[string]*Definition),
	}

	for _, opt := range opts {
		if opt != nil {
			opt.apply(c)
		}
	}

	return c
}

// ID returns the container id.
func (c *Container) ID() string {
	return c.id
}

// Build parses every declaration, then constructs beans in passes until no
// further bean can be built.
//
// Any failure aborts the whole build and leaves the container empty, so a
// failed Build may be retried. Declaration problems are reported before any
// bean is constructed. A container that built successfully rejects further
// builds with ErrContainerBuilt.
func (c *Container) Build(decls []Declaration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return ErrContainerBuilt
	}

	log := c.logger.WithField("container", c.id)
	start := time.Now()

	defs, err := c.parse(decls)
	if err != nil {
		log.WithError(err).Error("failed to parse bean declarations")
		return BuildError{Phase: "parse", Cause: err}
	}

	ready, order, err := c.resolve(defs, log)
	if err != nil {
		log.WithError(err).Error("failed to create beans")
		return BuildError{Phase: "resolve", Cause: err}
	}

	c.definitions = defs
	c.ready = ready
	c.order = order
	c.built = true

	log.WithFields(logrus.Fields{
		"beans":    len(order),
		"duration": time.Since(start),
	}).Info("beans created")

	return nil
}

// parse turns declarations into definitions and rejects duplicate ids.
func (c *Container) parse(decls []Declaration) ([]*Definition, error) {
	if c.types == nil {
		return nil, &ConfigError{Cause: ErrTypeRegistryNil}
	}

	defs := make([]*Definition, 0, len(decls))
	seen := make(map[string]bool, len(decls))

	for _, decl := range decls {
		def, err := NewDefinition(decl, c.types)
		if err != nil {
			return nil, err
		}
		if seen[def.ID()] {
			return nil, &ConfigError{BeanID: def.ID(), Cause: ErrDuplicateBeanID}
		}
		seen[def.ID()] = true
		defs = append(defs, def)
	}

	return defs, nil
}

// resolve runs the fixpoint. Each pass builds every definition without
// pending dependencies, then announces the new beans to all definitions
// still pending. It stops when a pass builds nothing.
func (c *Container) resolve(defs []*Definition, log logrus.FieldLogger) (map[string]*Definition, []string, error) {
	pending := slices.Clone(defs)
	ready := make(map[string]*Definition, len(defs))
	order := make([]string, 0, len(defs))

	for pass := 1; ; pass++ {
		var justBuilt []*Definition
		remaining := make([]*Definition, 0, len(pending))

		for _, def := range pending {
			if def.HasPendingDependencies() {
				remaining = append(remaining, def)
				continue
			}

			if _, err := def.Build(); err != nil {
				return nil, nil, err
			}

			log.WithFields(logrus.Fields{
				"bean": def.ID(),
				"type": def.TypeName(),
				"pass": pass,
			}).Debug("bean created")

			justBuilt = append(justBuilt, def)
		}
		pending = remaining

		if len(justBuilt) == 0 {
			break
		}

		for _, built := range justBuilt {
			for _, def := range pending {
				def.OnBeanReady(built.ID(), built.Instance())
			}
			ready[built.ID()] = built
			order = append(order, built.ID())
		}

		log.WithFields(logrus.Fields{
			"pass":    pass,
			"built":   len(justBuilt),
			"pending": len(pending),
		}).Debug("resolution pass finished")
	}

	if len(pending) > 0 {
		return nil, nil, unresolvedError(pending)
	}

	return ready, order, nil
}

// unresolvedError explains a build that stopped with beans left pending.
// Undeclared references and cycles are reported with the same error kind.
func unresolvedError(pending []*Definition) error {
	g := graph.NewDependencyGraph()
	ids := make([]string, 0, len(pending))
	for _, def := range pending {
		ids = append(ids, def.ID())
		g.AddNode(def.ID(), def.TypeName(), def.PendingDependencies())
	}

	err := &UnresolvedDependencyError{
		Unresolved: ids,
		Missing:    g.Missing(),
		Cause:      ErrPendingDependencies,
	}

	var cycle *graph.CircularDependencyError
	if errors.As(g.DetectCycles(), &cycle) {
		err.Cycle = cycle.Path
	}

	return err
}

// Get returns the instance of the bean id. It reports false for ids that
// are not declared and for any id before a successful Build; it never
// constructs anything.
func (c *Container) Get(id string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.ready[id]
	if !ok {
		return nil, false
	}
	return def.Instance(), true
}

// IsBuilt reports whether Build completed successfully.
func (c *Container) IsBuilt() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.built
}

// IDs returns the ids of all ready beans, sorted.
func (c *Container) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := slices.Clone(c.order)
	slices.Sort(ids)
	return ids
}

// Order returns the ids of all ready beans in the order they were built.
func (c *Container) Order() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.order)
}

// Describe returns a summary of the bean id.
func (c *Container) Describe(id string) (BeanInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.ready[id]
	if !ok {
		return BeanInfo{}, false
	}
	return def.Info(), true
}

// Beans returns summaries of all beans in declaration order.
func (c *Container) Beans() []BeanInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]BeanInfo, 0, len(c.definitions))
	for _, def := range c.definitions {
		infos = append(infos, def.Info())
	}
	return infos
}

// WriteDOT writes the bean dependency graph in Graphviz DOT format.
func (c *Container) WriteDOT(w io.Writer) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.built {
		return ErrContainerNotBuilt
	}

	g := graph.NewDependencyGraph()
	for _, def := range c.definitions {
		g.AddNode(def.ID(), def.TypeName(), def.Dependencies())
	}
	return graph.NewVisualizer(g).WriteDOT(w)
}
