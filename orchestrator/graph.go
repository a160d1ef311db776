// ABOUTME: This file implements a dependency-ordered task graph executor
// ABOUTME: Nodes run as soon as their declared predecessors finish; the first failure cancels the graph

package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Node is one named step of a sync graph. Run executes once every
// dependency has completed successfully.
type Node struct {
	Name string
	Deps []string
	Run  func(ctx context.Context) error
}

// Graph is a set of nodes with explicit data dependencies, executed by a
// bounded pool of workers. Adding nodes after Run has started is not
// supported.
type Graph struct {
	nodes       []Node
	byName      map[string]int
	concurrency int64
	logger      *slog.Logger
}

// New creates an empty graph.
func New(logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.Default()
	}
	return &Graph{
		byName:      make(map[string]int),
		concurrency: 4,
		logger:      logger,
	}
}

// SetConcurrency bounds how many nodes may run at once.
func (g *Graph) SetConcurrency(n int) {
	if n > 0 {
		g.concurrency = int64(n)
	}
}

// Add registers a node. Duplicate names are rejected; dependencies are
// validated at Run time so nodes may be added in any order.
func (g *Graph) Add(name string, deps []string, run func(ctx context.Context) error) error {
	if name == "" {
		return fmt.Errorf("graph node needs a name")
	}
	if _, exists := g.byName[name]; exists {
		return fmt.Errorf("graph node %q already registered", name)
	}
	g.byName[name] = len(g.nodes)
	g.nodes = append(g.nodes, Node{Name: name, Deps: deps, Run: run})
	return nil
}

// Run executes the graph. Every node waits for its dependencies, then runs
// under the worker bound. The first node error cancels the remaining graph;
// nodes still waiting on dependencies return without running. Run returns
// that first error.
func (g *Graph) Run(ctx context.Context) error {
	if err := g.validate(); err != nil {
		return err
	}

	done := make(map[string]chan struct{}, len(g.nodes))
	for _, n := range g.nodes {
		done[n.Name] = make(chan struct{})
	}

	workers := semaphore.NewWeighted(g.concurrency)
	eg, ctx := errgroup.WithContext(ctx)

	for i := range g.nodes {
		node := g.nodes[i]
		eg.Go(func() error {
			for _, dep := range node.Deps {
				select {
				case <-done[dep]:
				case <-ctx.Done():
					return ctx.Err()
				}
			}

			if err := workers.Acquire(ctx, 1); err != nil {
				return err
			}
			defer workers.Release(1)

			g.logger.Debug("running sync step", "step", node.Name)
			if err := node.Run(ctx); err != nil {
				g.logger.Error("sync step failed", "step", node.Name, "error", err)
				return fmt.Errorf("step %s: %w", node.Name, err)
			}

			close(done[node.Name])
			return nil
		})
	}

	return eg.Wait()
}

// validate checks that dependencies exist and the graph has no cycles.
func (g *Graph) validate() error {
	indegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))

	for _, n := range g.nodes {
		indegree[n.Name] += 0
		for _, dep := range n.Deps {
			if _, ok := g.byName[dep]; !ok {
				return fmt.Errorf("step %s depends on unknown step %s", n.Name, dep)
			}
			indegree[n.Name]++
			dependents[dep] = append(dependents[dep], n.Name)
		}
	}

	var ready []string
	for name, degree := range indegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}

	visited := 0
	for len(ready) > 0 {
		name := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		visited++
		for _, dependent := range dependents[name] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}
	if visited != len(g.nodes) {
		return fmt.Errorf("sync graph has a dependency cycle")
	}
	return nil
}
