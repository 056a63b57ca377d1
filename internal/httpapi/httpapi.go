// Package httpapi exposes the graph store and evaluator over HTTP: CRUD
// for nodes, execute, and preview, built on gofiber/fiber/v3 the way the
// corpus's DAG persistence service exposes its store (see
// server/main.go in the teacher pack's companion DAG repository).
package httpapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/vk/flowgraph/internal/argmap"
	"github.com/vk/flowgraph/internal/engineerr"
	"github.com/vk/flowgraph/internal/executor"
	"github.com/vk/flowgraph/internal/litparse"
	"github.com/vk/flowgraph/internal/livesync"
	"github.com/vk/flowgraph/internal/node"
	"github.com/vk/flowgraph/internal/nodeid"
	"github.com/vk/flowgraph/internal/registry"
	"github.com/vk/flowgraph/internal/scope"
	"github.com/vk/flowgraph/internal/serialize"
	"github.com/vk/flowgraph/internal/store/postgres"
)

// Store is the subset of *postgres.Store the HTTP layer needs. Declared
// locally so the handlers document exactly what they depend on.
type Store interface {
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
	AddNode(ctx context.Context, dagID string, n *node.Node, name string) (nodeid.ID, error)
	UpdateNode(ctx context.Context, n *node.Node) error
	DeleteNode(ctx context.Context, id nodeid.ID) error
	ListNodes(ctx context.Context, dagID string) ([]postgres.Named, error)
	GetNode(ctx context.Context, id nodeid.ID) (*node.Node, error)
	GetNodeName(ctx context.Context, id nodeid.ID) (string, error)
}

// Server wires a graph store and an evaluator to a set of REST routes.
type Server struct {
	store Store
	reg   *registry.Registry
	exec  *executor.Executor
	live  *livesync.Publisher
}

// New builds a Server. live may be nil: preview fan-out becomes a no-op.
func New(store Store, reg *registry.Registry, exec *executor.Executor, live *livesync.Publisher) *Server {
	return &Server{store: store, reg: reg, exec: exec, live: live}
}

// Mount registers every route on app.
func (s *Server) Mount(app *fiber.App) {
	app.Post("/schema", s.createSchema)
	app.Delete("/schema", s.dropSchema)

	app.Post("/dag/:id/nodes", s.addNode)
	app.Get("/dag/:id/nodes", s.listNodes)

	app.Get("/nodes/:id", s.getNode)
	app.Put("/nodes/:id", s.updateNode)
	app.Delete("/nodes/:id", s.deleteNode)

	app.Post("/nodes/:id/execute", s.execute)
	app.Post("/nodes/:id/preview", s.preview)
	app.Get("/nodes/:id/dependents", s.dependents)
}

func (s *Server) createSchema(c fiber.Ctx) error {
	if err := s.store.CreateSchema(c.Context()); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "schema created"})
}

func (s *Server) dropSchema(c fiber.Ctx) error {
	if err := s.store.DropSchema(c.Context()); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "schema dropped"})
}

// wireNode is the JSON body accepted by addNode/updateNode: the union of
// fields needed to reconstruct any of the five node variants, similar in
// spirit to the corpus's dag.Node wire type but widened for this
// engine's richer node taxonomy.
type wireNode struct {
	Name         string            `json:"name"`
	Kind         string            `json:"kind"`
	PosX         float64           `json:"pos_x"`
	PosY         float64           `json:"pos_y"`
	Cursor       int               `json:"cursor"`
	Literal      string            `json:"literal,omitempty"` // value node source text, run through litparse.Parse
	FunctionName string            `json:"function_name,omitempty"`
	Table        string            `json:"table,omitempty"`
	ArgIDs       []string          `json:"arg_ids,omitempty"`
	BlockID      string            `json:"block_id,omitempty"`
	Index        int               `json:"index,omitempty"`
	Args         map[string]string `json:"args,omitempty"` // param -> edge node id
}

func (s *Server) addNode(c fiber.Ctx) error {
	var body wireNode
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}

	n, err := s.nodeFromWire(body)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := s.store.AddNode(c.Context(), c.Params("id"), n, body.Name)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"id": id.String()})
}

func (s *Server) listNodes(c fiber.Ctx) error {
	named, err := s.store.ListNodes(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	out := make([]serialize.Node, 0, len(named))
	for _, nm := range named {
		out = append(out, serialize.Project(nm.Node, nm.Name, serialize.Live{}, constReprFor(nm.Node)))
	}
	return c.JSON(out)
}

func (s *Server) getNode(c fiber.Ctx) error {
	id := nodeid.ID(c.Params("id"))
	n, err := s.store.GetNode(c.Context(), id)
	if err != nil {
		return storeErr(c, err)
	}
	name, err := s.store.GetNodeName(c.Context(), id)
	if err != nil {
		return storeErr(c, err)
	}
	return c.JSON(serialize.Project(n, name, serialize.Live{}, constReprFor(n)))
}

func (s *Server) updateNode(c fiber.Ctx) error {
	var body wireNode
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	n, err := s.nodeFromWire(body)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	n.ID = nodeid.ID(c.Params("id"))

	if err := s.store.UpdateNode(c.Context(), n); err != nil {
		return storeErr(c, err)
	}
	return c.SendStatus(204)
}

func (s *Server) deleteNode(c fiber.Ctx) error {
	if err := s.store.DeleteNode(c.Context(), nodeid.ID(c.Params("id"))); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(204)
}

func (s *Server) execute(c fiber.Ctx) error {
	n, err := s.store.GetNode(c.Context(), nodeid.ID(c.Params("id")))
	if err != nil {
		return storeErr(c, err)
	}
	result, err := s.exec.Execute(c.Context(), n, scope.Empty())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(liveFromDVal(result))
}

type previewRequest struct {
	Cursor int `json:"cursor"`
}

func (s *Server) preview(c fiber.Ctx) error {
	var body previewRequest
	_ = c.Bind().JSON(&body) // cursor defaults to 0 on an empty body

	n, err := s.store.GetNode(c.Context(), nodeid.ID(c.Params("id")))
	if err != nil {
		return storeErr(c, err)
	}
	values, err := s.exec.Preview(c.Context(), n, body.Cursor)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	lives := make([]serialize.Live, len(values))
	anyVals := make([]any, len(values))
	for i, v := range values {
		lives[i] = liveFromDVal(v)
		anyVals[i] = lives[i]
	}
	s.live.Publish(c.Context(), livesync.PreviewUpdate{NodeID: n.ID.String(), Cursor: body.Cursor, Values: anyVals})
	return c.JSON(lives)
}

func (s *Server) dependents(c fiber.Ctx) error {
	n, err := s.store.GetNode(c.Context(), nodeid.ID(c.Params("id")))
	if err != nil {
		return storeErr(c, err)
	}
	deps, err := s.exec.Dependents(c.Context(), n)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = d.String()
	}
	return c.JSON(out)
}

func storeErr(c fiber.Ctx, err error) error {
	if errors.Is(err, engineerr.ErrNodeNotFound) {
		return c.Status(404).JSON(fiber.Map{"error": "node not found"})
	}
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}

// nodeFromWire reconstructs a node.Node from its wire body. Function
// nodes look up their parameter list from the registry by name, then
// bind every entry in body.Args as an edge — this HTTP surface only
// supports edge-valued arguments; a constant argument is modeled as a
// small value node the caller wires in instead, keeping the wire format
// a single shape rather than a union of arg-binding kinds.
func (s *Server) nodeFromWire(body wireNode) (*node.Node, error) {
	n := &node.Node{Position: node.Pos{X: body.PosX, Y: body.PosY}, Cursor: body.Cursor}
	switch body.Kind {
	case "value":
		lit, err := litparse.Parse(body.Literal)
		if err != nil {
			return nil, fmt.Errorf("httpapi: parse literal: %w", err)
		}
		n.Variant = node.ValueVariant{Literal: lit}
	case "datastore":
		n.Variant = node.DatastoreVariant{Table: body.Table}
	case "block":
		n.Variant = node.BlockVariant{ArgIDs: stringsToIDs(body.ArgIDs)}
	case "arg":
		n.Variant = node.ArgVariant{BlockID: nodeid.ID(body.BlockID), Index: body.Index, ArgIDs: stringsToIDs(body.ArgIDs)}
	case "function":
		spec, err := s.reg.Lookup(body.FunctionName)
		if err != nil {
			return nil, fmt.Errorf("httpapi: %w", err)
		}
		fv := node.NewFunctionVariant(spec.Name, spec.Parameters, spec.Pure)
		for name, edgeID := range body.Args {
			if err := fv.Args.Set(name, argmap.Edge(nodeid.ID(edgeID))); err != nil {
				return nil, fmt.Errorf("httpapi: %w", err)
			}
		}
		n.Variant = fv
	default:
		return nil, fmt.Errorf("httpapi: unknown node kind %q", body.Kind)
	}
	return n, nil
}

func stringsToIDs(ss []string) []nodeid.ID {
	out := make([]nodeid.ID, len(ss))
	for i, sID := range ss {
		out[i] = nodeid.ID(sID)
	}
	return out
}
