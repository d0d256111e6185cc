// Package web exposes the evaluator to the rendering layer as a JSON API:
// sheet listing, evaluated grids, single-cell resolution, and override
// edits. Every grid or cell request builds a fresh evaluation session from
// the current override snapshot.
package web

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/benchwise/sheetcalc/pkg/eval"
	"github.com/benchwise/sheetcalc/pkg/ref"
	"github.com/benchwise/sheetcalc/pkg/sheet"
	"github.com/benchwise/sheetcalc/pkg/store"
	"github.com/benchwise/sheetcalc/pkg/types"
)

// Server is the HTTP server for the sheet API.
type Server struct {
	app   *fiber.App
	model *sheet.Model
	store *store.Store
}

// New creates a new API server over a loaded model.
func New(model *sheet.Model, st *store.Store) *Server {
	srv := &Server{model: model, store: st}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})
	app.Use(logger.New())

	app.Get("/api/sheets", srv.listSheets)
	app.Get("/api/sheets/:name", srv.getSheet)
	app.Get("/api/sheets/:name/cells/:cell", srv.getCell)
	app.Put("/api/sheets/:name/cells/:cell", srv.setOverride)
	app.Delete("/api/sheets/:name/cells/:cell", srv.deleteOverride)
	app.Delete("/api/sheets/:name/overrides", srv.clearOverrides)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

// --- Handlers ---

func (s *Server) listSheets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"source": s.model.Source,
		"sheets": s.model.SheetNames(),
	})
}

type cellView struct {
	Ref   string `json:"ref"`
	Value string `json:"value"`
}

type rowView struct {
	Row   int        `json:"row"`
	Cells []cellView `json:"cells"`
}

type inputView struct {
	Label string `json:"label"`
	Cell  string `json:"cell"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (s *Server) getSheet(c *fiber.Ctx) error {
	sh, ok := s.model.Sheet(c.Params("name"))
	if !ok {
		return notFound(c, fmt.Sprintf("sheet '%s' not found", c.Params("name")))
	}

	// One session serves the whole grid so shared sub-formulas compute once.
	ev := eval.New(sh, s.model.Formula, s.store.Snapshot(sh.Name))

	inputs := make([]inputView, len(sh.Inputs))
	for i, in := range sh.Inputs {
		v, err := ev.EvaluateCell(in.Cell)
		if err != nil {
			v = types.Blank
		}
		inputs[i] = inputView{Label: in.Label, Cell: in.Cell, Type: in.Type, Value: types.Display(v)}
	}

	rows := make([]rowView, 0, sh.Table.EndRow-sh.Table.StartRow+1)
	for row := sh.Table.StartRow; row <= sh.Table.EndRow; row++ {
		cells := make([]cellView, len(sh.Table.Columns))
		for i, col := range sh.Table.Columns {
			addr := col + strconv.Itoa(row)
			v, err := ev.EvaluateCell(addr)
			if err != nil {
				v = types.Blank
			}
			cells[i] = cellView{Ref: addr, Value: types.Display(v)}
		}
		rows = append(rows, rowView{Row: row, Cells: cells})
	}

	return c.JSON(fiber.Map{
		"name":   sh.Name,
		"inputs": inputs,
		"table":  sh.Table,
		"rows":   rows,
	})
}

func (s *Server) getCell(c *fiber.Ctx) error {
	sh, ok := s.model.Sheet(c.Params("name"))
	if !ok {
		return notFound(c, fmt.Sprintf("sheet '%s' not found", c.Params("name")))
	}

	ev := eval.New(sh, s.model.Formula, s.store.Snapshot(sh.Name))
	res, err := ev.ResolveCell(c.Params("cell"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{
		"ref":   mustNormalize(c.Params("cell")),
		"value": types.Display(res.Value),
		"type":  res.Value.Type().String(),
		"soft":  res.Soft.String(),
	})
}

type overrideRequest struct {
	Value interface{} `json:"value"`
}

func (s *Server) setOverride(c *fiber.Ctx) error {
	sh, ok := s.model.Sheet(c.Params("name"))
	if !ok {
		return notFound(c, fmt.Sprintf("sheet '%s' not found", c.Params("name")))
	}

	var req overrideRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, fmt.Sprintf("invalid request body: %v", err))
	}

	// Overrides carry raw values only; numeric-like text lands as a number,
	// exactly like a document raw value would.
	if err := s.store.Set(sh.Name, c.Params("cell"), types.FromRaw(req.Value)); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(fiber.Map{"ok": true, "overrides": s.store.Len(sh.Name)})
}

func (s *Server) deleteOverride(c *fiber.Ctx) error {
	sh, ok := s.model.Sheet(c.Params("name"))
	if !ok {
		return notFound(c, fmt.Sprintf("sheet '%s' not found", c.Params("name")))
	}
	if err := s.store.Delete(sh.Name, c.Params("cell")); err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(fiber.Map{"ok": true, "overrides": s.store.Len(sh.Name)})
}

func (s *Server) clearOverrides(c *fiber.Ctx) error {
	sh, ok := s.model.Sheet(c.Params("name"))
	if !ok {
		return notFound(c, fmt.Sprintf("sheet '%s' not found", c.Params("name")))
	}
	s.store.Clear(sh.Name)
	return c.JSON(fiber.Map{"ok": true, "overrides": 0})
}

// --- Helpers ---

func mustNormalize(r string) string {
	norm, err := ref.Normalize(r)
	if err != nil {
		return r
	}
	return norm
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(404).JSON(fiber.Map{
		"error": fiber.Map{"code": 404, "message": msg},
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(400).JSON(fiber.Map{
		"error": fiber.Map{"code": 400, "message": msg},
	})
}
