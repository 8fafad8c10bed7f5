package web

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/table"
)

func (s *Server) health(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func (s *Server) index(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(indexPage)
}

type sheetMeta struct {
	Name    string   `json:"name"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

func workbookMeta(wb *table.Workbook) []sheetMeta {
	out := make([]sheetMeta, len(wb.Tables))
	for i, t := range wb.Tables {
		out[i] = sheetMeta{Name: t.Name, Rows: t.RowCount(), Columns: t.Columns}
	}
	return out
}

// upload replaces the session's tables with the content of the posted
// file. A malformed file is a per-attempt failure: the session keeps
// its previous tables and the user may upload another file.
func (s *Server) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required (form field: file)"})
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		s.log.Error("prepare upload dir", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to prepare storage"})
	}
	savePath := filepath.Join(s.cfg.UploadDir, uuid.NewString()+strings.ToLower(filepath.Ext(file.Filename)))
	if err := c.SaveFile(file, savePath); err != nil {
		s.log.Error("save upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save file"})
	}

	src, err := file.Open()
	if err != nil {
		s.log.Error("open upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}
	defer src.Close()
	wb, err := table.LoadReader(file.Filename, src)
	if err != nil {
		var le *table.LoadError
		if errors.As(err, &le) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": le.Error()})
		}
		s.log.Error("load upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load file"})
	}

	sess := s.sessionFor(c)
	sess.ReplaceData(wb)
	s.log.Info("data replaced",
		zap.String("session", sess.ID),
		zap.String("file", file.Filename),
		zap.Int("tables", len(wb.Tables)),
		zap.Int("rows", wb.TotalRows()),
	)
	return c.JSON(fiber.Map{
		"sheets":  workbookMeta(wb),
		"row_cap": sess.RowCap(),
	})
}

// preview returns up to "rows" rows of one sheet, optionally projected
// to a comma-separated column list.
func (s *Server) preview(c *fiber.Ctx) error {
	sess := s.sessionFor(c)
	wb := sess.Workbook()
	if wb == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no data loaded; upload a file first"})
	}

	t := wb.Tables[0]
	if name := c.Query("sheet"); name != "" {
		found, ok := wb.Lookup(name)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown sheet: " + name})
		}
		t = found
	}
	if cols := c.Query("cols"); cols != "" {
		t = t.Select(strings.Split(cols, ","))
	}
	n := c.QueryInt("rows", 10)
	if n < 0 {
		n = 0
	}
	if n > t.RowCount() {
		n = t.RowCount()
	}
	return c.JSON(fiber.Map{
		"name":    t.Name,
		"columns": t.Columns,
		"rows":    t.Rows[:n],
		"total":   t.RowCount(),
	})
}

type askRequest struct {
	Question string              `json:"question"`
	Rows     int                 `json:"rows"`
	Sheets   []string            `json:"sheets"`
	Cols     map[string][]string `json:"cols"`
}

// ask runs one chat turn. Request failures surface as the assistant
// message for the turn, not as an HTTP error; only a blank question or
// a missing data set is rejected outright.
func (s *Server) ask(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "question is empty"})
	}

	sess := s.sessionFor(c)
	if !sess.HasData() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no data loaded; upload a file first"})
	}
	if req.Rows > 0 {
		sess.SetRowCap(req.Rows)
	}
	sess.SetSelection(req.Sheets, req.Cols)

	entry, err := sess.Ask(c.Context(), req.Question)
	if err != nil {
		// only ErrEmptyQuestion / ErrNoData reach here; both are caller faults
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"answer":     entry,
		"transcript": sess.Transcript(),
	})
}

func (s *Server) transcript(c *fiber.Ctx) error {
	sess := s.sessionFor(c)
	return c.JSON(fiber.Map{"transcript": sess.Transcript()})
}
