package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/compose"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/wizard"
)

func (s *Server) handleCatalogList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	c := s.deps.Controller
	cats := catalog.Categories
	if raw := request.GetString("category", ""); raw != "" {
		cat, err := catalog.ParseCategory(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		cats = []catalog.Category{cat}
	}

	lang := c.Lang()
	var b strings.Builder
	for i, cat := range cats {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:\n", cat)
		chosen := c.Session().Selection.Get(cat)
		for _, opt := range c.Catalog().Options(cat) {
			marker := " "
			if opt.ID == chosen {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s %s  %s\n", marker, opt.ID, opt.Name.Get(lang))
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleSelectOption(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	c := s.deps.Controller
	if c.Submitted() {
		return mcp.NewToolResultError("booking already submitted"), nil
	}

	cat, err := catalog.ParseCategory(request.GetString("category", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	query := strings.TrimSpace(request.GetString("option", ""))
	if query == "" {
		if err := c.SelectOption(cat, ""); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s cleared", cat)), nil
	}

	opt, ok := c.Catalog().Match(cat, query, c.Lang())
	if !ok {
		var ids []string
		for _, o := range c.Catalog().Options(cat) {
			ids = append(ids, o.ID)
		}
		return mcp.NewToolResultError(fmt.Sprintf("no %s matches %q (options: %s)", cat, query, strings.Join(ids, ", "))), nil
	}
	if err := c.SelectOption(cat, opt.ID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s set to %s (%s)", cat, opt.ID, opt.Name.Get(c.Lang()))), nil
}

func (s *Server) handleSetContact(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	c := s.deps.Controller
	if c.Submitted() {
		return mcp.NewToolResultError("booking already submitted"), nil
	}

	args := request.GetArguments()
	if len(args) == 0 {
		return mcp.NewToolResultError("no fields provided"), nil
	}

	// validate everything before changing anything
	values := make(map[session.Field]string)
	for key, raw := range args {
		field, err := session.ParseField(key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		value, ok := raw.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("%s must be a string", key)), nil
		}
		switch field {
		case session.FieldDate:
			if _, err := session.ParseDate(value); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		case session.FieldEventType:
			if _, err := session.ParseEventType(value); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		values[field] = value
	}

	var updated []string
	for _, field := range session.Fields {
		value, ok := values[field]
		if !ok {
			continue
		}
		if err := c.SetField(field, value); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		updated = append(updated, string(field))
	}
	return mcp.NewToolResultText("updated: " + strings.Join(updated, ", ")), nil
}

func (s *Server) handleNavigate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	c := s.deps.Controller
	if c.Submitted() {
		return mcp.NewToolResultError("booking already submitted"), nil
	}

	switch request.GetString("direction", "") {
	case "next":
		if c.Step() == wizard.StepCount()-1 {
			return mcp.NewToolResultError("already on the last step; use submit"), nil
		}
		if !c.IsCurrentStepValid() {
			return mcp.NewToolResultError(fmt.Sprintf("step %d is incomplete, missing: %s",
				c.Step()+1, strings.Join(c.Missing(c.Step()), ", "))), nil
		}
		c.Advance()
	case "back":
		if c.Step() == 0 {
			return mcp.NewToolResultError("already on the first step"), nil
		}
		c.Retreat()
	default:
		return mcp.NewToolResultError("direction must be next or back"), nil
	}
	return mcp.NewToolResultText(s.stepLine()), nil
}

func (s *Server) handleSetLanguage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	lang, err := locale.ParseLanguage(request.GetString("language", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.deps.Controller.SetLanguage(lang)
	return mcp.NewToolResultText(fmt.Sprintf("language set to %s", lang)), nil
}

func (s *Server) handleSearchLocation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.deps.Lookup == nil {
		return mcp.NewToolResultError("location search is not available"), nil
	}
	if s.deps.Controller.Submitted() {
		return mcp.NewToolResultError("booking already submitted"), nil
	}

	query := strings.TrimSpace(request.GetString("query", ""))
	if len([]rune(query)) < 3 {
		return mcp.NewToolResultError("query must be at least 3 characters"), nil
	}

	places, err := s.deps.Lookup.SearchNow(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(places) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}

	if n := request.GetInt("select", 0); n > 0 {
		if err := s.deps.Lookup.SelectIndex(n - 1); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("select %d: %v", n, err)), nil
		}
		return mcp.NewToolResultText("location set to " + places[n-1].DisplayName), nil
	}

	var b strings.Builder
	for i, p := range places {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.DisplayName)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handlePreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	c := s.deps.Controller
	msg := compose.ComposeSession(c.Session(), c.Catalog())
	if request.GetString("format", "text") == "markdown" {
		msg = compose.Markdown(msg)
	}
	return mcp.NewToolResultText(msg), nil
}

type stepStatus struct {
	Index   int      `json:"index"`
	Title   string   `json:"title"`
	Valid   bool     `json:"valid"`
	Missing []string `json:"missing,omitempty"`
}

type statusReport struct {
	SessionID string            `json:"session_id"`
	Language  locale.Language   `json:"language"`
	Step      int               `json:"step"`
	Submitted bool              `json:"submitted"`
	Steps     []stepStatus      `json:"steps"`
	Selection session.Selection `json:"selection"`
	Contact   map[string]string `json:"contact"`
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	c := s.deps.Controller
	sess := c.Session()
	report := statusReport{
		SessionID: sess.ID,
		Language:  sess.Lang,
		Step:      c.Step(),
		Submitted: c.Submitted(),
		Selection: sess.Selection,
		Contact:   make(map[string]string),
	}
	for _, st := range wizard.Steps() {
		report.Steps = append(report.Steps, stepStatus{
			Index:   st.Index,
			Title:   st.Title.Get(sess.Lang),
			Valid:   c.IsStepValid(st.Index),
			Missing: c.Missing(st.Index),
		})
	}
	for _, f := range session.Fields {
		if v, _ := sess.Contact.Get(f); v != "" {
			report.Contact[string(f)] = v
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding status: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.deps.Journal == nil {
		return mcp.NewToolResultError("journal is disabled"), nil
	}
	entries, err := s.deps.Journal.Entries(ctx, s.deps.Controller.SessionID())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading journal: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no events"), nil
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "#%d %s step=%d %s\n", e.Seq, e.Timestamp.Format("15:04:05"), e.Event.Step, describe(e.Event))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func describe(e wizard.Event) string {
	switch e.Kind {
	case wizard.EventOptionSelected, wizard.EventFocusPreview:
		return fmt.Sprintf("%s %s=%q", e.Kind, e.Category, e.OptionID)
	case wizard.EventFieldChanged:
		return fmt.Sprintf("%s %s=%q", e.Kind, e.Field, e.Value)
	case wizard.EventLanguageChanged:
		return fmt.Sprintf("%s %s", e.Kind, e.Lang)
	}
	if e.Lang != "" {
		return fmt.Sprintf("%s %s", e.Kind, e.Lang)
	}
	return string(e.Kind)
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	c := s.deps.Controller
	msg := compose.ComposeSession(c.Session(), c.Catalog())
	if c.Submitted() {
		return mcp.NewToolResultText("already submitted: " + s.deps.Dispatcher.BuildURL(msg)), nil
	}
	if !c.IsStepValid(wizard.StepContact) {
		return mcp.NewToolResultError("cannot submit yet, missing: " + strings.Join(c.Missing(wizard.StepContact), ", ")), nil
	}

	url := s.deps.Dispatcher.Submit(ctx, c, msg)
	return mcp.NewToolResultText("submitted: " + url), nil
}

func (s *Server) stepLine() string {
	c := s.deps.Controller
	st := c.CurrentStep()
	return fmt.Sprintf("step %d/%d: %s", st.Index+1, wizard.StepCount(), st.Title.Get(c.Lang()))
}
