package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("catalog-list",
			mcp.WithDescription("List the catalog options, optionally for one category"),
			mcp.WithString("category",
				mcp.Description("frame, rope, carpet or mount; omit for all"),
			),
		),
		s.handleCatalogList,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("select-option",
			mcp.WithDescription("Choose an option for a category. Accepts an option id or a name in any language; an empty option clears the choice"),
			mcp.WithString("category", mcp.Required(),
				mcp.Description("frame, rope, carpet or mount"),
			),
			mcp.WithString("option",
				mcp.Description("Option id (e.g. f1) or name (e.g. Royal Gold)"),
			),
		),
		s.handleSelectOption,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set-contact",
			mcp.WithDescription("Fill contact and event fields. Only the fields given are changed"),
			mcp.WithString("name", mcp.Description("Contact name")),
			mcp.WithString("email", mcp.Description("Contact email")),
			mcp.WithString("phone", mcp.Description("Contact phone")),
			mcp.WithString("event_type", mcp.Description("Wedding, Engagement, Birthday, Corporate or Other")),
			mcp.WithString("custom_event_type", mcp.Description("Free text event type, used with Other")),
			mcp.WithString("date", mcp.Description("Event date as YYYY-MM-DD")),
			mcp.WithString("location", mcp.Description("Event location")),
			mcp.WithString("notes", mcp.Description("Anything else")),
		),
		s.handleSetContact,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("navigate",
			mcp.WithDescription("Move the wizard. 'next' is refused while the current step is incomplete"),
			mcp.WithString("direction", mcp.Required(),
				mcp.Description("next or back"),
				mcp.Enum("next", "back"),
			),
		),
		s.handleNavigate,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set-language",
			mcp.WithDescription("Switch the display and message language without losing any input"),
			mcp.WithString("language", mcp.Required(),
				mcp.Description("en, he or ar"),
			),
		),
		s.handleSetLanguage,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("search-location",
			mcp.WithDescription("Search addresses for the event location, optionally choosing one of the results"),
			mcp.WithString("query", mcp.Required(),
				mcp.Description("Free text address, at least 3 characters"),
			),
			mcp.WithNumber("select",
				mcp.Description("1-based result number to write into the location field"),
			),
		),
		s.handleSearchLocation,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("preview",
			mcp.WithDescription("Show the booking message as it will be sent"),
			mcp.WithString("format",
				mcp.Description("text (default) or markdown"),
				mcp.Enum("text", "markdown"),
			),
		),
		s.handlePreview,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Show the wizard position, what each step still needs and the current selection"),
		),
		s.handleStatus,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("history",
			mcp.WithDescription("List the events journaled for this session"),
		),
		s.handleHistory,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("submit",
			mcp.WithDescription("Hand the booking off to the messaging app. Refused until name, email and date are filled"),
		),
		s.handleSubmit,
	)
}
