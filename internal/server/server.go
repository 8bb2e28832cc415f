package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/au-invoice/internal/address"
	"github.com/rezonia/au-invoice/internal/format"
	"github.com/rezonia/au-invoice/internal/invoice"
	"github.com/rezonia/au-invoice/internal/llm"
	"github.com/rezonia/au-invoice/internal/model"
	"github.com/rezonia/au-invoice/internal/processor"
	"github.com/rezonia/au-invoice/internal/render"
	"github.com/rezonia/au-invoice/internal/urlstate"
)

// Config holds server configuration
type Config struct {
	Address      string
	APIKey       string
	LLMBaseURL   string
	LLMModel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool

	// Location decides the calendar date of "today"; defaults to time.Local
	Location *time.Location
	// Now overrides the clock, mostly for tests
	Now func() time.Time
	// Suggester overrides the LLM backed address suggester
	Suggester address.Suggester
}

// Server represents the HTTP API server
type Server struct {
	config    *Config
	router    *gin.Engine
	pipeline  *processor.Pipeline
	suggester address.Suggester
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	// Create address suggester if API key provided
	suggester := config.Suggester
	if suggester == nil && config.APIKey != "" {
		var clientOpts []llm.ClientOption
		if config.LLMBaseURL != "" {
			clientOpts = append(clientOpts, llm.WithBaseURL(config.LLMBaseURL))
		}
		if config.LLMModel != "" {
			clientOpts = append(clientOpts, llm.WithDefaultModel(config.LLMModel))
		}

		client := llm.NewClient(config.APIKey, clientOpts...)
		suggester = llm.NewAddressSuggester(client)
	}

	s := &Server{
		config:    config,
		router:    router,
		suggester: suggester,
	}
	s.pipeline = processor.NewPipeline(processor.WithClock(s.now))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		// Computation endpoints
		v1.POST("/totals", s.handleTotals)
		v1.POST("/format", s.handleFormat)
		v1.GET("/defaults", s.handleDefaults)
		v1.POST("/details/reduce", s.handleReduce)
		v1.POST("/items/update", s.handleItems)

		// Document endpoints
		v1.POST("/process", s.handleProcess)
		v1.POST("/render", s.handleRender)
		v1.POST("/validate", s.handleValidate)
		v1.GET("/state", s.handleState)

		// Address completion
		v1.POST("/address/suggest", s.handleAddressSuggest)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) now() time.Time {
	var t time.Time
	if s.config.Now != nil {
		t = s.config.Now()
	} else {
		t = time.Now()
	}
	if s.config.Location != nil {
		t = t.In(s.config.Location)
	}
	return t
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleTotals(c *gin.Context) {
	var req TotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	totals := invoice.ComputeTotals(req.Items)
	c.JSON(http.StatusOK, TotalsResponse{
		Totals:  totals,
		Lines:   invoice.ComputeLines(req.Items),
		Summary: invoice.SummaryRows(totals, req.Currency),
	})
}

func (s *Server) handleFormat(c *gin.Context) {
	var req FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	resp := FormatResponse{
		ABN:      format.SanitizeField(format.FieldABN, req.ABN),
		ACN:      format.SanitizeField(format.FieldACN, req.ACN),
		BSB:      format.SanitizeField(format.FieldBSB, req.BSB),
		Phone:    format.SanitizeField(format.FieldPhone, req.Phone),
		Postcode: format.SanitizeField(format.FieldPostcode, req.Postcode),
	}
	if req.ABN != "" {
		valid := format.ValidABN(req.ABN)
		resp.ABNValid = &valid
	}
	if req.ACN != "" {
		valid := format.ValidACN(req.ACN)
		resp.ACNValid = &valid
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDefaults(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = s.now().Format(invoice.DateLayout)
	}

	number, due, err := invoice.DeriveInvoiceDefaults(date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, DefaultsResponse{
		InvoiceDate:   date,
		InvoiceNumber: number,
		DueDate:       due,
	})
}

func (s *Server) handleReduce(c *gin.Context) {
	var req ReduceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	state, err := invoice.Reduce(req.State, req.Event)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
			"state": state,
		})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (s *Server) handleItems(c *gin.Context) {
	var req ItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var items []model.LineItem
	var err error
	switch req.Action {
	case ItemActionAdd:
		items = invoice.AddItem(req.Items, invoice.NewItemID())
	case ItemActionRemove:
		items = invoice.RemoveItem(req.Items, req.Index)
	case ItemActionUpdate:
		items, err = invoice.UpdateItem(req.Items, req.Index, req.Field, req.Value)
	case ItemActionEnsure:
		items = invoice.EnsureItem(req.Items, invoice.NewItemID())
	default:
		err = model.NewValidationError("action", req.Action, "item_action", "must be one of add, remove, update, ensure")
	}
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
			"items": req.Items,
		})
		return
	}

	totals := invoice.ComputeTotals(items)
	c.JSON(http.StatusOK, ItemsResponse{
		Items: items,
		TotalsResponse: TotalsResponse{
			Totals:  totals,
			Lines:   invoice.ComputeLines(items),
			Summary: invoice.SummaryRows(totals, req.Currency),
		},
	})
}

func (s *Server) handleProcess(c *gin.Context) {
	result, ok := s.process(c)
	if !ok {
		return
	}
	if result.Error != nil {
		s.writeResultError(c, result)
		return
	}

	c.JSON(http.StatusOK, s.processResponse(result))
}

func (s *Server) handleRender(c *gin.Context) {
	result, ok := s.process(c)
	if !ok {
		return
	}
	if result.Error != nil {
		s.writeResultError(c, result)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	var buf bytes.Buffer
	if err := s.pipeline.Render(ctx, *result.Document, &buf); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	filename := render.Filename(result.Document.Details.InvoiceNumber)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, s.pipeline.ContentType(), buf.Bytes())
}

func (s *Server) handleValidate(c *gin.Context) {
	result, ok := s.process(c)
	if !ok {
		return
	}
	if result.Document == nil {
		s.writeResultError(c, result)
		return
	}

	errs, _ := invoice.Validate(*result.Document)
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}

	c.JSON(http.StatusOK, ValidationResponse{
		Valid:    len(errs) == 0,
		Errors:   messages,
		Warnings: result.Warnings,
	})
}

func (s *Server) handleState(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipeline.ProcessQuery(ctx, c.Request.URL.RawQuery)
	if result.Document == nil {
		s.writeResultError(c, result)
		return
	}

	// Invalid items still decode; report them as warnings on a GET
	if result.Error != nil {
		result.Warnings = append(result.Warnings, result.Error.Error())
	}
	c.JSON(http.StatusOK, s.processResponse(result))
}

func (s *Server) handleAddressSuggest(c *gin.Context) {
	if s.suggester == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "address suggestions unavailable",
			"details": "no LLM API key configured",
		})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	suggestions, err := s.suggester.Suggest(ctx, req.Query)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if suggestions == nil {
		suggestions = []model.Address{}
	}
	c.JSON(http.StatusOK, AddressResponse{Suggestions: suggestions})
}

// process reads the request body and runs it through the pipeline.
// It writes the error response itself when the body is unusable.
func (s *Server) process(c *gin.Context) (*processor.Result, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return nil, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	return s.pipeline.Process(ctx, body), true
}

func (s *Server) processResponse(result *processor.Result) ProcessResponse {
	resp := ProcessResponse{
		Document: result.Document,
		Totals:   result.Totals,
		Lines:    result.Lines,
		Summary:  result.Summary,
		Format:   result.Format.String(),
		Warnings: result.Warnings,
	}
	if result.Document != nil {
		if query, err := urlstate.EncodeQuery(*result.Document); err == nil {
			resp.Query = query
		}
	}
	return resp
}

func (s *Server) writeResultError(c *gin.Context, result *processor.Result) {
	c.JSON(statusFor(result.Error), ErrorResponse{
		Error:    result.Error.Error(),
		Warnings: result.Warnings,
	})
}

// statusFor maps pipeline errors onto HTTP status codes
func statusFor(err error) int {
	var parseErr *model.ParseError
	var validationErr *model.ValidationError

	switch {
	case errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
