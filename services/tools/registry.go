// Package tools holds the closed registry of booking operations the model may
// invoke. Tool definitions are a fixed, compile-time set pairing a typed
// argument decoder with an execute function; there is no runtime schema
// introspection.
package tools

import (
	"fmt"

	"stopover/models"

	genai "github.com/google/generative-ai-go/genai"
)

// Tool names, in funnel order.
const (
	ToolListCategories          = "listStopoverCategories"
	ToolSelectStopoverCategory  = "selectStopoverCategory"
	ToolSelectHotel             = "selectHotel"
	ToolSelectTimingAndDuration = "selectTimingAndDuration"
	ToolSelectExtras            = "selectExtras"
	ToolInitiatePayment         = "initiatePayment"
	ToolCompleteBooking         = "completeBooking"
)

// Definition is one entry of the registry. Execute must be side-effect free:
// it reads the session and returns a result (with an optional SessionPatch for
// the caller to apply) but never mutates shared state itself.
type Definition struct {
	Name        string
	Description string
	Parameters  *genai.Schema
	Execute     func(args map[string]any, session *models.BookingSession) *models.ToolResult
}

// Registry is the ordered, closed set of tool definitions.
type Registry struct {
	defs  []Definition
	index map[string]*Definition
}

// NewRegistry builds the seven-tool booking registry.
func NewRegistry() *Registry {
	defs := bookingDefinitions()
	r := &Registry{defs: defs, index: make(map[string]*Definition, len(defs))}
	for i := range defs {
		r.index[defs[i].Name] = &defs[i]
	}
	return r
}

// Names returns tool names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for _, d := range r.defs {
		names = append(names, d.Name)
	}
	return names
}

// Declarations renders the registry as Gemini function declarations.
func (r *Registry) Declarations() []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(r.defs))
	for _, d := range r.defs {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.Parameters,
		})
	}
	return decls
}

// Dispatch validates and executes the named tool against a read-only view of
// the session. Errors never escape as Go errors: every failure, including an
// unknown tool name, comes back as ToolResult{Success: false} so the model can
// self-correct.
func (r *Registry) Dispatch(name string, args map[string]any, session *models.BookingSession) *models.ToolResult {
	def, ok := r.index[name]
	if !ok {
		return failure(fmt.Sprintf("unknown tool %q", name),
			"I couldn't process that request. Could you rephrase it?")
	}
	// A confirmed booking is immutable; a fresh conversation starts a new one.
	if session.Status == models.SessionConfirmed {
		return failure("booking already confirmed",
			fmt.Sprintf("Your stopover is already confirmed under reference %s. Start a new chat to make changes.", session.NewReference))
	}
	return def.Execute(args, session)
}

func failure(errMsg, userMsg string) *models.ToolResult {
	return &models.ToolResult{
		Success:      false,
		Message:      userMsg,
		Error:        errMsg,
		QuickReplies: []string{"Try again", "Start over"},
	}
}
