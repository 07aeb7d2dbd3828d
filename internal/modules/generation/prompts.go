package generation

import (
	"fmt"
	"strings"
)

const (
	// DefaultChatModel is the fast conversational model.
	DefaultChatModel = "gemini-2.0-flash"
	// DefaultPlannerModel is the high-quality planning model.
	DefaultPlannerModel = "gemini-2.0-pro"
	// DefaultCity is the city the assistant is an expert on.
	DefaultCity = "Hubli"
)

// Models maps each mode to an upstream model identifier.
type Models struct {
	Chat    string
	Planner string
}

// Router picks a model and renders a prompt for a request. It holds no
// mutable state and is safe for concurrent use.
type Router struct {
	city   string
	region string
	models Models
}

// NewRouter returns a Router for city (and optional region, shown in the
// chat persona). Empty values fall back to the defaults above.
func NewRouter(city, region string, models Models) *Router {
	if strings.TrimSpace(city) == "" {
		city = DefaultCity
	}
	if models.Chat == "" {
		models.Chat = DefaultChatModel
	}
	if models.Planner == "" {
		models.Planner = DefaultPlannerModel
	}
	return &Router{city: city, region: region, models: models}
}

// Plan resolves the model and prompt for req.
// The zero request (chat with no message) keeps the chat model and an empty
// prompt.
func (r *Router) Plan(req Request) Plan {
	switch v := req.(type) {
	case ItineraryRequest:
		return Plan{Mode: ModeItinerary, Model: r.models.Planner, Prompt: ItineraryPrompt(r.city, v.Days)}
	case ChatRequest:
		if v.Message == "" {
			return Plan{Mode: ModeChat, Model: r.models.Chat}
		}
		return Plan{Mode: ModeChat, Model: r.models.Chat, Prompt: ChatPrompt(r.place(), v.Message)}
	default:
		return Plan{Mode: ModeChat, Model: r.models.Chat}
	}
}

func (r *Router) place() string {
	if r.region == "" {
		return r.city
	}
	return r.city + ", " + r.region
}

// chatPersona opens every chat prompt and never appears in an itinerary prompt.
const chatPersona = "You are TravelBuddy, an expert travel AI assistant for"

// ChatPrompt renders the local-expert persona followed by the user's message
// verbatim.
func ChatPrompt(place, message string) string {
	return fmt.Sprintf(`
%s %s.

Provide:
• Real local knowledge
• Best foods, temples, attractions
• Transport prices, rickshaw fares, BRTS fares
• Entry fees, timings, and ideal visit times
• Clean natural language
User: %s
`, chatPersona, place, message)
}

// ItineraryPrompt renders the tour-planner persona for a days-long plan.
func ItineraryPrompt(city string, days int) string {
	return fmt.Sprintf(`
You are TravelBuddy, an expert %s tour planner.
Create a %d-day detailed itinerary including:

• Best attractions
• Underrated spots
• Famous food places
• Transport suggestions
• Approx timing for each activity
• Real %s rickshaw/BRTS fare estimates

Output clear, neat day-by-day formatting.
`, city, days, city)
}
