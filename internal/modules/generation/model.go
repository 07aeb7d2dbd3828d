// README: Generation request/plan/result types and the request precedence rule.
package generation

// Mode names the prompt template that served a request.
type Mode string

const (
	ModeChat      Mode = "chat"
	ModeItinerary Mode = "itinerary"
)

// FallbackText is returned to the caller when the provider answered without
// usable text.
const FallbackText = "AI response unavailable."

// Input is the JSON body of POST /api/generate. Both fields are optional.
type Input struct {
	Days *int    `json:"days,omitempty"`
	Chat *string `json:"chat,omitempty"`
}

// Request is either a ChatRequest or an ItineraryRequest.
type Request interface {
	Mode() Mode
}

// ChatRequest is a free-form question. An empty Message is the default
// request used when neither field was supplied.
type ChatRequest struct {
	Message string
}

// ItineraryRequest asks for a Days-long day-by-day plan.
type ItineraryRequest struct {
	Days int
	// DiscardedChat holds chat text that arrived alongside days and lost to
	// the itinerary template. It never reaches the prompt.
	DiscardedChat string
}

func (ChatRequest) Mode() Mode      { return ModeChat }
func (ItineraryRequest) Mode() Mode { return ModeItinerary }

// Resolve turns the wire input into exactly one request.
// A positive day count always wins. Only the empty string counts as absent
// chat; whitespace-only text is passed through verbatim.
func Resolve(in Input) Request {
	chat := ""
	if in.Chat != nil && *in.Chat != "" {
		chat = *in.Chat
	}
	if in.Days != nil && *in.Days > 0 {
		return ItineraryRequest{Days: *in.Days, DiscardedChat: chat}
	}
	return ChatRequest{Message: chat}
}

// Plan is the resolved model and rendered prompt for one request.
type Plan struct {
	Mode   Mode
	Model  string
	Prompt string
}

// Result is the outcome of a completed generation.
type Result struct {
	Mode  Mode
	Model string
	Text  string
	// Fallback is true when Text is FallbackText because the provider reply
	// was malformed or no upstream call was made.
	Fallback bool
}
