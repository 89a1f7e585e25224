package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the LLM provider (e.g., "openai", "anthropic")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier (e.g., "gpt-4o", "claude-3-5-sonnet")
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMEngine is the user-facing engine name resolved by the factory
	AttrLLMEngine = "llm.engine"
)

// --- Stream Attributes ---

const (
	// AttrStreamChunkBytes is the size of one transport chunk
	AttrStreamChunkBytes = "stream.chunk.bytes"

	// AttrStreamFrames is the number of frames reassembled from one chunk
	AttrStreamFrames = "stream.frames"

	// AttrStreamDeltas is the number of deltas delivered during one pass
	AttrStreamDeltas = "stream.deltas"

	// AttrStreamBufferedBytes is the size of the buffered incomplete tail
	AttrStreamBufferedBytes = "stream.buffered.bytes"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP request method
	AttrHTTPMethod = "http.method"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrRequestMessagesCount is the number of messages in the prompt
	AttrRequestMessagesCount = "request.messages.count"
)

// --- Events ---

const (
	// EventLLMRequestStart marks the start of a provider request
	EventLLMRequestStart = "llm.request.start"

	// EventLLMRequestEnd marks the end of a provider request
	EventLLMRequestEnd = "llm.request.end"

	// EventStreamTerminated marks an explicit termination signal from the provider
	EventStreamTerminated = "stream.terminated"
)
