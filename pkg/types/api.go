package types

// GenerateRequest is the payload accepted by POST /generate.
type GenerateRequest struct {
	// Required prompt text to generate a completion for.
	// example: Write a haiku about the ocean.
	Prompt string `json:"prompt" example:"Write a haiku about the ocean."`
	// Maximum number of new tokens to generate. Zero picks the server default.
	// example: 128
	MaxTokens int `json:"max_tokens,omitempty" validate:"omitempty,gte=1,lte=4096" example:"128"`
	// Sampling temperature (higher = more random). Omitted picks the server default;
	// an explicit 0 makes output deterministic.
	// example: 0.7
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2" example:"0.7"`
	// Nucleus sampling probability.
	// example: 0.9
	TopP float64 `json:"top_p,omitempty" validate:"omitempty,gt=0,lte=1" example:"0.9"`
	// Top-K sampling: limit candidates to top K tokens.
	// example: 40
	TopK int `json:"top_k,omitempty" validate:"omitempty,gte=1" example:"40"`
	// Optional stop sequences. Generation stops when any sequence is matched.
	// example: ["\n\n","END"]
	Stop []string `json:"stop,omitempty" validate:"omitempty,max=8,dive,min=1" example:"[\"\\n\\n\",\"END\"]"`
	// Random seed for reproducibility; 0 or omitted lets the backend choose.
	// example: 42
	Seed int64 `json:"seed,omitempty" example:"42"`
}

// GenerateResponse is returned by POST /generate on success.
type GenerateResponse struct {
	// Generated completion text.
	Text string `json:"text"`
	// Number of completion tokens produced.
	// example: 97
	Tokens int `json:"tokens"`
	// True when generation stopped because max_tokens was reached rather
	// than a natural stop condition.
	// example: false
	Truncated bool `json:"truncated"`
	// Wall-clock generation time in milliseconds.
	// example: 1843
	DurationMS int64 `json:"duration_ms"`
}

// RecommendRequest carries a student's questionnaire answers for POST /recommend.
type RecommendRequest struct {
	// Interest fields the student checked.
	// example: ["Arts and communication","Human and public service"]
	InterestFields []string `json:"interest_fields"`
	// Personal qualities the student checked.
	// example: ["Compassionate and caring","Creative","Outgoing"]
	Qualities []string `json:"qualities"`
	// Free-time activities the student checked.
	// example: ["Writing","Acting","Volunteering"]
	FreeTimeActivities []string `json:"free_time_activities"`
	// Likert values, 0-5.
	IntrinsicMotivation   int `json:"intrinsic_motivation" validate:"gte=0,lte=5" example:"5"`
	IdentifiedRegulation  int `json:"identified_regulation" validate:"gte=0,lte=5" example:"4"`
	IntrojectedRegulation int `json:"introjected_regulation" validate:"gte=0,lte=5" example:"2"`
	IntegratedRegulation  int `json:"integrated_regulation" validate:"gte=0,lte=5" example:"3"`
	Amotivation           int `json:"amotivation" validate:"gte=0,lte=5" example:"1"`
	ExternalRegulation    int `json:"external_regulation" validate:"gte=0,lte=5" example:"2"`
}

// RecommendResponse is returned by POST /recommend on success.
type RecommendResponse struct {
	// One-paragraph major recommendation with reasoning.
	Recommendation string `json:"recommendation"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Human-readable error message.
	// example: prompt is required
	Error string `json:"error" example:"prompt is required"`
	// Stable machine-readable error code.
	// example: invalid_request
	Code string `json:"code" example:"invalid_request"`
}

// ModelStatus describes the loaded model for /status.
type ModelStatus struct {
	// Served model name.
	// example: zephyr-7b-beta.Q5_0
	Name string `json:"name" example:"zephyr-7b-beta.Q5_0"`
	// On-disk artifact path (in-process engine only).
	// example: /models/zephyr-7b-beta.Q5_0.gguf
	Path string `json:"path,omitempty" example:"/models/zephyr-7b-beta.Q5_0.gguf"`
	// Context window configured at load time.
	// example: 4096
	CtxSize int `json:"ctx_size" example:"4096"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Lifecycle state: loading, ready, draining or stopped.
	// example: ready
	State string `json:"state" example:"ready"`
	// The one model this process serves.
	Model ModelStatus `json:"model"`
	// Generation calls currently running against the model.
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Requests currently waiting for a generation slot.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// Maximum concurrent generation calls.
	// example: 1
	Concurrency int `json:"concurrency" example:"1"`
	// Maximum queued requests before backpressure triggers.
	// example: 32
	QueueDepth int `json:"queue_depth" example:"32"`
	// Total generation requests admitted since start.
	// example: 120
	RequestsTotal uint64 `json:"requests_total" example:"120"`
	// Total completion tokens produced since start.
	// example: 15360
	TokensOutTotal uint64 `json:"tokens_out_total" example:"15360"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
