package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// FramePayload represents a single webcam frame submitted for analysis
type FramePayload struct {
	Img       string `json:"img" example:"/9j/4AAQSkZJRgABAQAAAQ..."`
	SessionID string `json:"session_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// BatchPayload represents a batch of frames analyzed in one request
type BatchPayload struct {
	Frames []FramePayload `json:"frames"`
}

// SnapshotPayload represents a reference snapshot upload
type SnapshotPayload struct {
	Img  string `json:"img" example:"/9j/4AAQSkZJRgABAQAAAQ..."`
	User string `json:"user" example:"joao.silva-1718467200"`
}

// CreateSessionPayload represents the body for session creation
type CreateSessionPayload struct {
	ExamID    string `json:"exam_id" example:"exam-2026-1"`
	StudentID string `json:"student_id" example:"student-42"`
}

// RotationData holds the estimated head rotation angles in radians
type RotationData struct {
	Pitch float64 `json:"pitch" example:"0.0123"`
	Yaw   float64 `json:"yaw" example:"-0.4512"`
	Roll  float64 `json:"roll" example:"0.0034"`
}

// TranslationData holds the estimated head translation vector
type TranslationData struct {
	X float64 `json:"x" example:"12.5"`
	Y float64 `json:"y" example:"-3.2"`
	Z float64 `json:"z" example:"540.8"`
}

// PoseData groups the raw solver output
type PoseData struct {
	Rotation    RotationData    `json:"rotation"`
	Translation TranslationData `json:"translation"`
}

// DirectionData is the structured gaze direction verdict
type DirectionData struct {
	LookingUp       bool    `json:"looking_up" example:"false"`
	LookingDown     bool    `json:"looking_down" example:"false"`
	LookingLeft     bool    `json:"looking_left" example:"true"`
	LookingRight    bool    `json:"looking_right" example:"false"`
	LookingStraight bool    `json:"looking_straight" example:"false"`
	Pitch           float64 `json:"pitch" example:"0.0123"`
	Yaw             float64 `json:"yaw" example:"-0.4512"`
	Roll            float64 `json:"roll" example:"0.0034"`
}

// FrameAnalysisResponse represents the full per-frame analysis
type FrameAnalysisResponse struct {
	Status        string        `json:"status" example:"face_found"`
	HeadDirection DirectionData `json:"head_direction"`
	Pose          PoseData      `json:"pose,omitempty"`
	Warnings      []string      `json:"warnings" example:"[\"Student is looking LEFT - possible cheating detected\"]"`
}

// AttentionResponse represents the attention verdict for one frame
type AttentionResponse struct {
	Attention bool          `json:"attention" example:"false"`
	Reason    string        `json:"reason" example:"looking_left"`
	Direction DirectionData `json:"direction,omitempty"`
	Severity  string        `json:"severity" example:"high"`
	Message   string        `json:"message" example:"Student is looking left"`
}

// PeopleCountResponse represents the number of people detected in a frame
type PeopleCountResponse struct {
	People int `json:"people" example:"1"`
}

// BatchErrorData represents a per-frame failure inside a batch
type BatchErrorData struct {
	Code    string `json:"code" example:"INVALID_IMAGE"`
	Message string `json:"message" example:"Invalid image format or corrupted file"`
}

// BatchItemData holds the outcome for one batch frame
type BatchItemData struct {
	Analysis *FrameAnalysisResponse `json:"analysis,omitempty"`
	Error    *BatchErrorData        `json:"error,omitempty"`
}

// BatchAnalysisResponse holds per-frame outcomes in request order
type BatchAnalysisResponse struct {
	Results []BatchItemData `json:"results"`
}

// SnapshotPathResponse represents a stored snapshot location
type SnapshotPathResponse struct {
	Path string `json:"path" example:"images/joao.silva.jpg"`
}

// SessionResponse represents an exam session
type SessionResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ExamID    string `json:"exam_id" example:"exam-2026-1"`
	StudentID string `json:"student_id" example:"student-42"`
	Status    string `json:"status" example:"active"`
	StartedAt string `json:"started_at" example:"2026-06-15T14:00:00Z"`
	ClosedAt  string `json:"closed_at,omitempty" example:"2026-06-15T16:00:00Z"`
	CreatedAt string `json:"created_at" example:"2026-06-15T14:00:00Z"`
	UpdatedAt string `json:"updated_at" example:"2026-06-15T14:00:00Z"`
}

// SessionListResponse wraps the active sessions
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// BreakdownData counts observations per inattention reason
type BreakdownData struct {
	LookingUp    int `json:"looking_up" example:"4"`
	LookingDown  int `json:"looking_down" example:"12"`
	LookingLeft  int `json:"looking_left" example:"3"`
	LookingRight int `json:"looking_right" example:"1"`
	NoFace       int `json:"no_face" example:"8"`
}

// ObservationTotalsData aggregates the observations of a session
type ObservationTotalsData struct {
	Total     int           `json:"total" example:"120"`
	Attentive int           `json:"attentive" example:"92"`
	Breakdown BreakdownData `json:"breakdown"`
}

// AlertEventData represents a proctor alert raised during a session
type AlertEventData struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SessionID string `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Rule      string `json:"rule" example:"sustained_inattention"`
	Severity  string `json:"severity" example:"warning"`
	Message   string `json:"message" example:"Sustained inattention detected"`
	Count     int    `json:"count" example:"9"`
	CreatedAt string `json:"created_at" example:"2026-06-15T14:23:10Z"`
}

// SessionReportResponse consolidates a session for review
type SessionReportResponse struct {
	Session         SessionResponse       `json:"session"`
	Observations    ObservationTotalsData `json:"observations"`
	AttentionRate   float64               `json:"attention_rate" example:"76.66"`
	DurationSeconds float64               `json:"duration_seconds" example:"7200"`
	Alerts          []AlertEventData      `json:"alerts"`
	GeneratedAt     string                `json:"generated_at" example:"2026-06-15T16:05:00Z"`
}

// MonitorTokenResponse carries a short-lived monitor credential
type MonitorTokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string `json:"expires_at" example:"2026-06-15T14:15:00Z"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Request validation failed"`
}

// NewSwagger creates and configures the Swagger documentation
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Vigia Exam Proctoring API",
		Version:     "v0.1.0",
		Description: "Head-pose analysis API for remote exam proctoring: per-frame pose estimation, attention verdicts, exam sessions and proctor alerts",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// Frames endpoints

		// POST /v1/frames/pose - Analyze head pose
		endpoint.New(
			endpoint.POST,
			"/frames/pose",
			endpoint.WithTags("Frames"),
			endpoint.WithSummary("Analyze head pose in a frame"),
			endpoint.WithDescription("Runs the full head-pose pipeline on a base64-encoded frame: landmark detection, PnP pose solving, direction thresholds and composed warnings. When session_id is set the verdict is also recorded as a session observation."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(FramePayload{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FrameAnalysisResponse{}, "200", "Frame analyzed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "img is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "PROVIDER_UNAVAILABLE", Message: "Vision provider is unavailable"}, "502", "Bad Gateway"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// POST /v1/frames/attention - Check attention
		endpoint.New(
			endpoint.POST,
			"/frames/attention",
			endpoint.WithTags("Frames"),
			endpoint.WithSummary("Check whether the student is paying attention"),
			endpoint.WithDescription("Collapses the head-pose analysis into a boolean attention verdict with reason and severity. A frame without a detectable face yields attention=false with reason no_face, not an error."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(FramePayload{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AttentionResponse{}, "200", "Attention verdict produced"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "img is required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "PROVIDER_UNAVAILABLE", Message: "Vision provider is unavailable"}, "502", "Bad Gateway"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// POST /v1/frames/people - Count people
		endpoint.New(
			endpoint.POST,
			"/frames/people",
			endpoint.WithTags("Frames"),
			endpoint.WithSummary("Count people in a frame"),
			endpoint.WithDescription("Counts the number of people visible in the frame. Requires a vision provider with person detection (AWS Rekognition); the landmark-only provider returns 501."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(FramePayload{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(PeopleCountResponse{}, "200", "People counted successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "PEOPLE_COUNT_UNAVAILABLE", Message: "People detection is not available with the configured provider"}, "501", "Not Implemented"),
				response.New(ErrorResponse{Code: "PROVIDER_UNAVAILABLE", Message: "Vision provider is unavailable"}, "502", "Bad Gateway"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// POST /v1/frames/batch - Analyze a batch of frames
		endpoint.New(
			endpoint.POST,
			"/frames/batch",
			endpoint.WithTags("Frames"),
			endpoint.WithSummary("Analyze a batch of frames"),
			endpoint.WithDescription("Analyzes up to 50 frames concurrently and returns one outcome per frame, in request order. A frame that fails analysis yields a per-item error without failing the batch."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(BatchPayload{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(BatchAnalysisResponse{}, "200", "Batch analyzed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "frames is required and limited to 50 items"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// Snapshots endpoints

		// POST /v1/snapshots - Store a reference snapshot
		endpoint.New(
			endpoint.POST,
			"/snapshots",
			endpoint.WithTags("Snapshots"),
			endpoint.WithSummary("Store a reference snapshot"),
			endpoint.WithDescription("Decodes a base64-encoded image and stores it as a JPEG named after the sanitized user identifier. Any trailing -<unix timestamp> suffix is stripped from the name."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(SnapshotPayload{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SnapshotPathResponse{}, "201", "Snapshot stored successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "img and user are required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests"),
				response.New(ErrorResponse{Code: "SNAPSHOT_FAILED", Message: "Unable to store snapshot image"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// Sessions endpoints

		// POST /v1/sessions - Create session
		endpoint.New(
			endpoint.POST,
			"/sessions",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Create an exam session"),
			endpoint.WithDescription("Opens a monitored exam session for a student. Frames submitted with the returned session id are recorded as observations and evaluated by the alert rules."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(CreateSessionPayload{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionResponse{}, "201", "Session created successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "exam_id and student_id are required"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/sessions - List active sessions
		endpoint.New(
			endpoint.GET,
			"/sessions",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("List active sessions"),
			endpoint.WithDescription("Lists every exam session currently accepting observations."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionListResponse{}, "200", "Sessions listed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/sessions/:id - Get session
		endpoint.New(
			endpoint.GET,
			"/sessions/{id}",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Get an exam session"),
			endpoint.WithDescription("Retrieves a single exam session by id."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Session UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionResponse{}, "200", "Session retrieved successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Exam session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "id must be a valid UUID"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// POST /v1/sessions/:id/close - Close session
		endpoint.New(
			endpoint.POST,
			"/sessions/{id}/close",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Close an exam session"),
			endpoint.WithDescription("Closes an active session. Closed sessions no longer accept observations; closing an already closed session is a conflict."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Session UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionResponse{}, "200", "Session closed successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Exam session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "SESSION_CLOSED", Message: "Exam session is already closed"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "id must be a valid UUID"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// GET /v1/sessions/:id/report - Session report
		endpoint.New(
			endpoint.GET,
			"/sessions/{id}/report",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Get the session report"),
			endpoint.WithDescription("Consolidates the observations and alerts of a session into totals, a per-reason breakdown and an attention rate. Available for both active and closed sessions."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Session UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SessionReportResponse{}, "200", "Report generated successfully"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Exam session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "id must be a valid UUID"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),

		// POST /v1/sessions/:id/monitor-token - Issue monitor token
		endpoint.New(
			endpoint.POST,
			"/sessions/{id}/monitor-token",
			endpoint.WithTags("Sessions"),
			endpoint.WithSummary("Issue a monitor token"),
			endpoint.WithDescription("Issues a short-lived JWT that grants read-only WebSocket access to the live events of an active session via /ws/monitor."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("id", parameter.Path, parameter.WithDescription("Session UUID")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(MonitorTokenResponse{}, "201", "Monitor token issued"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or missing API key"}, "401", "Unauthorized"),
				response.New(ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "Exam session not found"}, "404", "Not Found"),
				response.New(ErrorResponse{Code: "SESSION_CLOSED", Message: "Exam session is already closed"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "id must be a valid UUID"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error"),
			}),
			endpoint.WithSecurity([]map[string][]string{{"ApiKeyAuth": {}}}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
