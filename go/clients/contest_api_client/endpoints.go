package contest_api_client

const (
	// API Endpoints
	JoinEndpoint        = "/api/users/join"
	ContestsEndpoint    = "/api/contests"
	SubmissionsEndpoint = "/api/submissions"

	// Headers
	ContentTypeHeader = "Content-Type"
	ContentTypeJSON   = "application/json"
)
