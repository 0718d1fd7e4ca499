package models

// Request types

// Question form fields; the same names are accepted as form values
type SubmitQuestionRequest struct {
	Question string `json:"question"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Response types

type SubmitQuestionResponse struct {
	ID        string `json:"id,omitempty"`
	Forwarded bool   `json:"forwarded"`
	Message   string `json:"message"`
}

type TrendingResponse struct {
	Headline     string `json:"headline"`
	QuestionText string `json:"question_text"`
	Stat         string `json:"stat"`
	Caption      string `json:"caption"`
	Index        int    `json:"index"`
	Total        int    `json:"total"`
}

// SummaryResponse is the stateless JSON rendering of a filtered card grid
type SummaryResponse struct {
	Filters map[string]string `json:"filters"`
	Rows    int               `json:"rows"`
	Cards   []CardSummary     `json:"cards"`
	Empty   bool              `json:"empty"`
	Message string            `json:"message,omitempty"`
}

type CardSummary struct {
	QuestionID   string          `json:"question_id"`
	QuestionText string          `json:"question_text"`
	TopResponse  string          `json:"top_response"`
	Responses    int             `json:"responses"`
	Counts       []ResponseCount `json:"counts"`
}

type ResponseCount struct {
	Response string `json:"response"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
}

// ErrorResponse is returned by the JSON endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ProxyError is the body of a failed sheet proxy request; browsers
// already depend on its single-field shape
type ProxyError struct {
	Error string `json:"error"`
}
