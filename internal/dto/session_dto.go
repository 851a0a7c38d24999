package dto

// Candidate-facing views for the public exam-taking flow. These must never
// expose option correct flags.

type SessionOptionView struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

type SessionQuestionView struct {
	ID           uint                `json:"id"`
	ExamID       uint                `json:"exam_id"`
	Text         string              `json:"text"`
	QuestionType string              `json:"question_type"`
	Points       float64             `json:"points"`
	Order        int                 `json:"order"`
	Options      []SessionOptionView `json:"options,omitempty"`
}

type SessionExamView struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	IsRandomized    bool   `json:"is_randomized"`
}

type AccessExamResponse struct {
	Candidate CandidateResponse     `json:"candidate"`
	Exam      SessionExamView       `json:"exam"`
	Questions []SessionQuestionView `json:"questions"`
}

// SubmittedAnswer is one answer in a submission. Exactly one of
// SelectedOptionID and TextResponse is used, decided by the stored question
// type, never by the client.
type SubmittedAnswer struct {
	QuestionID       uint    `json:"question_id" binding:"required"`
	SelectedOptionID *uint   `json:"selected_option_id"`
	TextResponse     *string `json:"text_response"`
}

type SubmitExamRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"dive"`
}

type SubmitExamResponse struct {
	Message string         `json:"message"`
	Result  ResultResponse `json:"result"`
}
