package request_models

type SubmitAnswerRequest struct {
	QuestionID  string `json:"question_id" binding:"required"`
	AnswerIndex *int   `json:"answer_index" binding:"required"`
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}
