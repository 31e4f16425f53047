package assistantservice

// ChatRequest запрос к чат-ассистенту
type ChatRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// ChatResponse ответ чат-ассистента
type ChatResponse struct {
	Reply string `json:"reply"`
}
