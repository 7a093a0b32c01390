package server

// GeneratePoemRequest は POST /poems のボディです。
// StylePreferences が空の場合は設定のデフォルトスタイルを使います。
type GeneratePoemRequest struct {
	Image            string `json:"image"`
	StylePreferences string `json:"stylePreferences,omitempty"`
}

type RegenerateLengthRequest struct {
	Image      string `json:"image"`
	PoemLength string `json:"poemLength"`
}

type RegenerateToneRequest struct {
	Image string `json:"image"`
	Tone  string `json:"tone"`
}

type PoemResponse struct {
	Poem string `json:"poem"`
}

type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status    int   `json:"status"`
	TimeStamp int64 `json:"timestamp"`
}
