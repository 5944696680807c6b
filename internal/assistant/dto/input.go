package dto

type ChatInput struct {
	SessionID   string
	Message     string
	FeatureType string
	// Name addresses the guest in the system prompt when set.
	Name string
}

type UsageInput struct {
	SessionID        string
	FeatureType      string
	Model            string
	PromptTokens     int
	CompletionTokens int
	RequestType      string
	Success          bool
	ErrorMessage     string
}
