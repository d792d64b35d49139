package domain

// ExecutionRequest is what the frontend submits to run code.
type ExecutionRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Stdin    string `json:"stdin,omitempty"`
}

// ExecutionResult mirrors the judge's response, normalized.
type ExecutionResult struct {
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr,omitempty"`
	CompileOutput string  `json:"compile_output,omitempty"`
	Status        string  `json:"status"`
	Time          string  `json:"time,omitempty"`
	Memory        float64 `json:"memory,omitempty"`
}
