package foundry

// Message roles used on the wire and in the local transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Agent represents a provisioned remote agent.
type Agent struct {
	ID           string `json:"id"`
	Object       string `json:"object"`
	CreatedAt    int64  `json:"created_at"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	Instructions string `json:"instructions,omitempty"`
}

// Thread represents a remote conversation context.
type Thread struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
}

// MessageText carries the text payload of a content block.
type MessageText struct {
	Value string `json:"value"`
}

// MessageContent represents one content block of a message.
type MessageContent struct {
	Type string       `json:"type"`
	Text *MessageText `json:"text,omitempty"`
}

// Message represents a message stored on a thread.
type Message struct {
	ID        string           `json:"id"`
	Object    string           `json:"object"`
	CreatedAt int64            `json:"created_at"`
	ThreadID  string           `json:"thread_id"`
	Role      string           `json:"role"`
	Content   []MessageContent `json:"content"`
}

// Text returns the value of the first text content block, or the empty
// string when the message carries no text.
func (m *Message) Text() string {
	for _, block := range m.Content {
		if block.Type == "text" && block.Text != nil {
			return block.Text.Value
		}
	}
	return ""
}

// MessageList represents one page of thread messages, newest first.
type MessageList struct {
	Object  string    `json:"object"`
	Data    []Message `json:"data"`
	FirstID string    `json:"first_id,omitempty"`
	LastID  string    `json:"last_id,omitempty"`
	HasMore bool      `json:"has_more"`
}

// RunStatus enumerates the lifecycle states of a run.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusExpired        RunStatus = "expired"
)

// Terminal reports whether the run has left the pending set
// {queued, in_progress, requires_action} and polling should stop.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusQueued, RunStatusInProgress, RunStatusRequiresAction:
		return false
	}
	return true
}

// RunError represents the remote-reported failure of a run.
type RunError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Run represents one asynchronous execution of an agent over a thread.
type Run struct {
	ID          string    `json:"id"`
	Object      string    `json:"object"`
	CreatedAt   int64     `json:"created_at"`
	ThreadID    string    `json:"thread_id"`
	AssistantID string    `json:"assistant_id"`
	Status      RunStatus `json:"status"`
	LastError   *RunError `json:"last_error,omitempty"`
}

// AgentDeletion represents the acknowledgement of an agent delete.
type AgentDeletion struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// CreateAgentRequest represents the payload for provisioning an agent.
type CreateAgentRequest struct {
	Model        string `json:"model"`
	Name         string `json:"name,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// CreateMessageRequest represents the payload for appending a message.
type CreateMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CreateRunRequest represents the payload for starting a run.
type CreateRunRequest struct {
	AssistantID string `json:"assistant_id"`
}
