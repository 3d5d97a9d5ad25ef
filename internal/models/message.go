// ABOUTME: Conversation message, tool and tool-call types for the chat-completion port
// ABOUTME: Provider-neutral shapes mapped onto concrete SDK types by adapters
package models

// Message roles. Ordering of messages within a conversation is significant
// and must be preserved exactly as constructed.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one role-tagged conversation turn.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a model-issued request to invoke an external capability.
// Every tool call emitted in one turn must receive exactly one tool-result
// message, matched by ID, before the next model call.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tool describes a callable capability offered to the model.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ChatResponse is the model's answer to one chat-completion request:
// free text, a batch of tool calls, or both.
type ChatResponse struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}
