package foundry

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	agent "github.com/armatrix/foundry-agent-go"
)

// CreateThreadAndRun creates a thread holding one user message and starts a
// run of agentID on it.
func (c *Client) CreateThreadAndRun(ctx context.Context, agentID, userText string) (*agent.Job, error) {
	body := createThreadAndRunRequest{
		AssistantID: agentID,
		Thread: threadParam{
			Messages: []threadMessageParam{{Role: string(agent.RoleUser), Content: userText}},
		},
	}
	var out runObject
	const op = "create thread and run"
	if err := c.do(ctx, op, http.MethodPost, []string{"threads", "runs"}, nil, body, &out); err != nil {
		return nil, err
	}
	return out.toJob(op)
}

// AppendUserMessage adds a user message to threadID.
func (c *Client) AppendUserMessage(ctx context.Context, threadID, text string) error {
	body := threadMessageParam{Role: string(agent.RoleUser), Content: text}
	var out messageObject
	return c.do(ctx, "create message", http.MethodPost, []string{"threads", threadID, "messages"}, nil, body, &out)
}

// StartRun starts a run of agentID on threadID.
func (c *Client) StartRun(ctx context.Context, threadID, agentID string) (*agent.Job, error) {
	var out runObject
	body := createRunRequest{AssistantID: agentID}
	const op = "create run"
	if err := c.do(ctx, op, http.MethodPost, []string{"threads", threadID, "runs"}, nil, body, &out); err != nil {
		return nil, err
	}
	return out.toJob(op)
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*agent.Job, error) {
	var out runObject
	const op = "get run"
	if err := c.do(ctx, op, http.MethodGet, []string{"threads", threadID, "runs", runID}, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.toJob(op)
}

// LastMessageByRole scans the thread newest first and returns the text of the
// first message authored by role. If that message has no text item its raw
// content is returned; if no message has the role the result is a nil Raw.
func (c *Client) LastMessageByRole(ctx context.Context, threadID string, role agent.Role) (agent.MessageText, error) {
	after := ""
	for {
		query := url.Values{}
		query.Set("order", "desc")
		query.Set("limit", strconv.Itoa(messagePageSize))
		if after != "" {
			query.Set("after", after)
		}

		var page messageList
		if err := c.do(ctx, "list messages", http.MethodGet, []string{"threads", threadID, "messages"}, query, nil, &page); err != nil {
			return agent.MessageText{}, err
		}

		for _, msg := range page.Data {
			if msg.Role != string(role) {
				continue
			}
			for _, item := range msg.Content {
				if item.Type == "text" && item.Text != nil {
					return agent.SomeText(item.Text.Value), nil
				}
			}
			return agent.RawText(msg.Content), nil
		}

		if !page.HasMore || page.LastID == "" {
			return agent.RawText(nil), nil
		}
		after = page.LastID
	}
}
