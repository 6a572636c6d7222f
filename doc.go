// Package agent drives conversations with remote AI agents.
//
// Two conversation styles are supported:
//
//   - [Client] talks to a hosted agent (Azure AI Foundry Agents). Each turn
//     starts a remote run on a persistent thread, waits for the run to leave
//     the pending state with a fixed-interval [Poller], then fetches the last
//     assistant message.
//   - [Chat] keeps the history in process and streams every turn from a
//     chat completion endpoint through a [CompletionStreamer].
//
// # Quick Start
//
//	fc, _ := foundry.NewClient(endpoint, cred)
//	c := agent.NewClient(fc, agent.RemoteAgent{ID: agentID})
//	reply, err := c.Submit(ctx, "Hello")
//
// # Sub-packages
//
//   - [foundry] implements [Backend] on the Foundry Agents REST API.
//   - [completion] provides Azure OpenAI and Anthropic streamers.
package agent
