package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/aicommit/aicommit-go/internal/llm"
	"github.com/aicommit/aicommit-go/internal/log"
	"github.com/aicommit/aicommit-go/internal/ui"
)

// Request describes one commit-message generation call.
type Request struct {
	Diff     string // Filtered (and possibly chunked) diff text
	Status   string // Git status overview (optional)
	Language string // Output language
	Context  string // User-provided context (optional)
}

// Response is the generated commit message plus token accounting.
type Response struct {
	CommitInfo       *CommitInfo
	Message          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Options configures a Summarizer.
type Options struct {
	Provider    llm.Provider
	Printer     *ui.Printer // Optional progress output
	RetryConfig llm.RetryConfig
}

// Summarizer turns a filtered diff into a conventional commit message
// by delegating to the configured LLM provider.
type Summarizer struct {
	opts Options
}

// NewSummarizer creates a Summarizer.
func NewSummarizer(opts Options) (*Summarizer, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("LLM provider is not configured")
	}
	return &Summarizer{opts: opts}, nil
}

// BuildSystemPrompt renders the system prompt for the given language
// and optional user context.
func BuildSystemPrompt(language, userContext string) string {
	tmpl, err := template.New("system_prompt").Parse(SystemPromptTemplate)
	if err != nil {
		return SystemPromptTemplate
	}

	data := struct {
		Language string
		Context  string
	}{
		Language: language,
		Context:  userContext,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return SystemPromptTemplate
	}
	return buf.String()
}

// buildUserMessage assembles the user message from the status overview
// and the diff payload.
func buildUserMessage(req Request) string {
	var b strings.Builder
	b.WriteString("Please analyze the following staged changes and generate a commit message.\n\n")

	if req.Status != "" {
		b.WriteString("## Git Status Overview\n")
		b.WriteString("```\n")
		b.WriteString(req.Status)
		b.WriteString("\n```\n\n")
	}

	b.WriteString("## Staged Changes (Diff)\n")
	b.WriteString("```diff\n")
	b.WriteString(req.Diff)
	b.WriteString("\n```\n")

	return b.String()
}

// submitCommitTool is the tool definition the model must call to emit
// structured commit information.
func submitCommitTool() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: "submit_commit",
		Desc: "Submit the structured commit information. Use this to output the commit message in a structured format.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"type": {
				Type:     schema.String,
				Desc:     "Commit type: feat, fix, docs, style, refactor, perf, test, chore, build, ci, or revert",
				Required: true,
			},
			"scope": {
				Type:     schema.String,
				Desc:     "Commit scope (optional)",
				Required: false,
			},
			"description": {
				Type:     schema.String,
				Desc:     "Short description (subject line, max 50 chars preferred)",
				Required: true,
			},
			"body": {
				Type:     schema.String,
				Desc:     "Detailed description explaining what and why (optional)",
				Required: false,
			},
			"footer": {
				Type:     schema.String,
				Desc:     "Footer for breaking changes or issue references (optional)",
				Required: false,
			},
		}),
	}
}

// Generate produces a commit message for the request. Transient
// provider errors are retried per the configured retry policy.
func (s *Summarizer) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Diff == "" {
		return nil, fmt.Errorf("no diff content to summarize")
	}
	if req.Language == "" {
		req.Language = "en"
	}

	providerName := s.opts.Provider.Name()
	modelName := s.opts.Provider.GetConfig().Model
	log.Debug("Using LLM: provider=%s, model=%s", providerName, modelName)

	chatModel, err := s.opts.Provider.CreateChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is nil (provider: %s)", providerName)
	}

	if err := chatModel.BindTools([]*schema.ToolInfo{submitCommitTool()}); err != nil {
		return nil, fmt.Errorf("failed to bind tools: %w", err)
	}

	messages := []*schema.Message{
		{
			Role:    schema.System,
			Content: BuildSystemPrompt(req.Language, req.Context),
		},
		{
			Role:    schema.User,
			Content: buildUserMessage(req),
		},
	}

	return llm.WithRetryResult(ctx, s.opts.RetryConfig, func() (*Response, error) {
		return s.generateOnce(ctx, chatModel, messages)
	})
}

func (s *Summarizer) generateOnce(ctx context.Context, chatModel model.ChatModel, messages []*schema.Message) (*Response, error) {
	printer := s.opts.Printer

	streamReader, err := chatModel.Stream(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("LLM stream failed: %w", err)
	}
	defer streamReader.Close()

	var fullContent strings.Builder
	var toolCalls []*schema.ToolCall
	var promptTokens, completionTokens, totalTokens int

	for {
		chunk, err := streamReader.Recv()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("stream read error: %w", err)
		}

		if chunk.Content != "" {
			fullContent.WriteString(chunk.Content)
			if printer != nil {
				_ = printer.PrintLLMContent(chunk.Content)
			}
		}

		// Tool call fragments arrive incrementally; accumulate by index.
		for _, tc := range chunk.ToolCalls {
			idx := 0
			if tc.Index != nil {
				idx = *tc.Index
			}
			for len(toolCalls) <= idx {
				toolCalls = append(toolCalls, &schema.ToolCall{
					Function: schema.FunctionCall{},
				})
			}
			if tc.Function.Name != "" {
				toolCalls[idx].Function.Name = tc.Function.Name
			}
			if tc.Function.Arguments != "" {
				toolCalls[idx].Function.Arguments += tc.Function.Arguments
			}
		}

		if chunk.ResponseMeta != nil && chunk.ResponseMeta.Usage != nil {
			usage := chunk.ResponseMeta.Usage
			if usage.PromptTokens > promptTokens {
				promptTokens = usage.PromptTokens
			}
			if usage.CompletionTokens > completionTokens {
				completionTokens = usage.CompletionTokens
			}
			if usage.TotalTokens > totalTokens {
				totalTokens = usage.TotalTokens
			}
		}
	}

	if printer != nil {
		_ = printer.Newline()
	}

	log.DebugTokenUsage(promptTokens, completionTokens, totalTokens)

	for _, toolCall := range toolCalls {
		if toolCall.Function.Name != "submit_commit" {
			continue
		}
		log.Debug("Tool call: %s with args: %s", toolCall.Function.Name, toolCall.Function.Arguments)

		var info CommitInfo
		if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &info); err != nil {
			log.Debug("Failed to parse tool call arguments: %v", err)
			continue
		}
		if err := info.Validate(); err != nil {
			log.Debug("Invalid commit info: %v", err)
			continue
		}

		return &Response{
			CommitInfo:       &info,
			Message:          info.Message(),
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      totalTokens,
		}, nil
	}

	// No usable tool call: fall back to parsing the text response.
	if content := fullContent.String(); content != "" {
		log.Debug("No tool call found, using fallback parsing")
		info, err := parseTextResponse(content)
		if err != nil {
			return nil, err
		}
		return &Response{
			CommitInfo:       info,
			Message:          info.Message(),
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      totalTokens,
		}, nil
	}

	return nil, fmt.Errorf("failed to generate commit message: no valid response from LLM")
}
