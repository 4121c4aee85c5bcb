// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"

	"github.com/lelouchsola/arxiv-digest/pkg/types"
)

// DefaultBaseURL is the OpenAI-compatible inference endpoint used when none
// is configured.
const DefaultBaseURL = "https://api-inference.modelscope.cn/v1"

// DefaultModel is the model identifier used when none is configured.
const DefaultModel = "deepseek-ai/DeepSeek-V3.2"

// summaryPromptZH asks for a structured Chinese summary of title + abstract.
var summaryPromptZH = template.Must(template.New("zh").Parse(`请用中文总结以下学术论文，包括以下几个方面：
1. 研究背景和动机（1-2句话）
2. 主要方法和创新点（2-3句话）
3. 实验结果和结论（1-2句话）
4. 潜在应用价值（1句话）

论文标题：{{.Title}}

论文摘要：
{{.Abstract}}

请用简洁专业的语言总结，适合快速阅读理解。`))

// summaryPromptEN is the English counterpart.
var summaryPromptEN = template.Must(template.New("en").Parse(`Please summarize the following academic paper in English, including these aspects:
1. Research background and motivation (1-2 sentences)
2. Main methods and innovations (2-3 sentences)
3. Experimental results and conclusions (1-2 sentences)
4. Potential application value (1 sentence)

Paper title: {{.Title}}

Paper abstract:
{{.Abstract}}

Please use concise professional language suitable for quick reading.`))

// DeepSeekBackend calls an OpenAI-compatible chat-completions API to
// summarize a paper.
type DeepSeekBackend struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

// chatRequest is the request body for the chat-completions API.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatMessage is a single message in the conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the response body from the chat-completions API.
type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

// Summarize renders the prompt for lang and calls the API once,
// non-streaming.
func (b *DeepSeekBackend) Summarize(ctx context.Context, p types.Paper, lang types.Language) (string, error) {
	prompt, err := renderPrompt(p, lang)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	model := b.Model
	if model == "" {
		model = DefaultModel
	}
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	baseURL := b.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	url := strings.TrimSuffix(baseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.APIKey)

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling summary API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("summary API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding summary response: %w", err)
	}

	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("summary API returned no choices")
	}

	text := strings.TrimSpace(cResp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("summary API returned empty content")
	}
	return text, nil
}

// renderPrompt executes the summary prompt template for the language.
func renderPrompt(p types.Paper, lang types.Language) (string, error) {
	tmpl := summaryPromptEN
	if lang == types.LangChinese {
		tmpl = summaryPromptZH
	}

	var buf bytes.Buffer
	data := struct{ Title, Abstract string }{Title: p.Title, Abstract: p.Abstract}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
