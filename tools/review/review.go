// Package review builds review prompts from local files or web pages and
// runs them through a provider.
package review

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/caigo-ai/caigo/handlers"
	"github.com/caigo-ai/caigo/internal/utils"
	"github.com/caigo-ai/caigo/providers/ai"
)

// maxFetchSize caps how much of a remote page is read before conversion.
const maxFetchSize = 4 * 1024 * 1024

const promptTemplate = "please review the following content and point out problems, risks, and possible improvements. answer concisely.\n\n%s"

// Request identifies what to review. Exactly one of Path or URL should be
// set; Path wins when both are.
type Request struct {
	Path string
	URL  string
}

// Result carries the review text for a request.
type Result struct {
	From   Request
	Review string
}

// BuildPrompt loads the request's content and wraps it in a review prompt.
// URL content is fetched over client and converted from HTML to markdown
// before inclusion.
func BuildPrompt(ctx context.Context, client *http.Client, request Request) (ai.Prompt, error) {
	content, err := loadContent(ctx, client, request)
	if err != nil {
		return ai.Prompt{}, err
	}
	return ai.Ask(fmt.Sprintf(promptTemplate, content)), nil
}

func loadContent(ctx context.Context, client *http.Client, request Request) (string, error) {
	switch {
	case request.Path != "":
		raw, err := os.ReadFile(request.Path)
		if err != nil {
			return "", fmt.Errorf("reading review target %s: %w", request.Path, err)
		}
		return string(raw), nil
	case request.URL != "":
		return fetchAsMarkdown(ctx, client, request.URL)
	}
	return "", fmt.Errorf("review request needs a file path or URL")
}

// fetchAsMarkdown downloads a page and converts its HTML to markdown so the
// prompt carries readable text instead of markup.
func fetchAsMarkdown(ctx context.Context, client *http.Client, url string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	// Normalize partial URLs like "example.com/post".
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building fetch request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	markdown, err := htmltomarkdown.ConvertString(string(raw))
	if err != nil {
		return "", fmt.Errorf("converting %s to markdown: %w", url, err)
	}
	return strings.TrimSpace(markdown), nil
}

// Review builds the prompt for request and streams the provider's answer
// into a recorder.
func Review(ctx context.Context, provider ai.Provider, client *http.Client, request Request) (Result, error) {
	prompt, err := BuildPrompt(ctx, client, request)
	if err != nil {
		return Result{}, err
	}

	recorder := handlers.NewRecorder()
	if err := provider.RequestMut(ctx, prompt, recorder); err != nil {
		return Result{}, err
	}

	return Result{From: request, Review: recorder.Take()}, nil
}
