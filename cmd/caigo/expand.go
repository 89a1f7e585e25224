package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"

	"github.com/caigo-ai/caigo/internal/utils"
)

var (
	fileRefPattern   = regexp.MustCompile(`\{([^}]+)\}`)
	remoteRefPattern = regexp.MustCompile(`\[([^\]]+)\]`)
)

// expandFileRefs replaces every {path} placeholder whose path is a readable
// file with the file's content in a code fence. Unreadable paths are left
// untouched.
func expandFileRefs(message string) string {
	return fileRefPattern.ReplaceAllStringFunc(message, func(match string) string {
		path := match[1 : len(match)-1]
		content, err := os.ReadFile(path)
		if err != nil {
			return match
		}
		return fmt.Sprintf("```%s```", content)
	})
}

// expandRemoteRefs replaces every [url] placeholder with the fetched page
// body. Unfetchable URLs are left untouched.
func expandRemoteRefs(message string) string {
	return remoteRefPattern.ReplaceAllStringFunc(message, func(match string) string {
		url := match[1 : len(match)-1]
		resp, err := http.Get(url)
		if err != nil {
			return match
		}
		defer utils.CloseWithLog(resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return match
		}
		content, err := io.ReadAll(resp.Body)
		if err != nil {
			return match
		}
		return string(content)
	})
}
