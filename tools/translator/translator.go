// Package translator translates text through a provider, optionally
// splitting long sources into independently translated segments.
package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/caigo-ai/caigo/handlers"
	"github.com/caigo-ai/caigo/providers/ai"
)

// TargetLang identifies the translation target.
type TargetLang string

const (
	English  TargetLang = "en"
	Japanese TargetLang = "ja"
)

// Request describes one translation job. Build it with [NewRequest] and the
// chainable setters.
type Request struct {
	source     string
	targetLang TargetLang

	// Separator runes mark segment candidates. A segment closes once it
	// contains separatePerLimit separator occurrences.
	separators       []rune
	separatePerLimit int
}

// Result pairs the originating request with the translated text, segment
// translations joined in input order.
type Result struct {
	From       Request
	Translated string
}

// NewRequest returns a Request translating source into targetLang as a single
// segment. Configure splitting with [Request.Separators] and
// [Request.SeparatePerLimit].
func NewRequest(source string, targetLang TargetLang) Request {
	return Request{
		source:           source,
		targetLang:       targetLang,
		separatePerLimit: 1,
	}
}

// Separators sets the runes that end a sentence. With no separators the
// source is translated whole.
func (r Request) Separators(separators []rune) Request {
	r.separators = separators
	return r
}

// SeparatePerLimit sets how many separator occurrences one segment may
// contain before the next sentence starts a new segment. With separators
// [',', '!', '?'] and a limit of 2, "hello, world! Are you okay?" splits
// into "hello, world!" and "Are you okay?".
func (r Request) SeparatePerLimit(limit int) Request {
	r.separatePerLimit = limit
	return r
}

// Prompts builds one translation prompt per segment.
func (r Request) Prompts() []ai.Prompt {
	segments := r.segments()
	prompts := make([]ai.Prompt, 0, len(segments))
	for _, segment := range segments {
		prompts = append(prompts, translatePrompt(segment, r.targetLang))
	}
	return prompts
}

// segments splits the source at separator runes, keeping each separator
// attached to the sentence it ends, then merges adjacent sentences until the
// per-segment separator budget is used up.
func (r Request) segments() []string {
	if len(r.separators) == 0 {
		return []string{r.source}
	}

	isSeparator := func(c rune) bool {
		for _, sep := range r.separators {
			if c == sep {
				return true
			}
		}
		return false
	}

	var sentences []string
	rest := r.source
	for len(rest) > 0 {
		cut := strings.IndexFunc(rest, isSeparator)
		if cut < 0 {
			sentences = append(sentences, rest)
			break
		}
		_, width := utf8.DecodeRuneInString(rest[cut:])
		end := cut + width
		sentences = append(sentences, rest[:end])
		rest = rest[end:]
	}

	var segments []string
	for _, sentence := range sentences {
		if sentence == "" {
			continue
		}
		if len(segments) == 0 {
			segments = append(segments, sentence)
			continue
		}
		last := segments[len(segments)-1]
		count := 0
		for _, c := range last {
			if isSeparator(c) {
				count++
			}
		}
		if count < r.separatePerLimit {
			segments[len(segments)-1] = last + sentence
		} else {
			segments = append(segments, strings.TrimSpace(sentence))
		}
	}
	return segments
}

func translatePrompt(source string, targetLang TargetLang) ai.Prompt {
	return ai.Ask(fmt.Sprintf(
		"please translate '%s' to %s. you should answer only in the target language and result.",
		source, targetLang,
	))
}

// Translate runs every segment prompt against the provider concurrently and
// joins the translations in input order. Any failed segment fails the whole
// batch.
func Translate(ctx context.Context, provider ai.Provider, request Request) (Result, error) {
	prompts := request.Prompts()
	translations := make([]string, len(prompts))
	errs := make([]error, len(prompts))

	var wg sync.WaitGroup
	for i, prompt := range prompts {
		wg.Add(1)
		go func(i int, prompt ai.Prompt) {
			defer wg.Done()
			recorder := handlers.NewRecorder()
			if err := provider.RequestMut(ctx, prompt, recorder); err != nil {
				errs[i] = err
				return
			}
			translations[i] = recorder.Take()
		}(i, prompt)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return Result{}, fmt.Errorf("translating segment %d: %w", i, err)
		}
	}

	return Result{
		From:       request,
		Translated: strings.Join(translations, " "),
	}, nil
}
