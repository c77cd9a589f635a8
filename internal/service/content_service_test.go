package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/slidegen-api/internal/generation"
	"github.com/phrazzld/slidegen-api/internal/prompt"
	"github.com/phrazzld/slidegen-api/internal/session"
)

// stubClient implements generation.Client with a configurable response.
type stubClient struct {
	mu       sync.Mutex
	prompts  []string
	generate func(ctx context.Context, prompt string) (*generation.Response, error)
}

func (c *stubClient) Generate(ctx context.Context, prompt string) (*generation.Response, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()
	return c.generate(ctx, prompt)
}

func fixedResponse(content string) func(context.Context, string) (*generation.Response, error) {
	return func(context.Context, string) (*generation.Response, error) {
		return &generation.Response{
			Content:          content,
			PromptTokens:     120,
			CompletionTokens: 80,
			TotalTokens:      200,
			Model:            "test-model",
			Provider:         "test",
		}, nil
	}
}

func newTestService(t *testing.T, client generation.Client) (*ContentService, *session.Manager) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := session.NewStore(session.StoreTypeMemory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	manager := session.NewManager(store, time.Hour, 5, logger)

	assembler, err := prompt.NewAssembler(0.10)
	require.NoError(t, err)

	svc, err := NewContentService(manager, assembler, client, 30*time.Second, logger)
	require.NoError(t, err)
	return svc, manager
}

func TestGenerateTextSuccess(t *testing.T) {
	t.Parallel()

	client := &stubClient{generate: fixedResponse("```html\n<p>one two three four five</p>\n```")}
	svc, manager := newTestService(t, client)

	result, err := svc.GenerateText(context.Background(), TextRequest{
		PresentationID: "p1",
		SlideID:        "s1",
		SlideNumber:    1,
		Topics:         []string{"Revenue Growth", "Margins"},
		Narrative:      "quarterly results",
		Theme:          "finance",
		WordCount:      5,
	})
	require.NoError(t, err)

	// Code fences are stripped before analysis.
	assert.Equal(t, "<p>one two three four five</p>", result.Content)
	assert.Equal(t, 5, result.Analysis.WordCount)
	assert.Equal(t, 5, result.Analysis.TargetWordCount)
	assert.True(t, result.Analysis.WithinTolerance)
	assert.Equal(t, []string{"p"}, result.Analysis.HTMLTagsUsed)
	assert.Equal(t, "test-model", result.Stats.Model)
	assert.Equal(t, 200, result.Stats.TotalTokens)

	info, err := manager.Describe(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, info.SlidesInContext)
}

func TestGenerateTextSummaryFeedsNextPrompt(t *testing.T) {
	t.Parallel()

	client := &stubClient{generate: fixedResponse("<p>alpha beta gamma</p>")}
	svc, _ := newTestService(t, client)

	_, err := svc.GenerateText(context.Background(), TextRequest{
		PresentationID: "p1",
		SlideID:        "s1",
		SlideNumber:    1,
		SlideTitle:     "Opening",
		Topics:         []string{"Market Overview"},
		WordCount:      3,
	})
	require.NoError(t, err)

	_, err = svc.GenerateText(context.Background(), TextRequest{
		PresentationID: "p1",
		SlideID:        "s2",
		SlideNumber:    2,
		Topics:         []string{"Competition"},
		WordCount:      3,
	})
	require.NoError(t, err)

	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[0], "This is the first slide in the presentation.")
	assert.Contains(t, client.prompts[1], "Slide 1 (Opening): Market Overview - 3 words covering 1 topics")
}

func TestGenerateTextProviderFailure(t *testing.T) {
	t.Parallel()

	client := &stubClient{generate: func(context.Context, string) (*generation.Response, error) {
		return nil, errors.New("upstream 500")
	}}
	svc, manager := newTestService(t, client)

	_, err := svc.GenerateText(context.Background(), TextRequest{
		PresentationID: "p1",
		SlideID:        "s1",
		SlideNumber:    1,
		Topics:         []string{"A"},
		WordCount:      10,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)

	// The session exists (get-or-create ran) but no slide was recorded.
	info, err := manager.Describe(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, info.SlidesInContext)
}

func TestGenerateTableSuccess(t *testing.T) {
	t.Parallel()

	html := `<table class="data"><thead><tr><th>Region</th><th>Revenue</th></tr></thead>` +
		`<tbody><tr><td>NA</td><td>45.2</td></tr><tr><td>EU</td><td>32.1</td></tr></tbody></table>`
	client := &stubClient{generate: fixedResponse(html)}
	svc, manager := newTestService(t, client)

	result, err := svc.GenerateTable(context.Background(), TableRequest{
		PresentationID: "p1",
		SlideID:        "s1",
		SlideNumber:    1,
		Description:    "Revenue by region",
		Data:           map[string]any{"NA": 45.2, "EU": 32.1},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Analysis.Rows)
	assert.Equal(t, 2, result.Analysis.Columns)
	assert.True(t, result.Analysis.HasHeader)

	info, err := manager.Describe(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, info.SlidesInContext)
}

func TestNewContentServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	svc, err := NewContentService(nil, nil, nil, 0, nil)
	assert.Nil(t, svc)
	assert.Error(t, err)
}

func TestGenerateTableSummaryFormat(t *testing.T) {
	t.Parallel()

	html := `<table><tr><th>A</th></tr><tr><td>1</td></tr></table>`
	client := &stubClient{generate: fixedResponse(html)}
	svc, _ := newTestService(t, client)

	_, err := svc.GenerateTable(context.Background(), TableRequest{
		PresentationID: "p1",
		SlideID:        "s1",
		SlideNumber:    1,
		Description:    "scores",
	})
	require.NoError(t, err)

	_, err = svc.GenerateTable(context.Background(), TableRequest{
		PresentationID: "p1",
		SlideID:        "s2",
		SlideNumber:    2,
		Description:    "more scores",
	})
	require.NoError(t, err)

	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], "Table: scores (1x1)")
}

func TestGenerateTextTimeoutWrapped(t *testing.T) {
	t.Parallel()

	client := &stubClient{generate: func(ctx context.Context, _ string) (*generation.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := session.NewStore(session.StoreTypeMemory)
	require.NoError(t, err)
	manager := session.NewManager(store, time.Hour, 5, logger)
	assembler, err := prompt.NewAssembler(0)
	require.NoError(t, err)

	svc, err := NewContentService(manager, assembler, client, 10*time.Millisecond, logger)
	require.NoError(t, err)

	_, err = svc.GenerateText(context.Background(), TextRequest{
		PresentationID: "p1",
		SlideID:        "s1",
		SlideNumber:    1,
		Topics:         []string{"A"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestGenerateTextBatchParallel(t *testing.T) {
	t.Parallel()

	client := &stubClient{generate: fixedResponse("<p>word word word</p>")}
	svc, manager := newTestService(t, client)

	reqs := make([]TextRequest, 4)
	for i := range reqs {
		reqs[i] = TextRequest{
			PresentationID: "shared",
			SlideID:        "s" + strings.Repeat("x", i+1),
			SlideNumber:    i + 1,
			Topics:         []string{"T"},
			WordCount:      3,
		}
	}

	items := svc.GenerateTextBatch(context.Background(), reqs, true)
	require.Len(t, items, 4)
	for i, item := range items {
		assert.Equal(t, i, item.Index)
		require.NoError(t, item.Err)
		require.NotNil(t, item.Result)
	}

	// All four appends landed despite concurrency.
	info, err := manager.Describe(context.Background(), "shared")
	require.NoError(t, err)
	assert.Equal(t, 4, info.SlidesInContext)
}

func TestGenerateTextBatchPartialFailure(t *testing.T) {
	t.Parallel()

	client := &stubClient{generate: func(_ context.Context, prompt string) (*generation.Response, error) {
		if strings.Contains(prompt, "Broken Slide") {
			return nil, errors.New("provider rejected request")
		}
		return &generation.Response{Content: "<p>ok</p>", Model: "m", Provider: "test"}, nil
	}}
	svc, _ := newTestService(t, client)

	reqs := []TextRequest{
		{PresentationID: "p1", SlideID: "a", SlideNumber: 1, Topics: []string{"Fine"}},
		{PresentationID: "p1", SlideID: "b", SlideNumber: 2, Topics: []string{"X"}, SlideTitle: "Broken Slide"},
		{PresentationID: "p1", SlideID: "c", SlideNumber: 3, Topics: []string{"Fine"}},
	}

	items := svc.GenerateTextBatch(context.Background(), reqs, false)
	require.Len(t, items, 3)
	assert.NoError(t, items[0].Err)
	assert.ErrorIs(t, items[1].Err, generation.ErrGenerationFailed)
	assert.NoError(t, items[2].Err)
}

func TestGenerateTableBatchSequentialOrder(t *testing.T) {
	t.Parallel()

	client := &stubClient{generate: fixedResponse("<table><tr><td>1</td></tr></table>")}
	svc, _ := newTestService(t, client)

	reqs := []TableRequest{
		{PresentationID: "p1", SlideID: "a", SlideNumber: 1, Description: "first"},
		{PresentationID: "p1", SlideID: "b", SlideNumber: 2, Description: "second"},
	}

	items := svc.GenerateTableBatch(context.Background(), reqs, false)
	require.Len(t, items, 2)
	require.NoError(t, items[0].Err)
	require.NoError(t, items[1].Err)

	// Sequential mode preserves submission order in the prompts.
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[0], "first")
	assert.Contains(t, client.prompts[1], "second")
}
