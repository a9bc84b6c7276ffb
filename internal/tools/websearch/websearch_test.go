package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result">
  <a class="result__a" href="https://example.com/case-1">合同违约判例汇编</a>
  <div class="result__snippet">关于违约责任的典型判例。</div>
</div>
<div class="result">
  <a class="result__a" href="https://example.com/case-2">保密协议合规指引</a>
  <div class="result__snippet">监管机构发布的合规指引。</div>
</div>
<div class="result">
  <a class="result__a" href="https://example.com/case-3">劳动合同案例</a>
  <div class="result__snippet">劳动争议相关案例。</div>
</div>
</body></html>`

func newTestTool(t *testing.T, handler http.HandlerFunc, maxResults int) *DuckDuckGo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{Endpoint: srv.URL, MaxResults: maxResults, RateLimit: 100})
}

func TestSearchParsesResults(t *testing.T) {
	tool := newTestTool(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "违约责任", r.URL.Query().Get("q"))
		w.Write([]byte(resultsPage))
	}, 5)

	results, err := tool.Search(context.Background(), "违约责任")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "合同违约判例汇编", results[0].Title)
	assert.Equal(t, "https://example.com/case-1", results[0].Link)
	assert.Equal(t, "关于违约责任的典型判例。", results[0].Snippet)
}

func TestSearchHonorsMaxResults(t *testing.T) {
	tool := newTestTool(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(resultsPage))
	}, 2)

	results, err := tool.Search(context.Background(), "判例")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestCallFormatsResults(t *testing.T) {
	tool := newTestTool(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(resultsPage))
	}, 1)

	out, err := tool.Call(context.Background(), "判例")
	require.NoError(t, err)
	assert.Contains(t, out, "1. 合同违约判例汇编")
	assert.Contains(t, out, "https://example.com/case-1")
}

func TestSearchEmptyQuery(t *testing.T) {
	tool := New(Config{})
	_, err := tool.Search(context.Background(), "   ")
	assert.Error(t, err)
}

func TestSearchServerError(t *testing.T) {
	tool := newTestTool(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, 5)

	_, err := tool.Search(context.Background(), "判例")
	assert.Error(t, err)
}
