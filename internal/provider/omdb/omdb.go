package omdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/John-Robertt/buscafilme/internal/domain"
	providerx "github.com/John-Robertt/buscafilme/internal/provider"
)

const maxReasonLen = 200

// Provider 实现 OMDb 的按标题查询（?t=）。
//
// 约束：
// - 一次查询只发一个 GET；只使用 client 默认请求头
// - 搜索词原样放进 t 参数（只做 URL 编码，不做校验/裁剪）
// - Parse 必须是纯函数（只依赖输入 body）
type Provider struct {
	BaseURL string
	APIKey  string
}

func (Provider) Name() string { return "omdb" }

// BuildURL 构造 <base>?t=<query>&apikey=<key>。
// base 自带的 query 参数会保留在前面；t 固定在 apikey 之前。
func BuildURL(base, apiKey, query string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", &providerx.ArgumentError{Value: base, Err: errors.New("base_url 为空")}
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", &providerx.ArgumentError{Value: base, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &providerx.ArgumentError{Value: base, Err: fmt.Errorf("scheme 必须是 http/https，实际是 %q", u.Scheme)}
	}
	if u.Host == "" {
		return "", &providerx.ArgumentError{Value: base, Err: errors.New("缺少 host")}
	}

	q := "t=" + url.QueryEscape(query) + "&apikey=" + url.QueryEscape(apiKey)
	if u.RawQuery != "" {
		q = u.RawQuery + "&" + q
	}
	u.RawQuery = q
	u.Fragment = ""
	return u.String(), nil
}

// RedactURL 把 apikey 参数值替换为 ***，用于日志输出。
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	parts := strings.Split(u.RawQuery, "&")
	for i, p := range parts {
		if strings.HasPrefix(p, "apikey=") {
			parts[i] = "apikey=***"
		}
	}
	u.RawQuery = strings.Join(parts, "&")
	return u.String()
}

func (p Provider) Fetch(ctx context.Context, query string, c *http.Client) ([]byte, string, error) {
	if c == nil {
		return nil, "", errors.New("http client 不能为空")
	}
	reqURL, err := BuildURL(p.BaseURL, p.APIKey, query)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, reqURL, &providerx.ArgumentError{Value: reqURL, Err: err}
	}
	resp, err := c.Do(req)
	if err != nil {
		// *url.Error 的文本带完整 URL，apikey 不能跟着错误信息输出。
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = RedactURL(ue.URL)
		}
		return nil, reqURL, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, reqURL, fmt.Errorf("读取响应失败：%w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, reqURL, &providerx.HTTPStatusError{
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Reason:     errorReason(body, resp.Header.Get("Content-Type")),
		}
	}
	return body, reqURL, nil
}

// Parse 把响应体反序列化为 TitleRecord。
// Response=="False" 视为业务失败（例如 "Movie not found!"）。
func (Provider) Parse(body []byte) (domain.TitleRecord, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.TitleRecord{}, errors.New("响应体为空")
	}
	var rec domain.TitleRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return domain.TitleRecord{}, err
	}
	if !rec.Found() {
		return domain.TitleRecord{}, &providerx.APIError{Message: rec.Error}
	}
	return rec, nil
}

// errorReason 从非 2xx 响应体中提取一句可读的原因。
// OMDb 自己的错误是 JSON；网关/代理返回的通常是 HTML 页面，取 <title>。
func errorReason(body []byte, contentType string) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if trimmed[0] == '{' {
		var e struct {
			Error string `json:"Error"`
		}
		if err := json.Unmarshal(trimmed, &e); err == nil {
			return truncate(normSpace(e.Error), maxReasonLen)
		}
	}

	if !looksLikeHTML(trimmed, contentType) {
		return truncate(normSpace(string(trimmed)), maxReasonLen)
	}

	r, err := charset.NewReader(bytes.NewReader(trimmed), contentType)
	if err != nil {
		r = bytes.NewReader(trimmed)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ""
	}
	reason := normSpace(doc.Find("title").First().Text())
	if reason == "" {
		reason = normSpace(doc.Find("h1").First().Text())
	}
	return truncate(reason, maxReasonLen)
}

func looksLikeHTML(b []byte, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	return b[0] == '<'
}

func normSpace(s string) string { return strings.Join(strings.Fields(s), " ") }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
