package httpx

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Transport 在底层 http.Transport 之上只做一件事：记录请求与耗时。
//
// 约束：
// - 不重试、不改写请求头（请求只带 client 默认头）
// - 日志中的 URL 先经过 Redact（避免把 apikey 写进日志）
type Transport struct {
	Base http.RoundTripper

	Logger *log.Logger
	Redact func(string) string
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	if t.Base == nil {
		return nil, errors.New("nil base transport")
	}

	started := time.Now()
	u := req.URL.String()
	if t.Redact != nil {
		u = t.Redact(u)
	}
	t.logf("-> %s %s", req.Method, u)

	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		t.logf("<- %s %s error=%v (%s)", req.Method, u, err, time.Since(started).Round(time.Millisecond))
		return nil, err
	}
	t.logf("<- %s %s status=%d (%s)", req.Method, u, resp.StatusCode, time.Since(started).Round(time.Millisecond))
	return resp, nil
}

func (t *Transport) logf(format string, args ...any) {
	if t.Logger == nil {
		return
	}
	t.Logger.Printf(format, args...)
}

// Options 描述 client 的网络策略。零值即“默认代理策略、无超时、不记录日志”。
type Options struct {
	// ProxyURL 非空时所有请求走该代理；为空时沿用 HTTP_PROXY/HTTPS_PROXY/NO_PROXY。
	ProxyURL string
	// Timeout<=0 表示不设置总超时（阻塞直到完成或失败）。
	Timeout time.Duration

	Logger *log.Logger
	Redact func(string) string
}

// NewClient 构造查询用的 HTTP client。
func NewClient(opts Options) (*http.Client, error) {
	base := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	proxyURL := strings.TrimSpace(opts.ProxyURL)
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, errors.New("proxy url 缺少 scheme 或 host")
		}
		base.Proxy = http.ProxyURL(u)
	}

	timeout := opts.Timeout
	if timeout < 0 {
		timeout = 0
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &http.Client{
		Transport: &Transport{
			Base:   base,
			Logger: logger,
			Redact: opts.Redact,
		},
		Timeout: timeout,
	}, nil
}
