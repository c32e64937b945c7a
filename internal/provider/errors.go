package provider

import (
	"errors"
	"fmt"
	"strings"
)

// ArgumentError 表示请求地址无法由配置 + 搜索词构造出来。
// 上层据此归类为 invalid_argument（而不是 operation_failed）。
type ArgumentError struct {
	Value string
	Err   error
}

func (e *ArgumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("非法请求地址 %q：%v", e.Value, e.Err)
	}
	return fmt.Sprintf("非法请求地址 %q", e.Value)
}

func (e *ArgumentError) Unwrap() error { return e.Err }

func IsArgument(err error) bool {
	var e *ArgumentError
	return errors.As(err, &e)
}

// HTTPStatusError 表示站点返回了非 2xx 的 HTTP 状态码。
// Reason 来自响应体（JSON 的 Error 字段或 HTML 页面标题），可能为空。
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Reason     string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	reason := strings.TrimSpace(e.Reason)
	if reason == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, reason)
}

// APIError 表示接口以 2xx 返回了业务失败（OMDb: Response=="False"）。
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e == nil || strings.TrimSpace(e.Message) == "" {
		return "API returned Response=False"
	}
	return strings.TrimSpace(e.Message)
}
