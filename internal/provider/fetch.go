package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/John-Robertt/buscafilme/internal/domain"
)

const (
	StageFetch = "fetch"
	StageParse = "parse"
)

// Error 是 provider 阶段的可追溯错误。
// 上层可以据此判断失败发生在 fetch 还是 parse。
type Error struct {
	Provider string
	Stage    string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider=%s stage=%s: %v", e.Provider, e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Stage 从 error 中提取失败阶段；若不是 *Error 则返回空串。
func Stage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}

// FetchParse 按 fetch -> parse 的顺序执行一次查询。
//
// 返回值：
// - rec：解析得到的远端记录
// - requestURL：实际请求的地址（构造失败时为空）
// - body：抓取到的原始响应体（fetch 失败时也可能非空，用于诊断）
func FetchParse(ctx context.Context, p Provider, query string, c *http.Client) (rec domain.TitleRecord, requestURL string, body []byte, err error) {
	if p == nil {
		return domain.TitleRecord{}, "", nil, errors.New("provider 不能为空")
	}
	name := p.Name()

	body, requestURL, err = p.Fetch(ctx, query, c)
	if err != nil {
		return domain.TitleRecord{}, requestURL, body, &Error{Provider: name, Stage: StageFetch, Err: err}
	}

	rec, err = p.Parse(body)
	if err != nil {
		return domain.TitleRecord{}, requestURL, body, &Error{Provider: name, Stage: StageParse, Err: err}
	}
	return rec, requestURL, body, nil
}
