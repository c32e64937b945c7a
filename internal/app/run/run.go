package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/John-Robertt/buscafilme/internal/config"
	"github.com/John-Robertt/buscafilme/internal/domain"
	"github.com/John-Robertt/buscafilme/internal/infra/httpx"
	"github.com/John-Robertt/buscafilme/internal/prompt"
	"github.com/John-Robertt/buscafilme/internal/provider"
	"github.com/John-Robertt/buscafilme/internal/provider/omdb"
)

// Options 允许上层（CLI/测试）替换默认依赖。零值即生产行为。
type Options struct {
	// Logger 为 nil 时不输出调试日志。
	Logger *log.Logger
	// Client 为 nil 时按 eff 构造（代理/超时）。
	Client *http.Client
	// Provider 为 nil 时使用 omdb.Provider{BaseURL: eff.BaseURL, APIKey: eff.APIKey}。
	Provider provider.Provider
}

// Execute 执行一次查询流程：读取输入 -> 请求 -> 解析 -> 转换。
func Execute(ctx context.Context, eff config.EffectiveConfig, in io.Reader, opts Options) domain.Outcome {
	return ExecuteWithObserver(ctx, eff, in, nil, opts)
}

// ExecuteWithObserver 与 Execute 相同，但会把各阶段产物以事件形式发给 obs。
//
// 流程是线性的；任何阶段失败都直接跳到结束，错误只归类为两种：
// invalid_argument（请求地址无法构造）与 operation_failed（其它）。
// 错误不会向上抛出，调用方从 Outcome 读取结果。
func ExecuteWithObserver(ctx context.Context, eff config.EffectiveConfig, in io.Reader, obs Observer, opts Options) domain.Outcome {
	started := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if obs == nil {
		obs = nopObserver{}
	}

	obs.OnPrompt()
	out := execute(ctx, eff, in, obs, opts, logger)
	if !out.OK() {
		obs.OnFailed(out.ErrorKind, out.Err)
		logger.Printf("failed kind=%s err=%v (%s)", out.ErrorKind, out.Err, time.Since(started).Round(time.Millisecond))
	} else {
		logger.Printf("ok title=%q (%s)", out.Title.Title, time.Since(started).Round(time.Millisecond))
	}
	obs.OnFinished(out)
	return out
}

func execute(ctx context.Context, eff config.EffectiveConfig, in io.Reader, obs Observer, opts Options, logger *log.Logger) domain.Outcome {
	var out domain.Outcome

	query, err := prompt.ReadLine(in)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return failed(out, fmt.Errorf("读取输入失败：%w", err))
		}
		logger.Printf("stdin 已结束，按空搜索词继续")
	}
	out.Query = query

	client := opts.Client
	if client == nil {
		c, err := httpx.NewClient(httpx.Options{
			ProxyURL: eff.ProxyURL,
			Timeout:  eff.Timeout,
			Logger:   logger,
			Redact:   omdb.RedactURL,
		})
		if err != nil {
			return failed(out, fmt.Errorf("初始化 http client 失败：%w", err))
		}
		client = c
	}

	p := opts.Provider
	if p == nil {
		p = omdb.Provider{BaseURL: eff.BaseURL, APIKey: eff.APIKey}
	}

	rec, reqURL, body, err := provider.FetchParse(ctx, p, query, client)
	out.RequestURL = reqURL
	out.Body = body
	if body != nil {
		obs.OnBody(body)
	}
	if err != nil {
		return failed(out, err)
	}

	out.Record = &rec
	obs.OnRecord(rec)

	t := domain.NewTitle(rec)
	out.Title = &t
	obs.OnTitle(t)
	return out
}

func failed(out domain.Outcome, err error) domain.Outcome {
	out.ErrorKind = Classify(err)
	out.Err = err
	return out
}

// Classify 把流程中的错误归为 domain.ErrKind* 之一。
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if provider.IsArgument(err) {
		return domain.ErrKindInvalidArgument
	}
	return domain.ErrKindOperationFailed
}
