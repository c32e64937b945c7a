package provider

import (
	"context"
	"net/http"

	"github.com/John-Robertt/buscafilme/internal/domain"
)

// Provider 把“远端接口细节”限制在 provider 包内部；核心流程只依赖统一接口与 TitleRecord。
//
// 约束：
// - Fetch 只发一次请求：不做缓存、不做重试、不加额外请求头
// - Fetch 在 HTTP 非 2xx 时也要尽量返回 body（用于诊断输出）
// - Parse 必须是纯函数：相同输入 => 相同输出
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string, c *http.Client) (body []byte, requestURL string, err error)
	Parse(body []byte) (domain.TitleRecord, error)
}
