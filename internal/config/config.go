package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// ErrCodeInvalid 表示配置文件/环境变量无法读取、解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

const (
	// DefaultBaseURL 是 OMDb 接口地址的内置默认值。
	DefaultBaseURL = "http://www.omdbapi.com/"
	// DefaultAPIKey 是内置的静态 apikey（随请求 URL 发送）。
	DefaultAPIKey = "3f05bd88"

	FileName    = "buscafilme.json"
	EnvFileName = ".env"
)

// 环境变量名（.env 中使用同样的名字）。
const (
	EnvBaseURL  = "OMDB_BASE_URL"
	EnvAPIKey   = "OMDB_API_KEY"
	EnvTimeout  = "OMDB_TIMEOUT"
	EnvProxyURL = "OMDB_PROXY_URL"
)

// FileConfig 对应 buscafilme.json 的解析结构。
type FileConfig struct {
	BaseURL string       `json:"base_url"`
	APIKey  string       `json:"api_key"`
	Timeout string       `json:"timeout"` // time.ParseDuration 格式，例如 "15s"
	Proxy   *ProxyConfig `json:"proxy"`
}

type ProxyConfig struct {
	URL string `json:"url"`
}

// EffectiveConfig 是合并后的最终配置（实现层直接消费，不再做二次默认/优先级判断）。
//
// BaseURL 在这里不做校验：非法地址要在查询流程里以 invalid_argument 的形式暴露。
type EffectiveConfig struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	ProxyURL string

	// Sources 按生效顺序列出参与合并的来源（仅用于调试日志）。
	Sources []string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s：%q 无效：%v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s：%q 无效", e.Code, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 读取 cwd 下的可选配置并与环境变量合并为最终配置。
//
// 覆盖优先级（固定）：
// 进程环境变量 > <cwd>/.env > <cwd>/buscafilme.json > 内置默认值
//
// .env 只被读取，不会写回进程环境。getenv 为 nil 时使用 os.Getenv。
func LoadEffective(cwd string, getenv func(string) string) (EffectiveConfig, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	eff := EffectiveConfig{
		BaseURL: DefaultBaseURL,
		APIKey:  DefaultAPIKey,
		Sources: []string{"defaults"},
	}

	cfgPath := filepath.Join(cwdAbs, FileName)
	fc, exists, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	if exists {
		if err := applyFile(&eff, fc); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
		eff.Sources = append(eff.Sources, cfgPath)
	}

	envPath := filepath.Join(cwdAbs, EnvFileName)
	dotenv, err := readDotEnv(envPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: envPath, Err: err}
	}
	if dotenv != nil {
		eff.Sources = append(eff.Sources, envPath)
	}

	lookup := func(key string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}
	if err := applyEnv(&eff, lookup); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: envPath, Err: err}
	}
	return eff, nil
}

func applyFile(eff *EffectiveConfig, fc FileConfig) error {
	if v := strings.TrimSpace(fc.BaseURL); v != "" {
		eff.BaseURL = v
	}
	if v := strings.TrimSpace(fc.APIKey); v != "" {
		eff.APIKey = v
	}
	if v := strings.TrimSpace(fc.Timeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("timeout 无效：%w", err)
		}
		eff.Timeout = d
	}
	if fc.Proxy != nil {
		if v := strings.TrimSpace(fc.Proxy.URL); v != "" {
			if err := validateProxy(v); err != nil {
				return fmt.Errorf("proxy.url 无效：%w", err)
			}
			eff.ProxyURL = v
		}
	}
	return nil
}

func applyEnv(eff *EffectiveConfig, lookup func(string) string) error {
	if v := lookup(EnvBaseURL); v != "" {
		eff.BaseURL = v
	}
	if v := lookup(EnvAPIKey); v != "" {
		eff.APIKey = v
	}
	if v := lookup(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s 无效：%w", EnvTimeout, err)
		}
		eff.Timeout = d
	}
	if v := lookup(EnvProxyURL); v != "" {
		if err := validateProxy(v); err != nil {
			return fmt.Errorf("%s 无效：%w", EnvProxyURL, err)
		}
		eff.ProxyURL = v
	}
	return nil
}

// parseTimeout 接受 time.ParseDuration 格式；"0" 表示不设超时。
func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("不能为负数：%s", s)
	}
	return d, nil
}

func validateProxy(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("缺少 scheme 或 host：%q", raw)
	}
	return nil
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}

// readDotEnv 读取 .env；文件不存在时返回 (nil, nil)。
func readDotEnv(path string) (map[string]string, error) {
	m, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}
