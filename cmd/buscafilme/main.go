package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/John-Robertt/buscafilme/internal/app/run"
	"github.com/John-Robertt/buscafilme/internal/config"
)

// envDebug 非空时把调试日志写到 stderr。
const envDebug = "BUSCAFILME_DEBUG"

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取当前目录失败：%v\n", err)
		os.Exit(1)
	}
	if code := runMain(cwd, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv); code != 0 {
		os.Exit(code)
	}
}

// runMain 是可测试的入口：返回进程退出码。
//
// 退出码约定：
// - 0：流程结束（包括已处理的查询失败）
// - 1：配置加载失败（流程尚未开始）
// - 2：命令行参数错误
func runMain(cwd string, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) int {
	if len(args) > 0 {
		if isHelp(args[0]) {
			printUsage(stdout)
			return 0
		}
		fmt.Fprintf(stderr, "未知参数：%q\n\n", args[0])
		printUsage(stderr)
		return 2
	}

	logger := newLogger(stderr, getenv)

	eff, err := config.LoadEffective(cwd, getenv)
	if err != nil {
		fmt.Fprintf(stderr, "加载配置失败：%v\n", err)
		return 1
	}
	logger.Printf("config sources=%s base_url=%s timeout=%s proxy=%s",
		strings.Join(eff.Sources, ","), eff.BaseURL, formatTimeout(eff), formatProxy(eff.ProxyURL))

	run.ExecuteWithObserver(context.Background(), eff, stdin, newConsole(stdout), run.Options{Logger: logger})
	return 0
}

func newLogger(stderr io.Writer, getenv func(string) string) *log.Logger {
	if getenv == nil || strings.TrimSpace(getenv(envDebug)) == "" {
		return log.New(io.Discard, "", 0)
	}
	return log.New(stderr, "[debug] ", log.Ltime|log.Lmsgprefix)
}

func isHelp(s string) bool {
	return s == "-h" || s == "--help" || s == "help"
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Uso:
  buscafilme

Lê o título de um filme da entrada padrão, consulta a OMDb e imprime o resultado.

Configuração (opcional, em ordem crescente de prioridade):
  buscafilme.json   base_url, api_key, timeout, proxy.url
  .env              OMDB_BASE_URL, OMDB_API_KEY, OMDB_TIMEOUT, OMDB_PROXY_URL
  ambiente          as mesmas variáveis; BUSCAFILME_DEBUG=1 ativa logs no stderr
`)
}

func formatTimeout(eff config.EffectiveConfig) string {
	if eff.Timeout <= 0 {
		return "none"
	}
	return eff.Timeout.String()
}

// formatProxy 不输出代理中的账号密码。
func formatProxy(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "off"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "on"
	}
	auth := "off"
	if u.User != nil {
		auth = "on"
	}
	return fmt.Sprintf("on (%s://%s, auth=%s)", u.Scheme, u.Host, auth)
}
