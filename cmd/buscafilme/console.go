package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/John-Robertt/buscafilme/internal/app/run"
	"github.com/John-Robertt/buscafilme/internal/domain"
	"github.com/John-Robertt/buscafilme/internal/provider"
)

var _ run.Observer = (*console)(nil)

// 这些行是 stdout 的对外契约（顺序固定，见 console 的各事件）。
const (
	msgPrompt          = "Digite o filme"
	msgConverted       = "Titulo ja convertido"
	msgInvalidArgument = "Algum erro de argumento na busca, verifique o endereço"
	msgFailedPrefix    = "Aconteceu um erro:"
	msgFinished        = "Sistema finalizou corretamente"
)

// console 把 run 的事件渲染成 stdout 文本。
// 调试信息不走这里（走 stderr logger），stdout 只保留契约行。
type console struct {
	w io.Writer
}

func newConsole(w io.Writer) *console { return &console{w: w} }

func (c *console) OnPrompt() { fmt.Fprintln(c.w, msgPrompt) }

func (c *console) OnBody(body []byte) {
	fmt.Fprintln(c.w, strings.TrimRight(string(body), "\r\n"))
}

func (c *console) OnRecord(rec domain.TitleRecord) { fmt.Fprintln(c.w, rec) }

func (c *console) OnTitle(t domain.Title) {
	fmt.Fprintln(c.w, msgConverted)
	fmt.Fprintln(c.w, t)
}

func (c *console) OnFailed(kind string, err error) {
	switch kind {
	case domain.ErrKindInvalidArgument:
		fmt.Fprintln(c.w, msgInvalidArgument)
	default:
		fmt.Fprintln(c.w, msgFailedPrefix)
		fmt.Fprintln(c.w, failureMessage(err))
	}
}

func (c *console) OnFinished(domain.Outcome) { fmt.Fprintln(c.w, msgFinished) }

// failureMessage 去掉 provider 阶段前缀，只保留底层原因。
func failureMessage(err error) string {
	if err == nil {
		return ""
	}
	var pe *provider.Error
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}
