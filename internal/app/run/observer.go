package run

import "github.com/John-Robertt/buscafilme/internal/domain"

// Observer 用于把“流程各阶段的产物”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出；如何展示由 CLI 决定
// - 事件严格按阶段顺序发出：OnPrompt -> [OnBody] -> OnRecord -> OnTitle
// - 失败时以 OnFailed 代替剩余阶段；OnFinished 在任何路径上都恰好调用一次
type Observer interface {
	// OnPrompt 在读取输入之前调用。
	OnPrompt()
	// OnBody 在收到响应体后调用（非 2xx 或解析失败时同样会调用，用于诊断）。
	OnBody(body []byte)
	OnRecord(rec domain.TitleRecord)
	OnTitle(t domain.Title)
	// OnFailed 报告进入错误分支；kind 为 domain.ErrKind*。
	OnFailed(kind string, err error)
	// OnFinished 是唯一出口。
	OnFinished(out domain.Outcome)
}

type nopObserver struct{}

func (nopObserver) OnPrompt()                   {}
func (nopObserver) OnBody([]byte)               {}
func (nopObserver) OnRecord(domain.TitleRecord) {}
func (nopObserver) OnTitle(domain.Title)        {}
func (nopObserver) OnFailed(string, error)      {}
func (nopObserver) OnFinished(domain.Outcome)   {}
