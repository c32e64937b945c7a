package domain

const (
	// ErrKindInvalidArgument 表示请求地址无法构造（例如 base_url 非法）。
	ErrKindInvalidArgument = "invalid_argument"
	// ErrKindOperationFailed 表示网络、I/O 或反序列化阶段的其它失败。
	ErrKindOperationFailed = "operation_failed"
)

// Outcome 是一次查询流程的唯一结果值。
//
// 约束：
// - ErrorKind=="" 时 Record 与 Title 必须非空
// - ErrorKind!="" 时 Err 必须非空；Body 可能仍有内容（用于诊断）
type Outcome struct {
	Query      string
	RequestURL string
	Body       []byte

	Record *TitleRecord
	Title  *Title

	ErrorKind string
	Err       error
}

func (o Outcome) OK() bool { return o.ErrorKind == "" }
