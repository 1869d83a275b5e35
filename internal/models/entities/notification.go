package entities

// Notification 以累积方式收集校验失败信息，避免在第一条错误处中断。
// Validate 类方法将所有违反的规则写入同一个 Notification，
// 调用方再决定是否将其转换为 *EntityValidationError。
type Notification struct {
	messages []string
}

// NewNotification 构造空的错误收集器。
func NewNotification() *Notification {
	return &Notification{}
}

// AddError 追加一条校验失败信息。
func (n *Notification) AddError(message string) {
	if message == "" {
		return
	}
	n.messages = append(n.messages, message)
}

// HasErrors 返回是否存在校验失败。
func (n *Notification) HasErrors() bool {
	return len(n.messages) > 0
}

// Messages 返回全部校验失败信息（按加入顺序）。
func (n *Notification) Messages() []string {
	out := make([]string, len(n.messages))
	copy(out, n.messages)
	return out
}

// AsError 在存在错误时返回 *EntityValidationError，否则返回 nil。
func (n *Notification) AsError() error {
	if !n.HasErrors() {
		return nil
	}
	return NewEntityValidationError(n.Messages()...)
}
