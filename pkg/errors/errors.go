package errors

import "errors"

// 错误类别：handler 依据类别映射 HTTP 状态码
var (
	ErrNotFound   = errors.New("资源不存在")
	ErrBadRequest = errors.New("请求参数无效")
	ErrForbidden  = errors.New("无权执行该操作")
	ErrConflict   = errors.New("资源冲突")

	ErrUnauthorized = errors.New("未认证")
)

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = New(ErrConflict, "数据已被其他操作修改，请刷新后重试")

// Error 携带类别的业务错误
type Error struct {
	kind error
	msg  string
}

// New 创建归属于 kind 的业务错误
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap 使 errors.Is(err, ErrNotFound) 等类别判断成立
func (e *Error) Unwrap() error { return e.kind }

// Kind 返回 err 所属类别，无法识别时返回 nil
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrBadRequest, ErrForbidden, ErrConflict, ErrUnauthorized} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
