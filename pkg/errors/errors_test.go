package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew_KindAndMessage(t *testing.T) {
	errClassFull := New(ErrBadRequest, "班级已满")

	if errClassFull.Error() != "班级已满" {
		t.Errorf("期望消息 '班级已满'，实际: %s", errClassFull.Error())
	}
	if !errors.Is(errClassFull, ErrBadRequest) {
		t.Error("期望 errors.Is(err, ErrBadRequest) 为 true")
	}
	if errors.Is(errClassFull, ErrNotFound) {
		t.Error("不应归属 ErrNotFound")
	}

	wrapped := fmt.Errorf("更新状态: %w", errClassFull)
	if !errors.Is(wrapped, errClassFull) {
		t.Error("包装后仍应能识别原始错误")
	}
	if Kind(wrapped) != ErrBadRequest {
		t.Errorf("期望 Kind 为 ErrBadRequest，实际: %v", Kind(wrapped))
	}
}

func TestOptimisticLock_IsConflict(t *testing.T) {
	if Kind(ErrOptimisticLock) != ErrConflict {
		t.Errorf("乐观锁错误应归属 ErrConflict，实际: %v", Kind(ErrOptimisticLock))
	}
}

func TestKind_Unknown(t *testing.T) {
	if Kind(errors.New("db down")) != nil {
		t.Error("普通错误的 Kind 应为 nil")
	}
}
