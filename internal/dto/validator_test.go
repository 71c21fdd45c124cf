package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNormalizeClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:00", "09:00:00", true},
		{"09:30:15", "09:30:15", true},
		{"23:59", "23:59:00", true},
		{"9:00", "", false},
		{"24:00", "", false},
		{"12:60", "", false},
		{"12:00:00:00", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := NormalizeClockTime(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("NormalizeClockTime(%q) = (%q, %v)，期望 (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestCreateScheduleRequest_Validation(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	if err := RegisterValidations(v); err != nil {
		t.Fatalf("注册校验规则失败: %v", err)
	}

	day := 0
	valid := CreateScheduleRequest{
		ClassID:   "7b0c6a5e-1f1e-4c7a-9d55-2f7f5d0c9a11",
		DayOfWeek: &day,
		StartTime: "09:00",
		EndTime:   "10:00:00",
	}
	if err := v.Struct(valid); err != nil {
		t.Errorf("合法请求不应校验失败: %v", err)
	}

	badDay := 7
	invalid := valid
	invalid.DayOfWeek = &badDay
	if err := v.Struct(invalid); err == nil {
		t.Error("day_of_week=7 应校验失败")
	}

	invalid = valid
	invalid.StartTime = "9am"
	if err := v.Struct(invalid); err == nil {
		t.Error("非法时间格式应校验失败")
	}

	invalid = valid
	invalid.DayOfWeek = nil
	if err := v.Struct(invalid); err == nil {
		t.Error("缺少 day_of_week 应校验失败")
	}
}
