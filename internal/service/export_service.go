package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-program/backend/internal/model"
	"sports-program/backend/internal/repository"
	pkgerrors "sports-program/backend/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportAccessDenied = pkgerrors.New(pkgerrors.ErrForbidden, "只能导出自己所带课程班的名单")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 导出内容以内存缓冲返回，由 Handler 层设置响应头后写出
type ExportService interface {
	// ExportRoster 导出课程班名单（教练 + 已通过的学员）为 Excel
	ExportRoster(ctx context.Context, classID string, caller Caller) (*bytes.Buffer, string, error)
	// ExportScheduleICS 导出课程班每周时间表为 iCalendar，每条时间表对应一个按周重复的事件
	ExportScheduleICS(ctx context.Context, classID string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportRoster 课程班名单
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：课程班名称（合并单元格）
//   - 第 2 行：教练
//   - 第 4 行起：序号 | 姓 | 名 | 邮箱 | 电话 | 申请日期

func (s *exportService) ExportRoster(ctx context.Context, classID string, caller Caller) (*bytes.Buffer, string, error) {
	class, err := s.getClass(ctx, classID)
	if err != nil {
		return nil, "", err
	}
	if !caller.IsAdmin() && !(caller.IsTrainer() && class.IsTrainedBy(caller.UserID)) {
		return nil, "", ErrExportAccessDenied
	}

	apps, err := s.repo.Application.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("查询课程班申请失败", zap.String("class_id", classID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "名单"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 28)
	f.SetColWidth(sheetName, "E", "F", 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", class.Name)
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	trainerName := "未分配"
	if class.Trainer != nil {
		trainerName = class.Trainer.FullName()
	}
	f.SetCellValue(sheetName, "A2", "教练")
	f.SetCellValue(sheetName, "B2", trainerName)

	headers := []string{"序号", "姓", "名", "邮箱", "电话", "申请日期"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 4), h)
	}
	f.SetCellStyle(sheetName, "A4", "F4", headerStyle)

	row := 5
	for _, app := range apps {
		if app.Type != model.ApplicationTypeStudentEnrollment || app.Status != model.ApplicationStatusApproved || app.User == nil {
			continue
		}
		phone := ""
		if app.User.PhoneNumber != nil {
			phone = *app.User.PhoneNumber
		}
		f.SetCellValue(sheetName, cell("A", row), row-4)
		f.SetCellValue(sheetName, cell("B", row), app.User.LastName)
		f.SetCellValue(sheetName, cell("C", row), app.User.FirstName)
		f.SetCellValue(sheetName, cell("D", row), app.User.Email)
		f.SetCellValue(sheetName, cell("E", row), phone)
		f.SetCellValue(sheetName, cell("F", row), app.ApplicationDate.UTC().Format("2006-01-02"))
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, fmt.Sprintf("名单_%s.xlsx", class.Name), nil
}

// ═══════════════════════════════════════════════════════════
// ExportScheduleICS 课程班时间表
// ═══════════════════════════════════════════════════════════

var icsWeekdays = [7]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

// 课程时刻按场馆当地时间书写，不带 Z 后缀（iCalendar floating time）
const icsFloatingLayout = "20060102T150405"

func (s *exportService) ExportScheduleICS(ctx context.Context, classID string) ([]byte, string, error) {
	class, err := s.getClass(ctx, classID)
	if err != nil {
		return nil, "", err
	}

	now := s.now().UTC()
	weekStart := mondayOf(now)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sports-program//class schedule//ZH")

	for _, sch := range class.Schedules {
		start, err := occurrence(weekStart, sch.DayOfWeek, sch.StartTime)
		if err != nil {
			s.logger.Warn("跳过时间格式异常的时间表", zap.String("schedule_id", sch.ScheduleID), zap.Error(err))
			continue
		}
		end, err := occurrence(weekStart, sch.DayOfWeek, sch.EndTime)
		if err != nil {
			s.logger.Warn("跳过时间格式异常的时间表", zap.String("schedule_id", sch.ScheduleID), zap.Error(err))
			continue
		}

		event := cal.AddEvent(sch.ScheduleID + "@sports-program")
		event.SetDtStampTime(now)
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(icsFloatingLayout))
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icsFloatingLayout))
		event.SetSummary(class.Name)
		if class.Description != nil {
			event.SetDescription(*class.Description)
		}
		event.AddRrule("FREQ=WEEKLY;BYDAY=" + icsWeekdays[sch.DayOfWeek])
	}

	return []byte(cal.Serialize()), fmt.Sprintf("%s.ics", class.Name), nil
}

// ── 辅助函数 ──

func (s *exportService) getClass(ctx context.Context, classID string) (*model.Class, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询课程班失败", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}
	return class, nil
}

// mondayOf 返回 t 所在周周一 00:00（UTC）
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// occurrence 周一起算第 day 天的 clock 时刻（clock 为 HH:MM:SS）
func occurrence(weekStart time.Time, day int, clock string) (time.Time, error) {
	if day < 0 || day > 6 {
		return time.Time{}, fmt.Errorf("day_of_week 越界: %d", day)
	}
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, err
	}
	d := weekStart.AddDate(0, 0, day)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
