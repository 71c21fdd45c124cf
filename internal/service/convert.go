package service

import (
	"time"

	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/model"
)

const (
	timeLayout = "2006-01-02T15:04:05Z"
	dateLayout = "2006-01-02"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:          u.UserID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        u.Role,
		About:       u.About,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   formatTime(u.CreatedAt),
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &dob
	}
	return resp
}

func toUserBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:        u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

func toSportBrief(s *model.Sport) *dto.SportBrief {
	if s == nil {
		return nil
	}
	return &dto.SportBrief{ID: s.SportID, Name: s.Name}
}

func toScheduleResponse(s *model.Schedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:        s.ScheduleID,
		ClassID:   s.ClassID,
		DayOfWeek: s.DayOfWeek,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}

func toClassResponse(c *model.Class) *dto.ClassResponse {
	schedules := make([]dto.ScheduleResponse, 0, len(c.Schedules))
	for i := range c.Schedules {
		schedules = append(schedules, toScheduleResponse(&c.Schedules[i]))
	}
	return &dto.ClassResponse{
		ID:          c.ClassID,
		Name:        c.Name,
		Description: c.Description,
		Duration:    c.Duration,
		MaxCapacity: c.MaxCapacity,
		IsActive:    c.IsActive,
		Version:     c.Version,
		SportID:     c.SportID,
		Sport:       toSportBrief(c.Sport),
		TrainerID:   c.TrainerID,
		Trainer:     toUserBrief(c.Trainer),
		Schedules:   schedules,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

func toClassBrief(c *model.Class) *dto.ClassBrief {
	if c == nil {
		return nil
	}
	return &dto.ClassBrief{
		ID:          c.ClassID,
		Name:        c.Name,
		MaxCapacity: c.MaxCapacity,
		TrainerID:   c.TrainerID,
		Sport:       toSportBrief(c.Sport),
	}
}

func toApplicationResponse(a *model.Application) *dto.ApplicationResponse {
	return &dto.ApplicationResponse{
		ID:              a.ApplicationID,
		UserID:          a.UserID,
		ClassID:         a.ClassID,
		Type:            a.Type,
		Status:          a.Status,
		ApplicationDate: formatTime(a.ApplicationDate),
		User:            toUserBrief(a.User),
		Class:           toClassBrief(a.Class),
	}
}

func toApplicationResponses(apps []model.Application) []dto.ApplicationResponse {
	result := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		result = append(result, *toApplicationResponse(&apps[i]))
	}
	return result
}

// parseDate 解析 YYYY-MM-DD，空指针返回 nil
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
