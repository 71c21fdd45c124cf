package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sports-program/backend/config"
	"sports-program/backend/internal/model"
	"sports-program/backend/internal/repository"
	pkgerrors "sports-program/backend/pkg/errors"
)

// ── 测试辅助 ──

type testRepos struct {
	users     *mockUserRepo
	sports    *mockSportRepo
	classes   *mockClassRepo
	schedules *mockScheduleRepo
	apps      *mockApplicationRepo
}

// newTestRepos 组装内存版 Repository 聚合，Transaction 直接在当前聚合上执行
func newTestRepos() (*repository.Repository, *testRepos) {
	users := newMockUserRepo()
	sports := newMockSportRepo()
	schedules := newMockScheduleRepo()
	classes := newMockClassRepo(sports, users, schedules)
	apps := newMockApplicationRepo(users, classes)

	repo := &repository.Repository{
		User:        users,
		Sport:       sports,
		Class:       classes,
		Schedule:    schedules,
		Application: apps,
	}
	return repo, &testRepos{users: users, sports: sports, classes: classes, schedules: schedules, apps: apps}
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
			BcryptCost:      bcrypt.MinCost,
		},
		Class: config.ClassConfig{
			DefaultDuration:    60,
			DefaultMaxCapacity: 20,
			MaxCapacityLimit:   50,
		},
	}
}

func (r *testRepos) addUser(id, role string) *model.User {
	u := &model.User{
		UserID:    id,
		FirstName: "名" + id,
		LastName:  "姓" + id,
		Email:     id + "@example.com",
		Role:      role,
	}
	_ = r.users.Create(context.Background(), u)
	return u
}

func (r *testRepos) addSport(id, name string) *model.Sport {
	s := &model.Sport{SportID: id, Name: name, IsActive: true}
	_ = r.sports.Create(context.Background(), s)
	return s
}

func (r *testRepos) addClass(id, sportID string, maxCapacity int) *model.Class {
	c := &model.Class{
		ClassID:     id,
		Name:        "课程班-" + id,
		Duration:    60,
		MaxCapacity: maxCapacity,
		IsActive:    true,
		SportID:     sportID,
	}
	_ = r.classes.Create(context.Background(), c)
	return c
}

func (r *testRepos) addApplication(id, userID, classID, appType, status string) *model.Application {
	a := &model.Application{
		ApplicationID:   id,
		UserID:          userID,
		ClassID:         classID,
		Type:            appType,
		Status:          status,
		ApplicationDate: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	_ = r.apps.Create(context.Background(), a)
	return a
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int        { return &i }
func boolPtr(b bool) *bool     { return &b }

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id, role string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	all := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UserID < all[j].UserID })

	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock SportRepository ──

type mockSportRepo struct {
	sports map[string]*model.Sport
	seq    int
}

func newMockSportRepo() *mockSportRepo {
	return &mockSportRepo{sports: make(map[string]*model.Sport)}
}

func (m *mockSportRepo) Create(_ context.Context, sport *model.Sport) error {
	if sport.SportID == "" {
		m.seq++
		sport.SportID = fmt.Sprintf("sport-%d", m.seq)
	}
	m.sports[sport.SportID] = sport
	return nil
}

func (m *mockSportRepo) GetByID(_ context.Context, id string) (*model.Sport, error) {
	if s, ok := m.sports[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSportRepo) GetByName(_ context.Context, name string) (*model.Sport, error) {
	for _, s := range m.sports {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSportRepo) List(_ context.Context) ([]model.Sport, error) {
	result := make([]model.Sport, 0, len(m.sports))
	for _, s := range m.sports {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSportRepo) Update(_ context.Context, sport *model.Sport) error {
	m.sports[sport.SportID] = sport
	return nil
}

func (m *mockSportRepo) Delete(_ context.Context, id string) error {
	delete(m.sports, id)
	return nil
}

// ── Mock ClassRepository ──
// 读取返回副本，模拟数据库行与内存对象相互独立

type mockClassRepo struct {
	classes   map[string]*model.Class
	order     []string
	sports    *mockSportRepo
	users     *mockUserRepo
	schedules *mockScheduleRepo
	seq       int
	locked    []string // GetByIDForUpdate 调用记录
}

func newMockClassRepo(sports *mockSportRepo, users *mockUserRepo, schedules *mockScheduleRepo) *mockClassRepo {
	return &mockClassRepo{
		classes:   make(map[string]*model.Class),
		sports:    sports,
		users:     users,
		schedules: schedules,
	}
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Class) error {
	if class.ClassID == "" {
		m.seq++
		class.ClassID = fmt.Sprintf("class-%d", m.seq)
	}
	if class.Version == 0 {
		class.Version = 1
	}
	stored := *class
	m.classes[class.ClassID] = &stored
	m.order = append(m.order, class.ClassID)
	return nil
}

func (m *mockClassRepo) load(id string) (*model.Class, bool) {
	c, ok := m.classes[id]
	if !ok {
		return nil, false
	}
	cp := *c
	if c.TrainerID != nil {
		trainerID := *c.TrainerID
		cp.TrainerID = &trainerID
	}
	return &cp, true
}

func (m *mockClassRepo) withAssociations(c *model.Class) *model.Class {
	if s, ok := m.sports.sports[c.SportID]; ok {
		c.Sport = s
	}
	if c.TrainerID != nil {
		c.Trainer = m.users.users[*c.TrainerID]
	}
	c.Schedules, _ = m.schedules.ListByClass(context.Background(), c.ClassID)
	return c
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	c, ok := m.load(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withAssociations(c), nil
}

func (m *mockClassRepo) GetByIDForUpdate(_ context.Context, id string) (*model.Class, error) {
	m.locked = append(m.locked, id)
	c, ok := m.load(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockClassRepo) List(_ context.Context, sportKeyword string) ([]model.Class, error) {
	kw := strings.ToLower(strings.TrimSpace(sportKeyword))
	var result []model.Class
	for _, id := range m.order {
		c, ok := m.load(id)
		if !ok {
			continue
		}
		m.withAssociations(c)
		if kw != "" && (c.Sport == nil || !strings.Contains(strings.ToLower(c.Sport.Name), kw)) {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockClassRepo) ListWithoutTrainer(_ context.Context) ([]model.Class, error) {
	var result []model.Class
	for _, id := range m.order {
		c, ok := m.load(id)
		if !ok || c.HasTrainer() {
			continue
		}
		result = append(result, *m.withAssociations(c))
	}
	return result, nil
}

func (m *mockClassRepo) Update(_ context.Context, class *model.Class) error {
	stored, ok := m.classes[class.ClassID]
	if !ok || stored.Version != class.Version {
		return pkgerrors.ErrOptimisticLock
	}
	class.Version++
	cp := *class
	cp.Sport, cp.Trainer, cp.Schedules = nil, nil, nil
	m.classes[class.ClassID] = &cp
	return nil
}

func (m *mockClassRepo) AssignTrainer(_ context.Context, classID, trainerID string) (bool, error) {
	c, ok := m.classes[classID]
	if !ok || c.HasTrainer() {
		return false, nil
	}
	c.TrainerID = &trainerID
	c.Version++
	return true, nil
}

func (m *mockClassRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	seq       int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sch-%d", m.seq)
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) ListByClass(_ context.Context, classID string) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if s.ClassID == classID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	cp := *schedule
	m.schedules[schedule.ScheduleID] = &cp
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct {
	apps    map[string]*model.Application
	order   []string
	users   *mockUserRepo
	classes *mockClassRepo
	seq     int

	countErr error // 非 nil 时 CountByClass 返回该错误
}

func newMockApplicationRepo(users *mockUserRepo, classes *mockClassRepo) *mockApplicationRepo {
	return &mockApplicationRepo{
		apps:    make(map[string]*model.Application),
		users:   users,
		classes: classes,
	}
}

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	if app.ApplicationID == "" {
		m.seq++
		app.ApplicationID = fmt.Sprintf("app-%d", m.seq)
	}
	stored := *app
	stored.User, stored.Class = nil, nil
	m.apps[app.ApplicationID] = &stored
	m.order = append(m.order, app.ApplicationID)
	return nil
}

func (m *mockApplicationRepo) load(id string, withUser, withClass bool) (*model.Application, bool) {
	a, ok := m.apps[id]
	if !ok {
		return nil, false
	}
	cp := *a
	if withUser {
		cp.User = m.users.users[a.UserID]
	}
	if withClass {
		if c, ok := m.classes.load(a.ClassID); ok {
			if s, ok := m.classes.sports.sports[c.SportID]; ok {
				c.Sport = s
			}
			cp.Class = c
		}
	}
	return &cp, true
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.Application, error) {
	a, ok := m.load(id, true, true)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *mockApplicationRepo) FindByUserClassType(_ context.Context, userID, classID, appType string) (*model.Application, error) {
	for _, id := range m.order {
		a, ok := m.apps[id]
		if ok && a.UserID == userID && a.ClassID == classID && a.Type == appType {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) filter(match func(*model.Application) bool, withUser, withClass bool) []model.Application {
	var result []model.Application
	for _, id := range m.order {
		a, ok := m.apps[id]
		if !ok || !match(a) {
			continue
		}
		cp, _ := m.load(id, withUser, withClass)
		result = append(result, *cp)
	}
	return result
}

func (m *mockApplicationRepo) List(_ context.Context) ([]model.Application, error) {
	return m.filter(func(*model.Application) bool { return true }, true, true), nil
}

func (m *mockApplicationRepo) ListByClass(_ context.Context, classID string) ([]model.Application, error) {
	return m.filter(func(a *model.Application) bool { return a.ClassID == classID }, true, false), nil
}

func (m *mockApplicationRepo) ListByUser(_ context.Context, userID string) ([]model.Application, error) {
	return m.filter(func(a *model.Application) bool { return a.UserID == userID }, false, true), nil
}

func (m *mockApplicationRepo) CountByClass(_ context.Context, classID, appType, status string) (int64, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	var n int64
	for _, a := range m.apps {
		if a.ClassID == classID && a.Type == appType && a.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockApplicationRepo) UpdateStatus(_ context.Context, id, status string) error {
	a, ok := m.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (m *mockApplicationRepo) RejectPendingTrainerApplications(_ context.Context, classID, exceptID string) (int64, error) {
	var n int64
	for id, a := range m.apps {
		if a.ClassID == classID && id != exceptID &&
			a.Type == model.ApplicationTypeTrainerAssignment && a.Status == model.ApplicationStatusPending {
			a.Status = model.ApplicationStatusRejected
			n++
		}
	}
	return n, nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.apps[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.apps, id)
	return nil
}
