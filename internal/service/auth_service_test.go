package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sports-program/backend/internal/dto"
	"sports-program/backend/internal/model"
	pkgerrors "sports-program/backend/pkg/errors"
	"sports-program/backend/pkg/jwt"
)

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	revoked map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *testRepos, *jwt.Manager, *mockBlacklist) {
	cfg := testConfig()
	repo, repos := newTestRepos()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	bl := newMockBlacklist()
	return NewAuthService(cfg, repo, jwtMgr, bl, zap.NewNop()), repos, jwtMgr, bl
}

func seedUserWithPassword(t *testing.T, repos *testRepos, id, email, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	u := &model.User{
		UserID:       id,
		FirstName:    "测试",
		LastName:     "用户",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	_ = repos.users.Create(context.Background(), u)
	return u
}

// ── Register 测试 ──

func TestRegister_Success(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName:   "小明",
		LastName:    "王",
		Email:       "  Ming@Example.com ",
		Password:    "password123",
		DateOfBirth: strPtr("2001-05-20"),
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if resp.Role != model.RoleStudent {
		t.Errorf("注册用户角色应为 student，实际 %s", resp.Role)
	}
	if resp.Email != "ming@example.com" {
		t.Errorf("邮箱应规范化为小写，实际 %s", resp.Email)
	}
	if resp.DateOfBirth == nil || *resp.DateOfBirth != "2001-05-20" {
		t.Errorf("出生日期不正确: %v", resp.DateOfBirth)
	}

	stored := repos.users.users[resp.ID]
	if stored.PasswordHash == "password123" {
		t.Error("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("存储的哈希应能校验原密码: %v", err)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	seedUserWithPassword(t, repos, "u-1", "taken@example.com", "password123", model.RoleStudent)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "A", LastName: "B", Email: "TAKEN@example.com", Password: "password123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}

func TestRegister_InvalidDate(t *testing.T) {
	svc, _, _, _ := setupTestAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FirstName: "A", LastName: "B", Email: "a@example.com", Password: "password123",
		DateOfBirth: strPtr("2001/05/20"),
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestLogin_Success(t *testing.T) {
	svc, repos, jwtMgr, _ := setupTestAuthService()
	seedUserWithPassword(t, repos, "u-1", "trainer@example.com", "password123", model.RoleTrainer)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "trainer@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("Token 不应为空")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("expires_in 不正确: %d", resp.ExpiresIn)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("AccessToken 应可解析: %v", err)
	}
	if claims.UserID() != "u-1" || claims.Role != model.RoleTrainer || claims.TokenType != jwt.TokenTypeAccess {
		t.Errorf("AccessToken 声明不正确: %+v", claims)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	seedUserWithPassword(t, repos, "u-1", "stu@example.com", "password123", model.RoleStudent)

	tests := []struct {
		name  string
		email string
		pwd   string
	}{
		{"密码错误", "stu@example.com", "wrong-password"},
		{"用户不存在", "nobody@example.com", "password123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: tt.email, Password: tt.pwd})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
			}
			if !errors.Is(err, pkgerrors.ErrUnauthorized) {
				t.Errorf("应归类为 Unauthorized，实际: %v", err)
			}
		})
	}
}

// ── Refresh / Logout 测试 ──

func TestRefresh_RotatesAndRevokes(t *testing.T) {
	svc, repos, jwtMgr, bl := setupTestAuthService()
	seedUserWithPassword(t, repos, "u-1", "stu@example.com", "password123", model.RoleStudent)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "stu@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 刷新前提升角色，新 Token 应带最新角色
	repos.users.users["u-1"].Role = model.RoleTrainer

	refreshed, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	claims, _ := jwtMgr.ParseToken(refreshed.AccessToken)
	if claims == nil || claims.Role != model.RoleTrainer {
		t.Errorf("刷新后的 Token 应携带最新角色: %+v", claims)
	}

	old, _ := jwtMgr.ParseToken(login.RefreshToken)
	if _, ok := bl.revoked[old.ID]; !ok {
		t.Error("旧 Refresh Token 应被吊销")
	}

	_, err = svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("重复使用旧 Refresh Token 期望 ErrInvalidRefreshToken，实际: %v", err)
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	seedUserWithPassword(t, repos, "u-1", "stu@example.com", "password123", model.RoleStudent)

	login, _ := svc.Login(context.Background(), &dto.LoginRequest{Email: "stu@example.com", Password: "password123"})

	_, err := svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("期望 ErrInvalidRefreshToken，实际: %v", err)
	}

	_, err = svc.Refresh(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "garbage"})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("期望 ErrInvalidRefreshToken，实际: %v", err)
	}
}

func TestLogout_Blacklists(t *testing.T) {
	svc, _, _, bl := setupTestAuthService()

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(10*time.Minute)); err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	ttl, ok := bl.revoked["jti-1"]
	if !ok {
		t.Fatal("jti 应加入黑名单")
	}
	if ttl <= 0 || ttl > 10*time.Minute {
		t.Errorf("黑名单 TTL 应为剩余有效期，实际 %v", ttl)
	}
}

func TestLogout_WithoutBlacklist(t *testing.T) {
	cfg := testConfig()
	repo, _ := newTestRepos()
	svc := NewAuthService(cfg, repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())

	if err := svc.Logout(context.Background(), "jti-1", time.Now().Add(time.Minute)); err != nil {
		t.Errorf("无黑名单时 Logout 应直接成功: %v", err)
	}
}

// ── Me 测试 ──

func TestMe(t *testing.T) {
	svc, repos, _, _ := setupTestAuthService()
	seedUserWithPassword(t, repos, "u-1", "stu@example.com", "password123", model.RoleStudent)

	me, err := svc.Me(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("Me 应成功: %v", err)
	}
	if me.Email != "stu@example.com" {
		t.Errorf("邮箱不正确: %s", me.Email)
	}

	_, err = svc.Me(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
