package model

// 用户角色
const (
	RoleStudent = "student"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// 申请类型
const (
	ApplicationTypeStudentEnrollment = "student_enrollment"
	ApplicationTypeTrainerAssignment = "trainer_assignment"
)

// 申请状态
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// IsValidRole 判断角色取值是否合法
func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}
