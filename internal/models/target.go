package models

// Target marks content as visible to employees or students.
type Target string

const (
	TargetEmployee Target = "EMPLOYEE"
	TargetStudent  Target = "STUDENT"
)

func ValidTarget(s string) bool {
	return s == string(TargetEmployee) || s == string(TargetStudent)
}
