package dto

import (
	"time"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
)

// CreateLearnerRequest represents the learner admission form
type CreateLearnerRequest struct {
	UPI           string `json:"upi" binding:"required"`
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	OtherName     string `json:"otherName,omitempty"`
	Gender        string `json:"gender" binding:"required,oneof=MALE FEMALE"`
	DateOfBirth   string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	ProgramType   string `json:"programType" binding:"required,oneof=ECDE VOCATIONAL"`
	Course        string `json:"course" binding:"required"`
	Level         string `json:"level,omitempty"`
	ClassName     string `json:"className,omitempty"`
	AdmissionDate string `json:"admissionDate" binding:"required,datetime=2006-01-02"`
	GuardianName  string `json:"guardianName,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
	Address       string `json:"address,omitempty"`
}

// UpdateLearnerRequest represents the editable learner fields
type UpdateLearnerRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	OtherName     string `json:"otherName,omitempty"`
	Gender        string `json:"gender" binding:"required,oneof=MALE FEMALE"`
	DateOfBirth   string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	Course        string `json:"course" binding:"required"`
	Level         string `json:"level,omitempty"`
	ClassName     string `json:"className,omitempty"`
	GuardianName  string `json:"guardianName,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
	Address       string `json:"address,omitempty"`
	Attendance    *int   `json:"attendance,omitempty" binding:"omitempty,min=0,max=100"`
	Status        string `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE COMPLETED SUSPENDED TRANSFERRED"`
}

// LearnerFilterRequest represents the search and filter controls of the
// learner register
type LearnerFilterRequest struct {
	Search        string `form:"search"`
	ProgramType   string `form:"programType"`
	Course        string `form:"course"`
	ClassName     string `form:"class"`
	Gender        string `form:"gender"`
	Status        string `form:"status"`
	AdmissionYear string `form:"admissionYear"`
	AgeFrom       *int   `form:"ageFrom" binding:"omitempty,min=0"`
	AgeTo         *int   `form:"ageTo" binding:"omitempty,min=0"`
}

// LearnerResponse represents learner information including the derived age
type LearnerResponse struct {
	ID            int64  `json:"id"`
	InstitutionID int64  `json:"institutionId"`
	UPI           string `json:"upi"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	OtherName     string `json:"otherName,omitempty"`
	Gender        string `json:"gender"`
	DateOfBirth   string `json:"dateOfBirth"`
	Age           int    `json:"age"`
	ProgramType   string `json:"programType"`
	Course        string `json:"course"`
	Level         string `json:"level,omitempty"`
	ClassName     string `json:"className,omitempty"`
	AdmissionDate string `json:"admissionDate"`
	Status        string `json:"status"`
	GuardianName  string `json:"guardianName,omitempty"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
	Address       string `json:"address,omitempty"`
	Attendance    int    `json:"attendance"`
}

// LearnerListResponse represents a paginated learner register page
type LearnerListResponse struct {
	Learners   []LearnerResponse `json:"learners"`
	Pagination PaginationInfo    `json:"pagination"`
}

// FromLearner converts a models.Learner to a LearnerResponse
func FromLearner(learner *models.Learner) LearnerResponse {
	if learner == nil {
		return LearnerResponse{}
	}

	return LearnerResponse{
		ID:            learner.ID,
		InstitutionID: learner.InstitutionID,
		UPI:           learner.UPI,
		FirstName:     learner.FirstName,
		LastName:      learner.LastName,
		OtherName:     learner.OtherName,
		Gender:        learner.Gender,
		DateOfBirth:   learner.DateOfBirth.Format("2006-01-02"),
		Age:           helpers.Age(learner.DateOfBirth, time.Now()),
		ProgramType:   string(learner.ProgramType),
		Course:        learner.Course,
		Level:         learner.Level,
		ClassName:     learner.ClassName,
		AdmissionDate: learner.AdmissionDate.Format("2006-01-02"),
		Status:        string(learner.Status),
		GuardianName:  learner.GuardianName,
		GuardianPhone: learner.GuardianPhone,
		Address:       learner.Address,
		Attendance:    learner.Attendance,
	}
}
