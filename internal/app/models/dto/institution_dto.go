package dto

import "github.com/busiadev/ecdeavotmis/internal/app/models"

// CreateInstitutionRequest represents the institution setup form
type CreateInstitutionRequest struct {
	Name           string `json:"name" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=ECDE VOCATIONAL"`
	Level          string `json:"level" binding:"required"`
	RegistrationNo string `json:"registrationNo" binding:"required"`
	SubCounty      string `json:"subCounty" binding:"required"`
	Ward           string `json:"ward" binding:"required"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty" binding:"omitempty,email"`
	PrincipalName  string `json:"principalName,omitempty"`
}

// UpdateInstitutionRequest represents the editable institution fields
type UpdateInstitutionRequest struct {
	Name          string `json:"name" binding:"required"`
	Level         string `json:"level" binding:"required"`
	SubCounty     string `json:"subCounty" binding:"required"`
	Ward          string `json:"ward" binding:"required"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Email         string `json:"email,omitempty" binding:"omitempty,email"`
	PrincipalName string `json:"principalName,omitempty"`
}

// InstitutionResponse represents institution information
type InstitutionResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Level          string `json:"level"`
	RegistrationNo string `json:"registrationNo"`
	County         string `json:"county"`
	SubCounty      string `json:"subCounty"`
	Ward           string `json:"ward"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	PrincipalName  string `json:"principalName,omitempty"`
}

// InstitutionListResponse represents a list of institutions
type InstitutionListResponse struct {
	Institutions []InstitutionResponse `json:"institutions"`
}

// FromInstitution converts a models.Institution to an InstitutionResponse
func FromInstitution(inst *models.Institution) InstitutionResponse {
	if inst == nil {
		return InstitutionResponse{}
	}

	return InstitutionResponse{
		ID:             inst.ID,
		Name:           inst.Name,
		Type:           string(inst.Type),
		Level:          inst.Level,
		RegistrationNo: inst.RegistrationNo,
		County:         inst.County,
		SubCounty:      inst.SubCounty,
		Ward:           inst.Ward,
		Address:        inst.Address,
		Phone:          inst.Phone,
		Email:          inst.Email,
		PrincipalName:  inst.PrincipalName,
	}
}
