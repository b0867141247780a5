package models

// Role defines an application role stored in the user_roles table.
type Role string

const (
	RoleInstitutionAdmin Role = "institution_admin"
	RoleCountyAdmin      Role = "county_admin"
)

// ProgramType defines the two education tracks the system models.
type ProgramType string

const (
	ProgramECDE       ProgramType = "ECDE"
	ProgramVocational ProgramType = "VOCATIONAL"
)

// LearnerStatus defines the lifecycle of a learner record.
type LearnerStatus string

const (
	LearnerActive      LearnerStatus = "ACTIVE"
	LearnerCompleted   LearnerStatus = "COMPLETED"
	LearnerSuspended   LearnerStatus = "SUSPENDED"
	LearnerTransferred LearnerStatus = "TRANSFERRED"
	LearnerDeceased    LearnerStatus = "DECEASED"
)

// ReceiptStatus defines the verification state of a capitation receipt.
type ReceiptStatus string

const (
	ReceiptPending  ReceiptStatus = "PENDING"
	ReceiptVerified ReceiptStatus = "VERIFIED"
)
