package models

// LoginRequest authenticates by email and password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a self-service user account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreateStudentRequest captures a student intake. The four factors feed the
// risk score exactly once, at creation.
type CreateStudentRequest struct {
	Name                string  `json:"name" validate:"required,min=2,max=100"`
	Age                 int     `json:"age" validate:"required,min=5,max=25"`
	Gender              string  `json:"gender" validate:"required,oneof=Male Female"`
	School              string  `json:"school" validate:"max=150"`
	SchoolID            string  `json:"school_id" validate:"max=50"`
	SchoolName          string  `json:"school_name" validate:"max=150"`
	LocationType        string  `json:"location_type" validate:"max=50"`
	RiskFactors         string  `json:"risk_factors" validate:"max=255"`
	AcademicPerformance float64 `json:"academic_performance" validate:"min=0,max=100"`
	Attendance          float64 `json:"attendance" validate:"min=0,max=100"`
	SocioEconomicStatus int     `json:"socio_economic_status" validate:"min=1,max=5"`
	FamilySupport       int     `json:"family_support" validate:"min=1,max=5"`
}

// UpdateStudentStatusRequest is the only student mutation: the
// intervention roll-up state. Factors and the derived risk never change.
type UpdateStudentStatusRequest struct {
	ID                 int64  `json:"id" validate:"required"`
	InterventionStatus string `json:"intervention_status" validate:"required,oneof=Pending 'In Progress' Completed"`
}

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin user listener"`
	Status   string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// UpdateUserRequest is the admin user-edit payload.
type UpdateUserRequest struct {
	ID     int64  `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required,min=2,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Role   string `json:"role" validate:"required,oneof=admin user listener"`
	Status string `json:"status" validate:"required,oneof=Active Inactive"`
}

// CreateConversationRequest opens a conversation with a listener.
type CreateConversationRequest struct {
	UserID     int64  `json:"user_id" validate:"required"`
	ListenerID int64  `json:"listener_id" validate:"required"`
	Problem    string `json:"problem" validate:"required,max=500"`
}

// UpdateConversationStatusRequest moves a conversation to a new status,
// typically Closed.
type UpdateConversationStatusRequest struct {
	ID     int64  `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=Pending Active Closed"`
}

// PostMessageRequest appends a message to a conversation.
type PostMessageRequest struct {
	ConversationID int64  `json:"conversation_id" validate:"required"`
	SenderID       int64  `json:"sender_id" validate:"required"`
	Text           string `json:"message" validate:"required,max=2000"`
}

// UpdateInterventionRequest closes or re-grades an intervention.
type UpdateInterventionRequest struct {
	InterventionID int64  `json:"intervention_id" validate:"required"`
	Status         string `json:"status" validate:"required,oneof=Pending 'In Progress' Completed"`
	Effectiveness  string `json:"effectiveness" validate:"required,max=100"`
}

// CreateInterventionRequest opens an intervention for a student.
type CreateInterventionRequest struct {
	StudentID   int64  `json:"student_id" validate:"required"`
	Type        string `json:"type" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
}

// ContactRequest is the public contact-form payload.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=150"`
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatRequest is the stateless keyword-bot payload.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}
