package apperr

// Generic
var (
	ErrInternal    = New(KindInternal, "INTERNAL_ERROR", "Internal server error")
	ErrValidation  = New(KindValidation, "VALIDATION_FAILED", "Validation failed")
	ErrNotFound    = New(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrUnavailable = New(KindUnavailable, "SERVICE_UNAVAILABLE", "Service unavailable")
)

// Registration / profile
var (
	ErrEmailTaken        = New(KindConflict, "EMAIL_TAKEN", "User already exists with this email")
	ErrExpertiseRequired = New(KindValidation, "EXPERTISE_REQUIRED", "Mentors must specify at least one area of expertise")
	ErrMenteeExpertise   = New(KindValidation, "MENTEE_EXPERTISE", "Mentees cannot have expertise listed")
	ErrInvalidProfile    = New(KindValidation, "INVALID_PROFILE", "Invalid user profile")
	ErrRoleImmutable     = New(KindValidation, "ROLE_IMMUTABLE", "Role cannot be changed")
)

// Authentication / access-control gate
var (
	ErrInvalidCredentials = New(KindAuthentication, "INVALID_CREDENTIALS", "Invalid credentials")
	ErrUnauthenticated    = New(KindAuthentication, "UNAUTHENTICATED", "Not authorized to access this route")
	ErrInvalidToken       = New(KindAuthentication, "INVALID_TOKEN", "Invalid or expired token")
	ErrUserNotFound       = New(KindAuthentication, "USER_NOT_FOUND", "No user found with this token")
	ErrAccountDeactivated = New(KindAuthentication, "ACCOUNT_DEACTIVATED", "Account is deactivated")
	ErrForbidden          = New(KindAuthorization, "FORBIDDEN", "Access denied")
)

// Relationship maintenance
var (
	ErrMenteeNotFound      = New(KindNotFound, "MENTEE_NOT_FOUND", "Mentee not found")
	ErrMentorNotFound      = New(KindNotFound, "MENTOR_NOT_FOUND", "Mentor not found")
	ErrInvalidRole         = New(KindValidation, "INVALID_ROLE", "Selected user is not a mentee")
	ErrInactiveAccount     = New(KindValidation, "INACTIVE_ACCOUNT", "Mentee account is deactivated")
	ErrAlreadyAssigned     = New(KindConflict, "ALREADY_ASSIGNED", "Mentee already has a mentor assigned")
	ErrDuplicateAssignment = New(KindConflict, "DUPLICATE_ASSIGNMENT", "This mentee is already assigned to you")
	ErrNotOwned            = New(KindConflict, "NOT_OWNED", "This mentee is not assigned to you")
)
