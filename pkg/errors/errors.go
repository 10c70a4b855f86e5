package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	Unauthorized       = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	Forbidden          = Definition{Code: "FORBIDDEN", Message: "Admin access required"}
	InvalidCredentials = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}
	EmailTaken         = Definition{Code: "EMAIL_TAKEN", Message: "Email already exists"}
	ResetTokenInvalid  = Definition{Code: "RESET_TOKEN_INVALID", Message: "Invalid or expired reset token"}
	GuardNotFound      = Definition{Code: "GUARD_NOT_FOUND", Message: "Guard not found"}
)

// 项目模块错误。
var (
	InvalidProject         = Definition{Code: "INVALID_PROJECT", Message: "Invalid project code"}
	ProjectNotFound        = Definition{Code: "PROJECT_NOT_FOUND", Message: "Project not found"}
	ProjectCodeTaken       = Definition{Code: "PROJECT_CODE_TAKEN", Message: "Project code must be unique"}
	InvalidProjectPassword = Definition{Code: "INVALID_PROJECT_PASSWORD", Message: "Invalid project password"}
)

// 出勤记录模块错误。
var (
	ValidationError = Definition{Code: "VALIDATION_ERROR", Message: "Missing required fields"}
	LogNotFound     = Definition{Code: "LOG_NOT_FOUND", Message: "Log not found"}
	VersionConflict = Definition{Code: "VERSION_CONFLICT", Message: "Log was modified concurrently"}
)

// 日期审批模块错误。
var (
	RequestNotFound = Definition{Code: "REQUEST_NOT_FOUND", Message: "Request not found"}
	InvalidDecision = Definition{Code: "INVALID_DECISION", Message: "Invalid status"}
	AlreadyDecided  = Definition{Code: "ALREADY_DECIDED", Message: "Request already decided"}
)

// 限流错误。
var (
	RateLimited = Definition{Code: "RATE_LIMITED", Message: "Too many requests, please try again later"}
)

// 邮件出口错误。
var (
	EmailSendFailed = Definition{Code: "EMAIL_SEND_FAILED", Message: "Failed to send email"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:           Unauthorized,
	Forbidden.Code:              Forbidden,
	InvalidCredentials.Code:     InvalidCredentials,
	EmailTaken.Code:             EmailTaken,
	ResetTokenInvalid.Code:      ResetTokenInvalid,
	GuardNotFound.Code:          GuardNotFound,
	InvalidProject.Code:         InvalidProject,
	ProjectNotFound.Code:        ProjectNotFound,
	ProjectCodeTaken.Code:       ProjectCodeTaken,
	InvalidProjectPassword.Code: InvalidProjectPassword,
	ValidationError.Code:        ValidationError,
	LogNotFound.Code:            LogNotFound,
	VersionConflict.Code:        VersionConflict,
	RequestNotFound.Code:        RequestNotFound,
	InvalidDecision.Code:        InvalidDecision,
	AlreadyDecided.Code:         AlreadyDecided,
	RateLimited.Code:            RateLimited,
	EmailSendFailed.Code:        EmailSendFailed,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}

// WithMessage 复用错误码但替换面向用户的提示文案。
func (d Definition) WithMessage(msg string) Definition {
	return Definition{Code: d.Code, Message: msg}
}
