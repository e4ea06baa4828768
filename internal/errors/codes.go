package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	// Platform outcome codes, decided once at the AWS adapter boundary.
	CodePlatformAPIError  Code = "PLATFORM_API_ERROR"
	CodePlatformAuthError Code = "PLATFORM_AUTH_ERROR"
	CodeResourceNotFound  Code = "RESOURCE_NOT_FOUND"
	CodeResourceInUse     Code = "RESOURCE_IN_USE"

	CodeScopeNotFound      Code = "SCOPE_NOT_FOUND"
	CodeTimeout            Code = "TIMEOUT_ERROR"
	CodeTeardownIncomplete Code = "TEARDOWN_INCOMPLETE"
)

func (c Code) String() string {
	return string(c)
}
