package contextkeys

type contextKey string

const (
	StaffIDKey   contextKey = "StaffID"
	RequestIDKey contextKey = "RequestID"
)
