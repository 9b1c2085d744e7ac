package constants

// ContextKeyUserID is the key used to store the authenticated user ID
// in both the session and the request context.
const ContextKeyUserID = "user_id"

// TasksPerPage is the fixed page size for task listings.
const TasksPerPage = 6

// RecentTasksCount is the number of tasks shown in the dashboard's
// recent activity section.
const RecentTasksCount = 5

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "task_session"

// SessionMaxAge is the session cookie lifetime in seconds (7 days).
const SessionMaxAge = 86400 * 7

// DefaultOrder is the sort applied when order_by is absent or not in
// the allow-list.
const DefaultOrder = "-created_at"
