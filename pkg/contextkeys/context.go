package contextkeys

type contextKey string

// DBContextKey stores the *gorm.DB (pool or transaction) on the gin context.
const DBContextKey = contextKey("db")

// Keys set by the auth middleware.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)
