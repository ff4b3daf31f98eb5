package globals

import (
	"context"
	"os"
)

var JwtSecret = jwtSecretFromEnv()

func jwtSecretFromEnv() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev_only_secret")
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const UserStatusKey ContextKey = "userStatus"

var Ctx = context.Background()
